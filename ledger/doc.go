// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger stores partner votes and computes per-application aggregates.

# Upsert Semantics

A ledger holds at most one vote per (application, voter) pair. Upsert removes
the existing vote for the pair before appending, so the new vote moves to the
end of the insertion order and carries its own id:

	l := ledger.New(seedVotes)
	l.Upsert(models.Vote{ID: id, ApplicationID: "app-1", UserID: "partner-1", Vote: models.VoteYes})

Stage checks are not done here; the pipeline engine validates the application
before calling Upsert.

# Quorum

The firm has three partners (QuorumSize). HasQuorum is true once an
application has three votes, which reveals every vote and unlocks the advance
action in the UI.

# Tally

Tally and TallyVotes count yes/maybe/no votes for an application.
*/
package ledger
