// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pipeline implements the stage-transition engine for applications.

# Collections

A session's state is four collections:

  - Applications: pipeline stage (new or voting)
  - Votes: the vote ledger
  - Interview: DeliberationApplication records, newest first
  - Archive: ArchivedApplication records, newest first

An application is listed in exactly one of Applications, Interview and
Archive. Find returns it as a stage-tagged Record.

# Transitions

	new/voting ──AdvanceToInterview──▶ deliberation ──Decide──▶ invested | rejected

AdvanceToInterview copies the votes onto a new DeliberationApplication with a
pending, scheduled Deliberation. Decide copies the descriptive fields and
votes into an ArchivedApplication and drops the deliberation notes.

CastVote, UpdateDeliberation and MarkEmailSent mutate records in place
without moving them.

# Preconditions

Every method validates before mutating. Failures wrap the kinds in models:

	ErrInvalidVoteValue, ErrInvalidEnumValue, ErrInvalidTag  (validation)
	ErrApplicationNotFound, ErrPartnerNotFound               (not found)
	ErrInvalidStageFor*, ErrQuorumNotMet                     (invalid state)

Quorum is not required to advance unless Engine.RequireQuorum is set.

# Events

Each successful call returns an Event. Invested decisions are the only
events that Celebrate.
*/
package pipeline
