// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the DealDesk API.

# Handler Types

Each handler is a struct holding the session store:

  - SessionHandler: session creation and reset
  - PipelineHandler: pipeline view, votes, advancing to interview
  - InterviewHandler: interview list, deliberation notes, decisions, founder emails
  - ViewHandler: dashboard, partners, notifications, archive, portfolio

	pipelineHandler := handlers.NewPipelineHandler(store)

# Sessions

Every route except POST /sessions requires the X-Session-Token header. A
missing, malformed or expired token is answered with 401.

# Deal Flow

Applications move through the collections one way:

	POST /pipeline/{id}/votes     → CastVote (yes, maybe or no; upserts)
	POST /pipeline/{id}/advance   → Advance (pipeline → interview)
	POST /interview/{id}/decision → Decide (interview → archive)

Mutations answer with models.EventResponse, the confirmation text the
client shows.

# Sealed Votes

GET /pipeline hides other partners' vote values and notes until all of
them have voted. Voter names and counts stay visible.

# Errors

	validation    → 400
	not found     → 404
	invalid state → 409 ("This item has moved")
	quorum not met → 409 with the reason
*/
package handlers
