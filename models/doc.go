// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain entities, their enum values, and the
request/response types of the API.

# Domain Types

  - Partner: a voter identity (reference data)
  - Application: a pipeline candidate; the base of every stage-specific record
  - Vote: one partner's yes/maybe/no on one application
  - Deliberation: interview notes attached when an application enters deliberation
  - DeliberationApplication: Application + votes + deliberation + email bookkeeping
  - ArchivedApplication: Application + votes + email bookkeeping, stage invested or rejected
  - Investment, Founder: closed deals shown in the portfolio
  - Notification: dashboard notices

# Stages

	StageNew, StageVoting  → pipeline
	StageDeliberation      → interview
	StageInvested, StageRejected → archive

# Validation

Every enum type has a Valid method; the Parse helpers return errors wrapping
ErrInvalidEnumValue or ErrInvalidVoteValue.

# Errors

Errors come in three kinds:

	ErrValidation   malformed input, rejected before any mutation
	ErrNotFound     stale or unknown id
	ErrInvalidState entity is not in a compatible stage

Specific errors such as ErrApplicationNotFound wrap one kind:

	if errors.Is(err, models.ErrInvalidState) {
		// the item has moved
	}
*/
package models
