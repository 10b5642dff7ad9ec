// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps exactly one of these, so
// callers can branch with errors.Is on the kind alone.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

var (
	ErrInvalidEnumValue = fmt.Errorf("%w: invalid enum value", ErrValidation)
	ErrInvalidVoteValue = fmt.Errorf("%w: vote must be yes, maybe or no", ErrValidation)
	ErrInvalidTag       = fmt.Errorf("%w: tag is not in the palette", ErrValidation)

	ErrApplicationNotFound = fmt.Errorf("%w: application", ErrNotFound)
	ErrPartnerNotFound     = fmt.Errorf("%w: partner", ErrNotFound)

	ErrInvalidStageForVote     = fmt.Errorf("%w: application is not open for voting", ErrInvalidState)
	ErrInvalidStageForAdvance  = fmt.Errorf("%w: application is not in the pipeline", ErrInvalidState)
	ErrInvalidStageForDecision = fmt.Errorf("%w: application is not in deliberation", ErrInvalidState)
	ErrQuorumNotMet            = fmt.Errorf("%w: not all partners have voted", ErrInvalidState)
	ErrInvalidStageForEmail    = fmt.Errorf("%w: application has not reached an interview", ErrInvalidState)
)
