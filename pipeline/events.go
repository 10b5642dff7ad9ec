// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import "time"

// EventKind names what a successful engine call did.
type EventKind string

const (
	EventVoteRecorded        EventKind = "vote_recorded"
	EventAdvanced            EventKind = "advanced"
	EventInvested            EventKind = "invested"
	EventRejected            EventKind = "rejected"
	EventDeliberationUpdated EventKind = "deliberation_updated"
	EventEmailSent           EventKind = "email_sent"
)

// Event is the signal returned by every mutation. The presentation layer
// turns it into a confirmation; the engine itself does nothing with it.
type Event struct {
	Kind          EventKind `json:"kind"`
	ApplicationID string    `json:"application_id"`
	CompanyName   string    `json:"company_name"`
	At            time.Time `json:"at"`
}

// Celebrate reports whether the event deserves a celebratory confirmation.
func (e Event) Celebrate() bool {
	return e.Kind == EventInvested
}

// Moves reports whether the event moved the application to another
// collection.
func (e Event) Moves() bool {
	switch e.Kind {
	case EventAdvanced, EventInvested, EventRejected:
		return true
	}
	return false
}
