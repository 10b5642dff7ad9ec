// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/views"
)

// ModalKind names the dialog that is open, if any.
type ModalKind string

const (
	ModalNone       ModalKind = ""
	ModalVote       ModalKind = "vote"
	ModalDetail     ModalKind = "detail"
	ModalDecision   ModalKind = "decision"
	ModalInvestment ModalKind = "investment"
)

// Modal is the open dialog and the record it shows.
type Modal struct {
	Kind     ModalKind
	TargetID string
}

// VoteForm holds the fields of the vote dialog.
type VoteForm struct {
	Vote  models.VoteValue
	Notes string
}

// State is the presentation state of one client: the open modal, the vote
// form and the toast queue. It reacts to engine events but never calls the
// engine.
type State struct {
	Modal  Modal
	Form   VoteForm
	toasts []Toast
	nextID int
}

// OpenVote opens the vote dialog for a pipeline entry, prefilled with the
// user's earlier vote.
func (s *State) OpenVote(e views.PipelineEntry) {
	s.Modal = Modal{Kind: ModalVote, TargetID: e.Application.ID}
	s.Form = VoteForm{}
	if e.UserVote != nil {
		s.Form.Vote = e.UserVote.Vote
		if e.UserVote.Notes != nil {
			s.Form.Notes = *e.UserVote.Notes
		}
	}
}

func (s *State) OpenDetail(applicationID string) {
	s.Modal = Modal{Kind: ModalDetail, TargetID: applicationID}
}

func (s *State) OpenDecision(applicationID string) {
	s.Modal = Modal{Kind: ModalDecision, TargetID: applicationID}
}

func (s *State) OpenInvestment(investmentID string) {
	s.Modal = Modal{Kind: ModalInvestment, TargetID: investmentID}
}

// Close dismisses the modal and clears the form.
func (s *State) Close() {
	s.Modal = Modal{}
	s.Form = VoteForm{}
}

func (s *State) SetVote(v models.VoteValue) { s.Form.Vote = v }
func (s *State) SetNotes(n string)          { s.Form.Notes = n }

// CanSubmit reports whether the vote dialog has a value selected.
func (s *State) CanSubmit() bool {
	return s.Modal.Kind == ModalVote && s.Form.Vote != ""
}

// React updates the state after a successful engine call: a modal showing
// the affected application closes, and a toast is queued.
func (s *State) React(ev pipeline.Event, now time.Time) {
	if s.Modal.TargetID == ev.ApplicationID && (ev.Moves() || s.Modal.Kind == ModalVote) {
		s.Close()
	}
	msg, tone := Message(ev)
	s.push(Toast{Message: msg, Tone: tone, Celebrate: ev.Celebrate(), CreatedAt: now})
}

// StaleMessage is shown when an action targets a record that has moved on.
const StaleMessage = "This item has moved. Refresh to see the latest."

// ReportError queues an error toast. A stale-state error also closes the
// modal, since the record it shows has moved.
func (s *State) ReportError(err error, now time.Time) {
	if errors.Is(err, models.ErrInvalidState) || errors.Is(err, models.ErrNotFound) {
		s.Close()
		s.Show(StaleMessage, ToneError, now)
		return
	}
	s.Show(err.Error(), ToneError, now)
}

// Message is the confirmation text for an event.
func Message(ev pipeline.Event) (string, Tone) {
	switch ev.Kind {
	case pipeline.EventVoteRecorded:
		return "Vote recorded! In the full CRM, this would notify other partners.", ToneSuccess
	case pipeline.EventAdvanced:
		return fmt.Sprintf("%s moved to interview.", ev.CompanyName), ToneSuccess
	case pipeline.EventInvested:
		return fmt.Sprintf("Invested in %s! Welcome to the portfolio.", ev.CompanyName), ToneSuccess
	case pipeline.EventRejected:
		return fmt.Sprintf("%s moved to the archive.", ev.CompanyName), ToneInfo
	case pipeline.EventDeliberationUpdated:
		return "Deliberation notes saved.", ToneSuccess
	case pipeline.EventEmailSent:
		return fmt.Sprintf("Marked the email to %s as sent.", ev.CompanyName), ToneSuccess
	}
	return string(ev.Kind), ToneInfo
}
