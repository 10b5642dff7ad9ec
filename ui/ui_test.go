// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/views"
)

var t0 = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func TestOpenVotePrefillsEarlierVote(t *testing.T) {
	notes := "Strong team"
	entry := views.PipelineEntry{
		Application: models.Application{ID: "app-1"},
		UserVote:    &models.Vote{Vote: models.VoteMaybe, Notes: &notes},
	}

	var s State
	s.OpenVote(entry)
	if s.Modal != (Modal{Kind: ModalVote, TargetID: "app-1"}) {
		t.Errorf("unexpected modal %+v", s.Modal)
	}
	if s.Form.Vote != models.VoteMaybe || s.Form.Notes != notes {
		t.Errorf("expected prefilled form, got %+v", s.Form)
	}
	if !s.CanSubmit() {
		t.Error("prefilled form should be submittable")
	}

	s.OpenVote(views.PipelineEntry{Application: models.Application{ID: "app-2"}})
	if s.Form != (VoteForm{}) || s.CanSubmit() {
		t.Errorf("fresh vote form should be empty, got %+v", s.Form)
	}
}

func TestReact(t *testing.T) {
	tests := []struct {
		name      string
		open      Modal
		ev        pipeline.Event
		wantClose bool
		wantTone  Tone
	}{
		{"vote closes vote modal", Modal{ModalVote, "app-1"}, pipeline.Event{Kind: pipeline.EventVoteRecorded, ApplicationID: "app-1"}, true, ToneSuccess},
		{"advance closes detail", Modal{ModalDetail, "app-1"}, pipeline.Event{Kind: pipeline.EventAdvanced, ApplicationID: "app-1", CompanyName: "Acme"}, true, ToneSuccess},
		{"reject closes decision", Modal{ModalDecision, "app-4"}, pipeline.Event{Kind: pipeline.EventRejected, ApplicationID: "app-4"}, true, ToneInfo},
		{"other target stays open", Modal{ModalDetail, "app-2"}, pipeline.Event{Kind: pipeline.EventAdvanced, ApplicationID: "app-1"}, false, ToneSuccess},
		{"notes update keeps decision open", Modal{ModalDecision, "app-4"}, pipeline.Event{Kind: pipeline.EventDeliberationUpdated, ApplicationID: "app-4"}, false, ToneSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Modal: tt.open}
			s.React(tt.ev, t0)

			if closed := s.Modal.Kind == ModalNone; closed != tt.wantClose {
				t.Errorf("expected closed=%v, modal is %+v", tt.wantClose, s.Modal)
			}
			toasts := s.Toasts(t0)
			if len(toasts) != 1 || toasts[0].Tone != tt.wantTone {
				t.Errorf("expected one %s toast, got %+v", tt.wantTone, toasts)
			}
		})
	}
}

func TestReactCelebratesInvestments(t *testing.T) {
	var s State
	s.React(pipeline.Event{Kind: pipeline.EventInvested, ApplicationID: "app-4", CompanyName: "Acme"}, t0)
	s.React(pipeline.Event{Kind: pipeline.EventRejected, ApplicationID: "app-5", CompanyName: "Beta"}, t0)

	toasts := s.Toasts(t0)
	if len(toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(toasts))
	}
	if !toasts[0].Celebrate {
		t.Errorf("investment toast should celebrate")
	}
	if toasts[1].Celebrate {
		t.Errorf("rejection toast should not celebrate")
	}
}

func TestInvestedMessageNamesCompany(t *testing.T) {
	msg, tone := Message(pipeline.Event{Kind: pipeline.EventInvested, CompanyName: "Acme"})
	if !strings.Contains(msg, "Acme") || tone != ToneSuccess {
		t.Errorf("unexpected message %q (%s)", msg, tone)
	}
}

func TestReportError(t *testing.T) {
	s := State{Modal: Modal{ModalDecision, "app-4"}}
	s.ReportError(fmt.Errorf("wrap: %w", models.ErrInvalidStageForDecision), t0)
	if s.Modal.Kind != ModalNone {
		t.Error("stale-state error should close the modal")
	}

	s.OpenDetail("app-1")
	s.ReportError(errors.New("boom"), t0)
	if s.Modal.Kind != ModalDetail {
		t.Error("other errors keep the modal open")
	}

	toasts := s.Toasts(t0)
	if len(toasts) != 2 || toasts[0].Tone != ToneError || toasts[1].Message != "boom" {
		t.Errorf("unexpected toasts %+v", toasts)
	}
}

func TestToastsExpire(t *testing.T) {
	var s State
	first := s.Show("one", ToneInfo, t0)
	s.Show("two", ToneInfo, t0.Add(2*time.Second))

	if got := s.Toasts(t0.Add(2999 * time.Millisecond)); len(got) != 2 {
		t.Fatalf("expected 2 live toasts, got %d", len(got))
	}
	got := s.Toasts(t0.Add(ToastLifetime))
	if len(got) != 1 || got[0].Message != "two" {
		t.Errorf("expected only the second toast, got %+v", got)
	}
	if got := s.Toasts(t0.Add(5 * time.Second)); len(got) != 0 {
		t.Errorf("expected all toasts gone, got %+v", got)
	}

	s.Dismiss(first) // already gone; must not panic
}

func TestDismiss(t *testing.T) {
	var s State
	a := s.Show("a", ToneSuccess, t0)
	s.Show("b", ToneSuccess, t0)
	s.Dismiss(a)

	got := s.Toasts(t0)
	if len(got) != 1 || got[0].Message != "b" {
		t.Errorf("expected only b, got %+v", got)
	}
}
