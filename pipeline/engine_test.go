// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/danielhkuo/dealdesk/ledger"
	"github.com/danielhkuo/dealdesk/models"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func testPartners() []models.Partner {
	return []models.Partner{
		{ID: "partner-1", Name: "Demo User", Avatar: "D"},
		{ID: "partner-2", Name: "Alex Chen", Avatar: "A"},
		{ID: "partner-3", Name: "Jordan Smith", Avatar: "J"},
	}
}

// newTestEngine returns an engine with a fixed clock and sequential ids.
func newTestEngine() *Engine {
	n := 0
	e := NewEngine(testPartners())
	e.Now = func() time.Time { return testNow }
	e.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return e
}

func newTestCollections(t *testing.T, e *Engine) *Collections {
	t.Helper()

	apps := []models.Application{
		{ID: "app-1", CompanyName: "Acme", FounderNames: strPtr("Sarah Chen"), SubmittedAt: testNow.Add(-72 * time.Hour), Stage: models.StageVoting},
		{ID: "app-2", CompanyName: "Beta Labs", SubmittedAt: testNow.Add(-48 * time.Hour), Stage: models.StageNew},
		{ID: "app-3", CompanyName: "Gamma", SubmittedAt: testNow.Add(-240 * time.Hour), Stage: models.StageDeliberation},
		{ID: "app-4", CompanyName: "Delta", SubmittedAt: testNow.Add(-480 * time.Hour), Stage: models.StageInvested},
	}
	votes := []models.Vote{
		{ID: "vote-1", ApplicationID: "app-1", UserID: "partner-2", Vote: models.VoteYes, Notes: strPtr("Strong team")},
		{ID: "vote-2", ApplicationID: "app-1", UserID: "partner-3", Vote: models.VoteMaybe, Notes: strPtr("GTM unclear")},
		{ID: "vote-3", ApplicationID: "app-3", UserID: "partner-1", Vote: models.VoteYes},
		{ID: "vote-4", ApplicationID: "app-3", UserID: "partner-2", Vote: models.VoteYes},
		{ID: "vote-5", ApplicationID: "app-3", UserID: "partner-3", Vote: models.VoteMaybe},
	}

	c, err := e.Collect(apps, votes, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	return c
}

func TestCollectPartitionsByStage(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)

	if len(c.Applications) != 2 || len(c.Interview) != 1 || len(c.Archive) != 1 {
		t.Fatalf("unexpected partition: pipeline=%d interview=%d archive=%d",
			len(c.Applications), len(c.Interview), len(c.Archive))
	}

	rec := c.Interview[0]
	if rec.Deliberation.Decision != models.DecisionPending {
		t.Errorf("expected generated deliberation to be pending, got %s", rec.Deliberation.Decision)
	}
	if len(rec.Votes) != 3 {
		t.Errorf("expected 3 votes on interview record, got %d", len(rec.Votes))
	}
}

func TestCollectUsesSeededDeliberation(t *testing.T) {
	e := newTestEngine()
	status := models.DeliberationMet
	apps := []models.Application{{ID: "app-3", CompanyName: "Gamma", Stage: models.StageDeliberation}}
	delibs := []models.Deliberation{{
		ID: "delib-1", ApplicationID: "app-3", Decision: models.DecisionYes, Status: &status,
		Tags: []string{"strong-team"}, IdeaSummary: strPtr("Verification tooling"),
	}}

	c, err := e.Collect(apps, nil, delibs)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	d := c.Interview[0].Deliberation
	if d.ID != "delib-1" || d.Decision != models.DecisionYes || *d.Status != models.DeliberationMet {
		t.Errorf("expected seeded deliberation, got %+v", d)
	}
}

func TestCollectRejectsBadSeed(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		apps  []models.Application
		votes []models.Vote
		want  error
	}{
		{"unknown stage", []models.Application{{ID: "a", Stage: "archived"}}, nil, models.ErrInvalidEnumValue},
		{"duplicate id", []models.Application{{ID: "a", Stage: models.StageNew}, {ID: "a", Stage: models.StageVoting}}, nil, models.ErrValidation},
		{"orphan vote", []models.Application{{ID: "a", Stage: models.StageNew}},
			[]models.Vote{{ID: "vote-1", ApplicationID: "b", UserID: "partner-1", Vote: models.VoteYes}}, models.ErrApplicationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Collect(tt.apps, tt.votes, nil); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCastVote(t *testing.T) {
	tests := []struct {
		name      string
		appID     string
		userID    string
		value     models.VoteValue
		wantErr   error
		wantCount int
	}{
		{"new vote", "app-1", "partner-1", models.VoteYes, nil, 3},
		{"first vote on new app", "app-2", "partner-1", models.VoteNo, nil, 1},
		{"invalid value", "app-1", "partner-1", "abstain", models.ErrInvalidVoteValue, 2},
		{"unknown application", "app-99", "partner-1", models.VoteYes, models.ErrApplicationNotFound, 0},
		{"unknown partner", "app-1", "partner-9", models.VoteYes, models.ErrPartnerNotFound, 2},
		{"application in deliberation", "app-3", "partner-1", models.VoteYes, models.ErrInvalidStageForVote, 3},
		{"application archived", "app-4", "partner-1", models.VoteYes, models.ErrInvalidStageForVote, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			c := newTestCollections(t, e)
			before := c.Votes.Len()

			ev, err := e.CastVote(c, tt.appID, tt.userID, tt.value, "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if c.Votes.Len() != before {
					t.Errorf("failed vote must not change the ledger")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if ev.Kind != EventVoteRecorded || ev.ApplicationID != tt.appID {
					t.Errorf("unexpected event %+v", ev)
				}
			}

			if got := c.Votes.Count(tt.appID); got != tt.wantCount {
				t.Errorf("expected %d votes on %s, got %d", tt.wantCount, tt.appID, got)
			}
		})
	}
}

func TestCastVoteUpsertIdempotence(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)

	if _, err := e.CastVote(c, "app-1", "partner-1", models.VoteYes, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.CastVote(c, "app-1", "partner-1", models.VoteNo, "changed my mind"); err != nil {
		t.Fatal(err)
	}

	mine := 0
	for _, v := range c.Votes.VotesFor("app-1") {
		if v.UserID == "partner-1" {
			mine++
			if v.Vote != models.VoteNo {
				t.Errorf("expected latest value no, got %s", v.Vote)
			}
			if v.ID != "id-3" {
				t.Errorf("expected a fresh id for the edit, got %s", v.ID)
			}
		}
	}
	if mine != 1 {
		t.Errorf("expected exactly one vote for the pair, got %d", mine)
	}
}

func TestCastVoteEmptyNotesAreNull(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)

	if _, err := e.CastVote(c, "app-2", "partner-1", models.VoteMaybe, "   "); err != nil {
		t.Fatal(err)
	}
	v, _ := c.Votes.VoteOf("app-2", "partner-1")
	if v.Notes != nil {
		t.Errorf("expected nil notes, got %q", *v.Notes)
	}
}

func TestVoteThenReveal(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)

	if c.Votes.HasQuorum("app-1") {
		t.Fatal("app-1 should start below quorum")
	}

	if _, err := e.CastVote(c, "app-1", "partner-1", models.VoteYes, "Backing this"); err != nil {
		t.Fatal(err)
	}

	votes := c.Votes.VotesFor("app-1")
	if len(votes) != ledger.QuorumSize || !c.Votes.HasQuorum("app-1") {
		t.Fatalf("expected quorum with %d votes, got %d", ledger.QuorumSize, len(votes))
	}
	for _, v := range votes {
		if v.Notes == nil {
			t.Errorf("vote %s lost its notes", v.ID)
		}
	}
}

func TestAdvanceThenDecide(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)
	if _, err := e.CastVote(c, "app-1", "partner-1", models.VoteYes, ""); err != nil {
		t.Fatal(err)
	}
	total := c.Total()

	ev, err := e.AdvanceToInterview(c, "app-1")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if ev.Kind != EventAdvanced || ev.CompanyName != "Acme" {
		t.Errorf("unexpected event %+v", ev)
	}
	if c.Total() != total {
		t.Errorf("advance changed total from %d to %d", total, c.Total())
	}
	rec, ok := c.Find("app-1")
	if !ok || rec.Kind() != KindInterview {
		t.Fatalf("expected app-1 in interview, got %v", rec)
	}

	head := c.Interview[0]
	if head.ID != "app-1" {
		t.Errorf("expected advanced record at head of interview, got %s", head.ID)
	}
	if head.Stage != models.StageDeliberation {
		t.Errorf("expected stage deliberation, got %s", head.Stage)
	}
	if head.Deliberation.Decision != models.DecisionPending {
		t.Errorf("expected pending decision, got %s", head.Deliberation.Decision)
	}
	if head.Deliberation.Status == nil || *head.Deliberation.Status != models.DeliberationScheduled {
		t.Errorf("expected scheduled status")
	}
	if len(head.Deliberation.Tags) != 0 || head.Deliberation.IdeaSummary != nil || head.Deliberation.Thoughts != nil || head.Deliberation.MeetingDate != nil {
		t.Errorf("expected empty deliberation, got %+v", head.Deliberation)
	}
	if !head.Deliberation.CreatedAt.Equal(testNow) {
		t.Errorf("expected created_at %v, got %v", testNow, head.Deliberation.CreatedAt)
	}
	if head.EmailSent {
		t.Error("email_sent should start false")
	}
	if len(head.Votes) != 3 {
		t.Fatalf("expected 3 copied votes, got %d", len(head.Votes))
	}

	ev, err = e.Decide(c, "app-1", models.StageInvested)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if ev.Kind != EventInvested || !ev.Celebrate() {
		t.Errorf("expected celebratory invested event, got %+v", ev)
	}
	if c.Total() != total {
		t.Errorf("decide changed total from %d to %d", total, c.Total())
	}

	archived := c.Archive[0]
	if archived.ID != "app-1" || archived.Stage != models.StageInvested {
		t.Errorf("expected invested app-1 at head of archive, got %s/%s", archived.ID, archived.Stage)
	}
	if len(archived.Votes) != 3 {
		t.Errorf("expected 3 archived votes, got %d", len(archived.Votes))
	}
	if archived.EmailSent {
		t.Error("email_sent should start false in the archive")
	}
	rec, _ = c.Find("app-1")
	if _, isInterview := rec.(InterviewRecord); isInterview {
		t.Error("archived record must not be an interview record")
	}
}

func TestDecideRejected(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)

	ev, err := e.Decide(c, "app-3", models.StageRejected)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != EventRejected || ev.Celebrate() {
		t.Errorf("expected plain rejected event, got %+v", ev)
	}
	if c.Archive[0].Stage != models.StageRejected {
		t.Errorf("expected rejected archive head, got %s", c.Archive[0].Stage)
	}
	if len(c.Interview) != 0 {
		t.Errorf("expected empty interview, got %d", len(c.Interview))
	}
}

func TestAdvanceErrors(t *testing.T) {
	tests := []struct {
		name  string
		appID string
		want  error
	}{
		{"unknown", "app-99", models.ErrApplicationNotFound},
		{"already in deliberation", "app-3", models.ErrInvalidStageForAdvance},
		{"archived", "app-4", models.ErrInvalidStageForAdvance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			c := newTestCollections(t, e)
			pipeline, interview, archive := len(c.Applications), len(c.Interview), len(c.Archive)

			_, err := e.AdvanceToInterview(c, tt.appID)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(c.Applications) != pipeline || len(c.Interview) != interview || len(c.Archive) != archive {
				t.Error("failed advance must not mutate collections")
			}
		})
	}
}

func TestAdvanceWithoutQuorum(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)

	// app-2 has no votes; the engine does not gate on quorum by default.
	if _, err := e.AdvanceToInterview(c, "app-2"); err != nil {
		t.Fatalf("expected advance without quorum to succeed, got %v", err)
	}
	if len(c.Interview[0].Votes) != 0 {
		t.Errorf("expected no votes copied")
	}
}

func TestAdvanceRequireQuorum(t *testing.T) {
	e := newTestEngine()
	e.RequireQuorum = true
	c := newTestCollections(t, e)

	if _, err := e.AdvanceToInterview(c, "app-1"); !errors.Is(err, models.ErrQuorumNotMet) {
		t.Fatalf("expected ErrQuorumNotMet, got %v", err)
	}
	if len(c.Applications) != 2 {
		t.Error("failed advance must not remove the application")
	}

	if _, err := e.CastVote(c, "app-1", "partner-1", models.VoteYes, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AdvanceToInterview(c, "app-1"); err != nil {
		t.Fatalf("expected advance with quorum to succeed, got %v", err)
	}
}

func TestDecideErrors(t *testing.T) {
	tests := []struct {
		name     string
		appID    string
		decision models.Stage
		want     error
	}{
		{"pipeline application", "app-1", models.StageInvested, models.ErrInvalidStageForDecision},
		{"already archived", "app-4", models.StageRejected, models.ErrInvalidStageForDecision},
		{"unknown", "app-99", models.StageInvested, models.ErrApplicationNotFound},
		{"non-terminal decision", "app-3", models.StageVoting, models.ErrInvalidEnumValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			c := newTestCollections(t, e)
			total := c.Total()
			interview := len(c.Interview)

			_, err := e.Decide(c, tt.appID, tt.decision)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if c.Total() != total || len(c.Interview) != interview {
				t.Error("failed decide must not mutate collections")
			}
		})
	}
}

func TestDoubleSubmitAfterTransition(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)

	if _, err := e.AdvanceToInterview(c, "app-1"); err != nil {
		t.Fatal(err)
	}
	_, err := e.AdvanceToInterview(c, "app-1")
	if !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("expected a stale advance to be an invalid state error, got %v", err)
	}
}

func TestCountConservation(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)
	total := c.Total()

	steps := []func() error{
		func() error { _, err := e.AdvanceToInterview(c, "app-1"); return err },
		func() error { _, err := e.AdvanceToInterview(c, "app-2"); return err },
		func() error { _, err := e.Decide(c, "app-2", models.StageRejected); return err },
		func() error { _, err := e.Decide(c, "app-3", models.StageInvested); return err },
		func() error { _, err := e.Decide(c, "app-1", models.StageInvested); return err },
	}

	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if c.Total() != total {
			t.Fatalf("step %d: total changed from %d to %d", i, total, c.Total())
		}
		seen := map[string]int{}
		for _, a := range c.Applications {
			seen[a.ID]++
		}
		for _, a := range c.Interview {
			seen[a.ID]++
		}
		for _, a := range c.Archive {
			seen[a.ID]++
		}
		for id, n := range seen {
			if n != 1 {
				t.Errorf("step %d: %s listed %d times", i, id, n)
			}
		}
	}
}

func TestTransitionsDoNotAliasEarlierSlices(t *testing.T) {
	e := newTestEngine()
	c := newTestCollections(t, e)
	before := c.Applications

	if _, err := e.AdvanceToInterview(c, "app-1"); err != nil {
		t.Fatal(err)
	}
	if before[0].ID != "app-1" || before[1].ID != "app-2" {
		t.Error("slice captured before the transition was modified")
	}
}
