// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/dealdesk/ledger"
	"github.com/danielhkuo/dealdesk/models"
)

// Engine applies stage transitions to a session's collections. It keeps no
// state between calls; every precondition is checked before the first
// mutation, so a failed call leaves the collections untouched.
type Engine struct {
	Partners []models.Partner

	// RequireQuorum makes AdvanceToInterview fail with ErrQuorumNotMet until
	// every partner has voted. Off by default: quorum is a UI affordance.
	RequireQuorum bool

	Now   func() time.Time
	NewID func() string
}

// NewEngine returns an engine using the wall clock and random UUIDs.
func NewEngine(partners []models.Partner) *Engine {
	return &Engine{
		Partners: partners,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now().UTC()
	}
	return e.Now().UTC()
}

func (e *Engine) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

func (e *Engine) partner(id string) (models.Partner, bool) {
	for _, p := range e.Partners {
		if p.ID == id {
			return p, true
		}
	}
	return models.Partner{}, false
}

// CastVote records userID's vote on a pipeline application, replacing any
// earlier vote by the same partner. Every call mints a new vote id.
func (e *Engine) CastVote(c *Collections, applicationID, userID string, value models.VoteValue, notes string) (Event, error) {
	if !value.Valid() {
		return Event{}, fmt.Errorf("%w: %q", models.ErrInvalidVoteValue, value)
	}
	if _, ok := e.partner(userID); !ok {
		return Event{}, fmt.Errorf("%w: %s", models.ErrPartnerNotFound, userID)
	}

	i := c.pipelineIndex(applicationID)
	if i < 0 {
		return Event{}, e.missing(c, applicationID, models.ErrInvalidStageForVote)
	}
	app := c.Applications[i]
	if !app.Stage.InPipeline() {
		return Event{}, fmt.Errorf("%w: %s is %s", models.ErrInvalidStageForVote, applicationID, app.Stage)
	}

	var notesPtr *string
	if strings.TrimSpace(notes) != "" {
		notesPtr = &notes
	}

	c.Votes.Upsert(models.Vote{
		ID:            e.newID(),
		ApplicationID: applicationID,
		UserID:        userID,
		Vote:          value,
		Notes:         notesPtr,
	})

	return e.event(EventVoteRecorded, app), nil
}

// AdvanceToInterview moves a pipeline application into deliberation. The
// application's votes are copied onto the new interview record; the ledger
// keeps its own copy.
func (e *Engine) AdvanceToInterview(c *Collections, applicationID string) (Event, error) {
	i := c.pipelineIndex(applicationID)
	if i < 0 {
		return Event{}, e.missing(c, applicationID, models.ErrInvalidStageForAdvance)
	}
	app := c.Applications[i]
	if !app.Stage.InPipeline() {
		return Event{}, fmt.Errorf("%w: %s is %s", models.ErrInvalidStageForAdvance, applicationID, app.Stage)
	}

	if e.RequireQuorum && !c.Votes.HasQuorum(applicationID) {
		return Event{}, fmt.Errorf("%w: %d of %d votes", models.ErrQuorumNotMet, c.Votes.Count(applicationID), ledger.QuorumSize)
	}
	votes := c.Votes.VotesFor(applicationID)

	rec := models.DeliberationApplication{
		Application:  app,
		Votes:        votes,
		Deliberation: e.newDeliberation(applicationID),
	}
	rec.Stage = models.StageDeliberation

	c.Applications = without(c.Applications, i)
	c.Interview = prepend(c.Interview, rec)

	return e.event(EventAdvanced, rec.Application), nil
}

// Decide closes an interview with a final decision and archives it. The
// deliberation notes are not carried into the archive.
func (e *Engine) Decide(c *Collections, applicationID string, decision models.Stage) (Event, error) {
	if !decision.Terminal() {
		return Event{}, fmt.Errorf("%w: decision %q must be invested or rejected", models.ErrInvalidEnumValue, decision)
	}

	i := c.interviewIndex(applicationID)
	if i < 0 {
		return Event{}, e.missing(c, applicationID, models.ErrInvalidStageForDecision)
	}
	rec := c.Interview[i]

	archived := models.ArchivedApplication{
		Application: rec.Application,
		Votes:       cloneVotes(rec.Votes),
	}
	archived.Stage = decision

	c.Interview = without(c.Interview, i)
	c.Archive = prepend(c.Archive, archived)

	kind := EventRejected
	if decision == models.StageInvested {
		kind = EventInvested
	}
	return e.event(kind, archived.Application), nil
}

func (e *Engine) newDeliberation(applicationID string) models.Deliberation {
	status := models.DeliberationScheduled
	return models.Deliberation{
		ID:            e.newID(),
		ApplicationID: applicationID,
		Decision:      models.DecisionPending,
		Status:        &status,
		Tags:          []string{},
		CreatedAt:     e.now(),
	}
}

// missing builds the error for an id absent from the expected collection:
// wrong-stage if another collection holds it, not-found otherwise.
func (e *Engine) missing(c *Collections, applicationID string, wrongStage error) error {
	if rec, ok := c.Find(applicationID); ok {
		return fmt.Errorf("%w: %s is in %s", wrongStage, applicationID, rec.Kind())
	}
	return fmt.Errorf("%w: %s", models.ErrApplicationNotFound, applicationID)
}

func (e *Engine) event(kind EventKind, app models.Application) Event {
	return Event{
		Kind:          kind,
		ApplicationID: app.ID,
		CompanyName:   app.CompanyName,
		At:            e.now(),
	}
}
