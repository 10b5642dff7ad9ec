// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/seed"
	"github.com/danielhkuo/dealdesk/views"
)

// Session is one client's copy of the demo. Every method is safe for
// concurrent use; mutations are serialized so each either fully applies or
// not at all.
type Session struct {
	mu sync.Mutex

	tag         string
	currentUser models.Partner
	source      *seed.Dataset
	engine      *pipeline.Engine
	data        *seed.Dataset
	c           *pipeline.Collections

	createdAt time.Time
	lastSeen  time.Time
	metrics   *storeMetrics
}

func newSession(tag string, source *seed.Dataset, engine *pipeline.Engine, user models.Partner, now time.Time, m *storeMetrics) (*Session, error) {
	s := &Session{
		tag:         tag,
		currentUser: user,
		source:      source,
		engine:      engine,
		createdAt:   now,
		lastSeen:    now,
		metrics:     m,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load replaces the session state with a fresh copy of the seed.
func (s *Session) load() error {
	data := s.source.Clone()
	c, err := s.engine.Collect(data.Applications, data.Votes, data.Deliberations)
	if err != nil {
		return err
	}
	s.data = data
	s.c = c
	slog.Debug("session loaded",
		"session", s.tag,
		"pipeline", len(c.Applications),
		"interview", len(c.Interview),
		"archive", len(c.Archive),
		"votes", c.Votes.Len(),
	)
	return nil
}

// Tag is the log-safe label of the session.
func (s *Session) Tag() string { return s.tag }

// CurrentUser is the partner this session votes as.
func (s *Session) CurrentUser() models.Partner { return s.currentUser }

// Reset reseeds the session, discarding every change.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	s.metrics.resets.Inc()
	return nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Mutations

func (s *Session) CastVote(applicationID string, value models.VoteValue, notes string) (pipeline.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.engine.CastVote(s.c, applicationID, s.currentUser.ID, value, notes)
	s.metrics.observe("cast_vote", ev, err)
	return ev, err
}

func (s *Session) AdvanceToInterview(applicationID string) (pipeline.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.engine.AdvanceToInterview(s.c, applicationID)
	s.metrics.observe("advance", ev, err)
	return ev, err
}

func (s *Session) Decide(applicationID string, decision models.Stage) (pipeline.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.engine.Decide(s.c, applicationID, decision)
	s.metrics.observe("decide", ev, err)
	return ev, err
}

func (s *Session) UpdateDeliberation(applicationID string, patch pipeline.DeliberationPatch) (pipeline.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.engine.UpdateDeliberation(s.c, applicationID, patch)
	s.metrics.observe("update_deliberation", ev, err)
	return ev, err
}

func (s *Session) MarkEmailSent(applicationID string) (pipeline.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.engine.MarkEmailSent(s.c, applicationID)
	s.metrics.observe("mark_email_sent", ev, err)
	return ev, err
}

// Views. Each one is computed under the lock and shares no slices with the
// session, so callers may hold on to it.

func (s *Session) Partners() []models.Partner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Partner{}, s.data.Partners...)
}

func (s *Session) Pipeline() views.Pipeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return views.PipelinePartition(s.c.Applications, s.c.Votes, s.data.Partners, s.currentUser.ID)
}

func (s *Session) Dashboard() views.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return views.ComputeDashboard(views.DashboardInput{
		Applications:  s.c.Applications,
		Votes:         s.c.Votes,
		Interview:     s.c.Interview,
		Archive:       s.c.Archive,
		Notifications: s.data.Notifications,
		Investments:   s.data.Investments,
		CurrentUserID: s.currentUser.ID,
	})
}

func (s *Session) Interview() []models.DeliberationApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.DeliberationApplication{}, s.c.Interview...)
}

func (s *Session) Archive(query string, key views.ArchiveSort) ([]models.ArchivedApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return views.SearchAndSortArchive(s.c.Archive, query, key)
}

// Portfolio is the portfolio screen: the filtered list plus the figures
// computed over the whole portfolio.
type Portfolio struct {
	Investments []models.Investment `json:"investments"`
	Stats       views.PortfolioStats `json:"stats"`
	Monthly     views.MonthlyRollup  `json:"monthly"`
}

func (s *Session) Portfolio(query string, key views.PortfolioSort) (Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := views.SearchAndSortPortfolio(s.data.Investments, query, key)
	if err != nil {
		return Portfolio{}, err
	}
	return Portfolio{
		Investments: list,
		Stats:       views.ComputePortfolioStats(s.data.Investments),
		Monthly:     views.ComputeMonthlyRollup(s.data.Investments, views.MonthlyWindow),
	}, nil
}

func (s *Session) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification{}, s.data.Notifications...)
}

// Find reports which collection holds an application.
func (s *Session) Find(applicationID string) (pipeline.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Find(applicationID)
}
