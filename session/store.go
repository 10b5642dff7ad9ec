// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/seed"
	"github.com/danielhkuo/dealdesk/tokens"
)

// ErrSessionNotFound is returned for unknown, expired or malformed tokens.
var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultTTL           = 30 * time.Minute
	defaultSweepInterval = time.Minute
)

// Options configure a Store.
type Options struct {
	// TTL is how long an idle session survives. Zero means DefaultTTL.
	TTL time.Duration
	// SweepInterval is how often the janitor looks for idle sessions.
	SweepInterval time.Duration
	// Salt keys the HMAC applied to session tokens.
	Salt string
	// CurrentUserID overrides the seed's current user when set.
	CurrentUserID string
	// RequireQuorum is copied onto every session's engine.
	RequireQuorum bool
	// Registry receives the store's metrics; nil uses a private registry.
	Registry prometheus.Registerer

	Now   func() time.Time
	NewID func() string
}

// Store holds the live sessions, keyed by an HMAC of their token.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	source  *seed.Dataset
	user    models.Partner
	opts    Options
	metrics *storeMetrics

	cancel context.CancelFunc
	done   chan struct{}
}

// NewStore validates opts against the seed and returns an empty store. Call
// Start to run the idle-session janitor.
func NewStore(source *seed.Dataset, opts Options) (*Store, error) {
	if source == nil {
		return nil, errors.New("session store needs a seed dataset")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	user, ok := source.CurrentUser()
	userID := source.CurrentUserID
	if opts.CurrentUserID != "" {
		userID = opts.CurrentUserID
		user, ok = source.Partner(userID)
	}
	if !ok {
		return nil, fmt.Errorf("current user: %w: %s", models.ErrPartnerNotFound, userID)
	}

	return &Store{
		sessions: make(map[string]*Session),
		source:   source,
		user:     user,
		opts:     opts,
		metrics:  initStoreMetrics(opts.Registry),
	}, nil
}

func (s *Store) newEngine() *pipeline.Engine {
	e := pipeline.NewEngine(s.source.Partners)
	e.RequireQuorum = s.opts.RequireQuorum
	e.Now = s.opts.Now
	if s.opts.NewID != nil {
		e.NewID = s.opts.NewID
	}
	return e
}

// Create starts a session from the seed and returns its token.
func (s *Store) Create() (string, *Session, error) {
	token, err := tokens.GenerateSessionToken()
	if err != nil {
		return "", nil, err
	}

	sess, err := newSession(tokens.SessionTag(token, s.opts.Salt), s.source, s.newEngine(), s.user, s.opts.Now(), s.metrics)
	if err != nil {
		return "", nil, fmt.Errorf("failed to seed session: %w", err)
	}

	s.mu.Lock()
	s.sessions[tokens.SessionKey(token, s.opts.Salt)] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.created.Inc()
	s.metrics.active.Set(float64(n))
	slog.Info("session created", "session", sess.Tag(), "active", n)
	return token, sess, nil
}

// Get returns the session for token and marks it as used.
func (s *Store) Get(token string) (*Session, error) {
	if err := tokens.ValidateSessionToken(token); err != nil {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	sess, ok := s.sessions[tokens.SessionKey(token, s.opts.Salt)]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := s.opts.Now()
	if now.Sub(sess.idleSince()) > s.opts.TTL {
		s.Delete(token)
		return nil, ErrSessionNotFound
	}
	sess.touch(now)
	return sess, nil
}

// ExpiresAt is when sess will be evicted if it stays idle.
func (s *Store) ExpiresAt(sess *Session) time.Time {
	return sess.idleSince().Add(s.opts.TTL)
}

// Delete drops the session for token, if any.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, tokens.SessionKey(token, s.opts.Salt))
	n := len(s.sessions)
	s.mu.Unlock()
	s.metrics.active.Set(float64(n))
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts every session idle for longer than the TTL and returns how
// many were removed.
func (s *Store) Sweep() int {
	now := s.opts.Now()

	s.mu.Lock()
	evicted := 0
	for key, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.opts.TTL {
			delete(s.sessions, key)
			evicted++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	if evicted > 0 {
		s.metrics.expired.Add(float64(evicted))
		slog.Info("sessions expired", "evicted", evicted, "active", n)
	}
	s.metrics.active.Set(float64(n))
	return evicted
}

// Start runs the janitor until ctx is done or Close is called.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.opts.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Close stops the janitor and waits for it to exit.
func (s *Store) Close() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
