// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/seed"
	"github.com/danielhkuo/dealdesk/views"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, opts Options) (*Store, *fakeClock) {
	t.Helper()
	ds, err := seed.Default()
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)}
	opts.Now = clock.Now
	if opts.Salt == "" {
		opts.Salt = "test-salt"
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	var n atomic.Int64
	opts.NewID = func() string { return fmt.Sprintf("id-%d", n.Add(1)) }

	store, err := NewStore(ds, opts)
	require.NoError(t, err)
	return store, clock
}

func TestNewStoreRejectsUnknownUser(t *testing.T) {
	ds, err := seed.Default()
	require.NoError(t, err)

	_, err = NewStore(ds, Options{CurrentUserID: "partner-9"})
	assert.ErrorIs(t, err, models.ErrPartnerNotFound)

	orphan := ds.Clone()
	orphan.CurrentUserID = "partner-9"
	_, err = NewStore(orphan, Options{})
	assert.ErrorIs(t, err, models.ErrPartnerNotFound)
	assert.ErrorContains(t, err, "partner-9")
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t, Options{})

	token, sess, err := store.Create()
	require.NoError(t, err)
	assert.Equal(t, "partner-1", sess.CurrentUser().ID)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.active))
	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.created))

	got, err := store.Get(token)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_, err = store.Get("not-a-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	other, _, err := store.Create()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
	assert.NotContains(t, store.sessions, token, "raw tokens must not be map keys")
}

func TestCurrentUserOverride(t *testing.T) {
	store, _ := newTestStore(t, Options{CurrentUserID: "partner-2"})
	_, sess, err := store.Create()
	require.NoError(t, err)
	assert.Equal(t, "Alex Chen", sess.CurrentUser().Name)
}

func TestSessionsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t, Options{})
	_, a, err := store.Create()
	require.NoError(t, err)
	_, b, err := store.Create()
	require.NoError(t, err)

	_, err = a.AdvanceToInterview("app-1")
	require.NoError(t, err)

	rec, ok := b.Find("app-1")
	require.True(t, ok)
	assert.Equal(t, pipeline.KindPipeline, rec.Kind(), "another session's transition leaked")
}

func TestSeededSession(t *testing.T) {
	store, _ := newTestStore(t, Options{})
	_, sess, err := store.Create()
	require.NoError(t, err)

	d := sess.Dashboard()
	assert.Equal(t, views.DashboardStats{Pipeline: 3, Deliberation: 1, Invested: 1, Rejected: 0}, d.Stats)
	assert.Equal(t, 3, d.UnreadNotifications)
	assert.Len(t, d.NeedsVote, 3)
	assert.Equal(t, int64(2150000), d.Portfolio.TotalInvested)

	interview := sess.Interview()
	require.Len(t, interview, 1)
	assert.Equal(t, "delib-1", interview[0].Deliberation.ID)
	assert.Len(t, interview[0].Votes, 3)

	p, err := sess.Portfolio("", views.PortfolioAmountHigh)
	require.NoError(t, err)
	assert.Equal(t, "inv-3", p.Investments[0].ID)
	assert.Len(t, p.Monthly.Buckets, views.MonthlyWindow)
}

func TestVoteAdvanceDecideFlow(t *testing.T) {
	store, _ := newTestStore(t, Options{})
	_, sess, err := store.Create()
	require.NoError(t, err)

	ev, err := sess.CastVote("app-1", models.VoteYes, "Backing this")
	require.NoError(t, err)
	assert.Equal(t, pipeline.EventVoteRecorded, ev.Kind)

	p := sess.Pipeline()
	require.Len(t, p.AlreadyVoted, 1)
	assert.True(t, p.AlreadyVoted[0].Revealed)

	_, err = sess.AdvanceToInterview("app-1")
	require.NoError(t, err)
	ev, err = sess.Decide("app-1", models.StageInvested)
	require.NoError(t, err)
	assert.True(t, ev.Celebrate())

	archive, err := sess.Archive("neural", views.ArchiveDateNewest)
	require.NoError(t, err)
	require.Len(t, archive, 1)
	assert.Equal(t, models.StageInvested, archive[0].Stage)

	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.votes))
	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.transitions.WithLabelValues("advanced")))
	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.transitions.WithLabelValues("invested")))

	_, err = sess.Decide("app-1", models.StageRejected)
	assert.ErrorIs(t, err, models.ErrInvalidState)
	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.rejected.WithLabelValues("decide")))
}

func TestReset(t *testing.T) {
	store, _ := newTestStore(t, Options{})
	_, sess, err := store.Create()
	require.NoError(t, err)

	_, err = sess.AdvanceToInterview("app-2")
	require.NoError(t, err)
	_, err = sess.Decide("app-4", models.StageRejected)
	require.NoError(t, err)

	require.NoError(t, sess.Reset())

	d := sess.Dashboard()
	assert.Equal(t, 3, d.Stats.Pipeline)
	assert.Equal(t, 1, d.Stats.Deliberation)
	assert.Equal(t, 0, d.Stats.Rejected)
	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.resets))
}

func TestRequireQuorumOption(t *testing.T) {
	store, _ := newTestStore(t, Options{RequireQuorum: true})
	_, sess, err := store.Create()
	require.NoError(t, err)

	_, err = sess.AdvanceToInterview("app-2")
	assert.ErrorIs(t, err, models.ErrQuorumNotMet)
}

func TestGetExpiresIdleSession(t *testing.T) {
	store, clock := newTestStore(t, Options{TTL: 10 * time.Minute})
	token, _, err := store.Create()
	require.NoError(t, err)

	clock.Advance(9 * time.Minute)
	_, err = store.Get(token)
	require.NoError(t, err, "use within the TTL keeps the session")

	clock.Advance(9 * time.Minute)
	_, err = store.Get(token)
	require.NoError(t, err, "the previous Get refreshed the idle timer")

	clock.Advance(11 * time.Minute)
	_, err = store.Get(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestSweep(t *testing.T) {
	store, clock := newTestStore(t, Options{TTL: time.Minute})
	_, _, err := store.Create()
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	fresh, _, err := store.Create()
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.expired))
	assert.Equal(t, float64(1), testutil.ToFloat64(store.metrics.active))

	_, err = store.Get(fresh)
	assert.NoError(t, err)
}

func TestJanitorStopsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, clock := newTestStore(t, Options{TTL: time.Minute, SweepInterval: 5 * time.Millisecond})
	_, _, err := store.Create()
	require.NoError(t, err)

	store.Start(context.Background())
	store.Start(context.Background()) // second call is a no-op
	clock.Advance(2 * time.Minute)

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)

	store.Close()
	store.Close()
}

func TestJanitorStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, _ := newTestStore(t, Options{SweepInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	store.Start(ctx)
	cancel()
	store.Close()
}

func TestConcurrentVotes(t *testing.T) {
	store, _ := newTestStore(t, Options{})
	_, sess, err := store.Create()
	require.NoError(t, err)

	values := []models.VoteValue{models.VoteYes, models.VoteMaybe, models.VoteNo}
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := sess.CastVote("app-3", values[i%3], "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	p := sess.Pipeline()
	for _, e := range p.AlreadyVoted {
		if e.Application.ID == "app-3" {
			assert.Equal(t, 1, e.VoteCount, "concurrent recasts must collapse to one vote")
			return
		}
	}
	t.Fatal("app-3 should be in already-voted")
}

func TestConcurrentAdvanceHappensOnce(t *testing.T) {
	store, _ := newTestStore(t, Options{})
	_, sess, err := store.Create()
	require.NoError(t, err)

	var ok atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := sess.AdvanceToInterview("app-1"); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Len(t, sess.Interview(), 2)
}
