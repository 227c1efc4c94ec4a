package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news_reconciler/internal/config"
	"news_reconciler/internal/domain"
)

type fakeReloader struct {
	mu       sync.Mutex
	reloaded []string
	failing  map[string]bool
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (f *fakeReloader) Reload(ctx context.Context, sub domain.Subscription, runRetention bool) (*domain.ReloadStats, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	f.reloaded = append(f.reloaded, sub.FeedLink)
	f.mu.Unlock()

	if f.failing[sub.FeedLink] {
		return nil, errors.New("boom")
	}
	return &domain.ReloadStats{FeedLink: sub.FeedLink, New: 2, Updated: 1}, nil
}

type fakeLister struct {
	subs []domain.Subscription
	err  error
}

func (f *fakeLister) ListSubscriptions(context.Context) ([]domain.Subscription, error) {
	return f.subs, f.err
}

type fakeFlusher struct {
	calls atomic.Int32
}

func (f *fakeFlusher) Flush(context.Context) (domain.SyncStatus, error) {
	f.calls.Add(1)
	return domain.SyncStatus{Applied: 1, Total: 1}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func subscriptions(links ...string) []domain.Subscription {
	subs := make([]domain.Subscription, 0, len(links))
	for _, l := range links {
		subs = append(subs, domain.Subscription{FeedLink: l})
	}
	return subs
}

func TestRunRound_ReloadsEverySubscription(t *testing.T) {
	reloader := &fakeReloader{failing: map[string]bool{"b": true}}
	lister := &fakeLister{subs: subscriptions("a", "b", "c")}
	flusher := &fakeFlusher{}

	s := NewScheduler(reloader, lister, testLogger(), config.ReloadConfig{Workers: 2, Timeout: time.Second}).
		WithFlusher(flusher)

	stats, err := s.RunRound(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, reloader.reloaded)
	assert.Equal(t, 3, stats.Subscriptions)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 4, stats.New)
	assert.Equal(t, 2, stats.Updated)
	assert.Equal(t, int32(1), flusher.calls.Load())
}

func TestRunRound_BoundsConcurrency(t *testing.T) {
	reloader := &fakeReloader{delay: 20 * time.Millisecond}
	lister := &fakeLister{subs: subscriptions("a", "b", "c", "d", "e", "f")}

	s := NewScheduler(reloader, lister, testLogger(), config.ReloadConfig{Workers: 2})

	_, err := s.RunRound(context.Background())
	require.NoError(t, err)

	assert.Len(t, reloader.reloaded, 6)
	assert.LessOrEqual(t, reloader.peak.Load(), int32(2))
}

func TestRunRound_ListFailure(t *testing.T) {
	reloader := &fakeReloader{}
	lister := &fakeLister{err: errors.New("db down")}

	s := NewScheduler(reloader, lister, testLogger(), config.ReloadConfig{Workers: 1})

	_, err := s.RunRound(context.Background())

	assert.ErrorContains(t, err, "list subscriptions")
	assert.Empty(t, reloader.reloaded)
}

func TestRunRound_CancelledSkipsFlush(t *testing.T) {
	reloader := &fakeReloader{}
	lister := &fakeLister{subs: subscriptions("a")}
	flusher := &fakeFlusher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScheduler(reloader, lister, testLogger(), config.ReloadConfig{Workers: 1}).WithFlusher(flusher)

	_, err := s.RunRound(ctx)
	require.NoError(t, err)

	assert.Empty(t, reloader.reloaded)
	assert.Zero(t, flusher.calls.Load())
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewScheduler(&fakeReloader{}, &fakeLister{}, testLogger(), config.ReloadConfig{Workers: 1, Schedule: "not a cron"})

	err := s.Start(context.Background())

	assert.ErrorContains(t, err, "parse reload schedule")
}

func TestStart_StopsOnCancel(t *testing.T) {
	reloader := &fakeReloader{}
	lister := &fakeLister{subs: subscriptions("a")}
	s := NewScheduler(reloader, lister, testLogger(), config.ReloadConfig{Workers: 1, Interval: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := s.Start(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{"a"}, reloader.reloaded)
}
