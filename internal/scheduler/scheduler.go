package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cron "github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"news_reconciler/internal/config"
	"news_reconciler/internal/domain"
)

// Reloader defines the interface for reloading one subscription.
type Reloader interface {
	Reload(ctx context.Context, sub domain.Subscription, runRetention bool) (*domain.ReloadStats, error)
}

type SubscriptionLister interface {
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}

// Flusher pushes queued sync items to the remote service.
type Flusher interface {
	Flush(ctx context.Context) (domain.SyncStatus, error)
}

// RoundStats summarizes one reload round over all subscriptions.
type RoundStats struct {
	Subscriptions int
	Failed        int
	New           int
	Updated       int
	Deleted       int
	Duration      time.Duration
}

type Scheduler struct {
	reloader      Reloader
	subscriptions SubscriptionLister
	flusher       Flusher
	config        config.ReloadConfig
	logger        *slog.Logger
}

func NewScheduler(reloader Reloader, subscriptions SubscriptionLister, logger *slog.Logger, cfg config.ReloadConfig) *Scheduler {
	return &Scheduler{
		reloader:      reloader,
		subscriptions: subscriptions,
		config:        cfg,
		logger:        logger,
	}
}

// WithFlusher makes every round end with a flush of pending sync items.
func (s *Scheduler) WithFlusher(f Flusher) *Scheduler {
	s.flusher = f
	return s
}

// Start runs a round immediately and then on the configured cron schedule or
// interval until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.config.Schedule != "" {
		return s.startCron(ctx)
	}

	s.logger.Info("scheduler started", "interval", s.config.Interval)

	s.runRound(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runRound(ctx)
		}
	}
}

func (s *Scheduler) startCron(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.config.Schedule, func() { s.runRound(ctx) }); err != nil {
		return fmt.Errorf("parse reload schedule %q: %w", s.config.Schedule, err)
	}

	s.logger.Info("scheduler started", "schedule", s.config.Schedule)

	s.runRound(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) runRound(ctx context.Context) {
	stats, err := s.RunRound(ctx)
	if err != nil {
		s.logger.Error("reload round failed", "error", err)
		return
	}
	s.logger.Info("reload round completed",
		"subscriptions", stats.Subscriptions,
		"failed", stats.Failed,
		"new", stats.New,
		"updated", stats.Updated,
		"deleted", stats.Deleted,
		"duration", stats.Duration,
	)
}

// RunRound reloads every subscription with at most Workers reloads in
// flight. A failing subscription does not stop the others.
func (s *Scheduler) RunRound(ctx context.Context) (*RoundStats, error) {
	startTime := time.Now()

	subs, err := s.subscriptions.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	stats := &RoundStats{Subscriptions: len(subs)}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(max(s.config.Workers, 1))

	for _, sub := range subs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			reloadStats, err := s.reloadOne(ctx, sub)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
				return nil
			}
			stats.New += reloadStats.New
			stats.Updated += reloadStats.Updated
			stats.Deleted += reloadStats.Deleted
			return nil
		})
	}
	_ = g.Wait()

	if s.flusher != nil && ctx.Err() == nil {
		status, err := s.flusher.Flush(ctx)
		if err != nil {
			s.logger.Error("flush sync items failed", "error", err)
		} else if status.Total > 0 {
			s.logger.Info("sync items flushed", "applied", status.Applied, "total", status.Total)
		}
	}

	stats.Duration = time.Since(startTime)
	return stats, nil
}

func (s *Scheduler) reloadOne(ctx context.Context, sub domain.Subscription) (*domain.ReloadStats, error) {
	reloadCtx := ctx
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		reloadCtx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	stats, err := s.reloader.Reload(reloadCtx, sub, s.config.RunRetention)
	if err != nil {
		s.logger.Error("reload failed", "feed", sub.FeedLink, "error", err)
		return nil, err
	}
	return stats, nil
}
