package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"news_reconciler/internal/config"
	"news_reconciler/internal/domain"
	"news_reconciler/internal/filter"
	"news_reconciler/internal/locking"
	"news_reconciler/internal/merge"
	"news_reconciler/internal/publisher"
	"news_reconciler/internal/remotesync"
	"news_reconciler/internal/retention"
	"news_reconciler/internal/scheduler"
	"news_reconciler/internal/service"
	"news_reconciler/internal/source/feed"
	"news_reconciler/internal/source/greader"
	"news_reconciler/internal/storage/postgres"
)

// app holds the wired components shared by all commands.
type app struct {
	db            *sqlx.DB
	rabbitMQ      *publisher.RabbitMQ
	subscriptions *postgres.SubscriptionStore
	reloads       *service.ReloadService
	outbox        *remotesync.Outbox
	scheduler     *scheduler.Scheduler
	logger        *slog.Logger
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database")

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	// Initialize stores
	labelStore := postgres.NewLabelStore(db)
	syncItemStore := postgres.NewSyncItemStore(db)
	preferenceStore := postgres.NewPreferenceStore(db, cfg.Retention)
	subscriptionStore := postgres.NewSubscriptionStore(db)
	stores := service.Stores{
		Feeds:         postgres.NewFeedStore(db),
		News:          postgres.NewNewsStore(db),
		Labels:        labelStore,
		Preferences:   preferenceStore,
		SyncItems:     syncItemStore,
		Subscriptions: subscriptionStore,
		Index:         postgres.NewNewsIndex(db),
	}

	labels := remotesync.NewLabelCache(labelStore)
	engines := service.Engines{
		Merge:      merge.NewEngine(logger),
		Reconciler: remotesync.NewReconciler(labelStore, labels, logger),
		Retention:  retention.NewEnforcer(logger),
		Filters:    filter.NewEngine(postgres.NewFilterStore(db), filter.DefaultRegistry(labels), logger),
	}

	fetcher := feed.NewFetcher(feed.Config{
		Timeout:        cfg.Fetch.Timeout,
		UserAgent:      cfg.Fetch.UserAgent,
		MaxAttempts:    cfg.Fetch.Retry.MaxAttempts,
		InitialBackoff: cfg.Fetch.Retry.InitialBackoff,
		MaxBackoff:     cfg.Fetch.Retry.MaxBackoff,
	}, logger)

	reloads := service.NewReloadService(
		fetcher,
		stores,
		engines,
		postgres.NewTransactionManager(db),
		&locking.CommitLock{},
		locking.NewNewsLocks(),
		logger,
		cfg.Reload,
	).WithPublisher(rabbitMQ)
	reloads.AddListener(labels)

	sched := scheduler.NewScheduler(reloads, subscriptionStore, logger, cfg.Reload)

	a := &app{
		db:            db,
		rabbitMQ:      rabbitMQ,
		subscriptions: subscriptionStore,
		reloads:       reloads,
		scheduler:     sched,
		logger:        logger,
	}

	if cfg.Sync.Enabled {
		client := greader.NewClient(greader.Config{
			BaseURL:   cfg.Sync.BaseURL,
			AuthToken: cfg.Sync.AuthToken,
			Timeout:   cfg.Sync.Timeout,
			MaxItems:  cfg.Sync.MaxItems,
		}, nil, logger)
		a.outbox = remotesync.NewOutbox(syncItemStore, client, cfg.Sync.BatchSize, logger)
		reloads.WithSync(client, a.outbox)
		sched.WithFlusher(a.outbox)
	}

	repair, err := preferenceStore.IndexRepairNeeded(context.Background())
	if err != nil {
		logger.Warn("failed to read index repair flag", "error", err)
	} else if repair {
		logger.Warn("news index was flagged for repair by an earlier reload")
	}

	return a, nil
}

// subscription returns the subscription of the feed at link.
func (a *app) subscription(ctx context.Context, link string) (domain.Subscription, error) {
	subs, err := a.subscriptions.ListSubscriptions(ctx)
	if err != nil {
		return domain.Subscription{}, err
	}
	for _, sub := range subs {
		if sub.FeedLink == link {
			return sub, nil
		}
	}
	return domain.Subscription{}, fmt.Errorf("subscription %s: %w", link, domain.ErrNotFound)
}

func (a *app) Close() {
	if err := a.rabbitMQ.Close(); err != nil {
		a.logger.Warn("failed to close rabbitmq", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}
