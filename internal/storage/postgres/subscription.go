package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"news_reconciler/internal/domain"
)

type SubscriptionStore struct {
	db *sqlx.DB
}

func NewSubscriptionStore(db *sqlx.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

func (s *SubscriptionStore) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &subs, `
		SELECT feed_link, title, sync_enabled, last_error,
			COALESCE(last_success, 'epoch'::timestamptz) AS last_success
		FROM subscriptions
		ORDER BY feed_link`)
	if err != nil {
		return nil, fmt.Errorf("select subscriptions: %w", err)
	}
	return subs, nil
}

// Subscribe creates the feed at link, if needed, and subscribes to it.
func (s *SubscriptionStore) Subscribe(ctx context.Context, sub domain.Subscription) error {
	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO feeds (link, title) VALUES ($1, $2)
		ON CONFLICT (link) DO NOTHING`, sub.FeedLink, sub.Title)
	if err != nil {
		return fmt.Errorf("create feed: %w", err)
	}
	_, err = exec.ExecContext(ctx, `
		INSERT INTO subscriptions (feed_link, title, sync_enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (feed_link) DO UPDATE SET
			title = EXCLUDED.title,
			sync_enabled = EXCLUDED.sync_enabled`,
		sub.FeedLink, sub.Title, sub.SyncEnabled)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

func (s *SubscriptionStore) MarkError(ctx context.Context, feedLink string, cause string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE subscriptions SET last_error = $2 WHERE feed_link = $1", feedLink, cause)
	if err != nil {
		return fmt.Errorf("mark subscription error: %w", err)
	}
	return nil
}

func (s *SubscriptionStore) MarkSuccess(ctx context.Context, feedLink string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE subscriptions SET last_error = NULL, last_success = NOW() WHERE feed_link = $1", feedLink)
	if err != nil {
		return fmt.Errorf("mark subscription success: %w", err)
	}
	return nil
}
