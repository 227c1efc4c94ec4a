package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"news_reconciler/internal/domain"
)

// Fetcher retrieves and parses a feed. It returns domain.ErrNotModified when
// the validators in cg still match and domain.ErrAuthRequired when the
// feed needs credentials.
type Fetcher interface {
	FetchAndParse(ctx context.Context, link string, cg *domain.ConditionalGetInfo) (*domain.FetchResult, error)
}

type FeedStore interface {
	// LoadByLink returns domain.ErrNotFound when the feed was deleted.
	LoadByLink(ctx context.Context, link string) (*domain.Feed, error)
	FeedExists(ctx context.Context, link string) (bool, error)
	SaveFeed(ctx context.Context, feed *domain.Feed) error
}

type NewsStore interface {
	NextIDs(ctx context.Context, n int) ([]int64, error)
	GetNews(ctx context.Context, id int64) (*domain.News, error)
	UpsertNews(ctx context.Context, news []*domain.News) error
	DeleteNews(ctx context.Context, ids []int64) error
}

type LabelStore interface {
	SaveLabels(ctx context.Context, labels []*domain.Label) error
}

type PreferenceStore interface {
	Retention(ctx context.Context, feedLink string) (domain.RetentionPreference, error)
	ConditionalGet(ctx context.Context, feedLink string) (*domain.ConditionalGetInfo, error)
	SaveConditionalGet(ctx context.Context, info *domain.ConditionalGetInfo) error
	FlagIndexRepair(ctx context.Context) error
}

type SyncItemStore interface {
	LoadUncommitted(ctx context.Context) (map[string]*domain.SyncItem, error)
}

type SubscriptionStore interface {
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	MarkError(ctx context.Context, feedLink string, cause string) error
	MarkSuccess(ctx context.Context, feedLink string) error
}

// NewsIndex is the persistent full-text index used to find equivalent news
// of other feeds. Lookups return 0 when nothing matches.
type NewsIndex interface {
	FindByGUID(ctx context.Context, guid, excludeFeed string) (int64, error)
	FindByLink(ctx context.Context, link, excludeFeed string) (int64, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, events []domain.Event) error
	Close() error
}

// Listener receives the events of every committed reload, in commit order.
type Listener interface {
	OnEvents(events []domain.Event)
}

// SyncQueue accepts local deltas for the remote synchronization service.
type SyncQueue interface {
	Queue(ctx context.Context, items ...*domain.SyncItem) error
}
