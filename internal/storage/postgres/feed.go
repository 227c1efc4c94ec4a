package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"news_reconciler/internal/domain"
)

type FeedStore struct {
	db *sqlx.DB
}

func NewFeedStore(db *sqlx.DB) *FeedStore {
	return &FeedStore{db: db}
}

type feedRow struct {
	ID          int64        `db:"id"`
	Link        string       `db:"link"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	HomePage    string       `db:"home_page"`
	PublishDate sql.NullTime `db:"publish_date"`
	Properties  []byte       `db:"properties"`
}

// LoadByLink returns the feed at link with all its news, or domain.ErrNotFound.
func (s *FeedStore) LoadByLink(ctx context.Context, link string) (*domain.Feed, error) {
	exec := GetExecutor(ctx, s.db)

	var row feedRow
	err := sqlx.GetContext(ctx, exec, &row, `
		SELECT id, link, title, description, home_page, publish_date, properties
		FROM feeds
		WHERE link = $1`, link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feed %s: %w", link, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}

	feed := &domain.Feed{
		ID:          row.ID,
		Link:        row.Link,
		Title:       row.Title,
		Description: row.Description,
		HomePage:    row.HomePage,
		PublishDate: row.PublishDate.Time,
	}
	if err := json.Unmarshal(row.Properties, &feed.Properties); err != nil {
		return nil, fmt.Errorf("decode properties of feed %s: %w", link, err)
	}
	if len(feed.Properties) == 0 {
		feed.Properties = nil
	}

	feed.News, err = loadFeedNews(ctx, exec, link)
	if err != nil {
		return nil, err
	}
	return feed, nil
}

func (s *FeedStore) FeedExists(ctx context.Context, link string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists,
		"SELECT EXISTS (SELECT 1 FROM feeds WHERE link = $1)", link)
	if err != nil {
		return false, fmt.Errorf("check feed: %w", err)
	}
	return exists, nil
}

// SaveFeed writes the feed metadata, creating the feed when needed. News are
// written separately through NewsStore.
func (s *FeedStore) SaveFeed(ctx context.Context, feed *domain.Feed) error {
	properties, err := jsonb(feed.Properties, "{}")
	if err != nil {
		return err
	}

	query := `
		INSERT INTO feeds (link, title, description, home_page, publish_date, properties)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (link) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			home_page = EXCLUDED.home_page,
			publish_date = EXCLUDED.publish_date,
			properties = EXCLUDED.properties
		RETURNING id`

	err = sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &feed.ID, query,
		feed.Link,
		feed.Title,
		feed.Description,
		feed.HomePage,
		nullTime(feed.PublishDate),
		properties,
	)
	if err != nil {
		return fmt.Errorf("save feed: %w", err)
	}
	return nil
}
