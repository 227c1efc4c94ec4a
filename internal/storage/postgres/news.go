package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"news_reconciler/internal/domain"
)

type NewsStore struct {
	db *sqlx.DB
}

func NewNewsStore(db *sqlx.DB) *NewsStore {
	return &NewsStore{db: db}
}

const newsColumns = `id, feed_link, guid, link, title, description, author, publish_date,
	modified_date, receive_date, attachments, categories, state, flagged, properties`

type newsRow struct {
	ID           int64        `db:"id"`
	FeedLink     string       `db:"feed_link"`
	GUID         string       `db:"guid"`
	Link         string       `db:"link"`
	Title        string       `db:"title"`
	Description  string       `db:"description"`
	Author       string       `db:"author"`
	PublishDate  sql.NullTime `db:"publish_date"`
	ModifiedDate sql.NullTime `db:"modified_date"`
	ReceiveDate  time.Time    `db:"receive_date"`
	Attachments  []byte       `db:"attachments"`
	Categories   []byte       `db:"categories"`
	State        string       `db:"state"`
	Flagged      bool         `db:"flagged"`
	Properties   []byte       `db:"properties"`
}

func (r newsRow) toDomain() (*domain.News, error) {
	state, err := domain.ParseState(r.State)
	if err != nil {
		return nil, fmt.Errorf("news %d: %w", r.ID, err)
	}
	n := &domain.News{
		ID:           r.ID,
		FeedLink:     r.FeedLink,
		GUID:         r.GUID,
		Link:         r.Link,
		Title:        r.Title,
		Description:  r.Description,
		Author:       r.Author,
		PublishDate:  r.PublishDate.Time,
		ModifiedDate: r.ModifiedDate.Time,
		ReceiveDate:  r.ReceiveDate,
		State:        state,
		Flagged:      r.Flagged,
	}
	if err := json.Unmarshal(r.Attachments, &n.Attachments); err != nil {
		return nil, fmt.Errorf("decode attachments of news %d: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Categories, &n.Categories); err != nil {
		return nil, fmt.Errorf("decode categories of news %d: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Properties, &n.Properties); err != nil {
		return nil, fmt.Errorf("decode properties of news %d: %w", r.ID, err)
	}
	if len(n.Properties) == 0 {
		n.Properties = nil
	}
	return n, nil
}

// NextIDs reserves n news ids from the sequence.
func (s *NewsStore) NextIDs(ctx context.Context, n int) ([]int64, error) {
	if n <= 0 {
		return nil, nil
	}
	var ids []int64
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids,
		"SELECT nextval('news_id_seq') FROM generate_series(1, $1)", n)
	if err != nil {
		return nil, fmt.Errorf("reserve news ids: %w", err)
	}
	return ids, nil
}

func (s *NewsStore) GetNews(ctx context.Context, id int64) (*domain.News, error) {
	exec := GetExecutor(ctx, s.db)

	var row newsRow
	err := sqlx.GetContext(ctx, exec, &row, "SELECT "+newsColumns+" FROM news WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("news %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}

	n, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	if err := attachLabels(ctx, exec, []*domain.News{n}); err != nil {
		return nil, err
	}
	return n, nil
}

// loadFeedNews returns every news of the feed at link, labels included.
func loadFeedNews(ctx context.Context, exec sqlx.ExtContext, link string) ([]*domain.News, error) {
	var rows []newsRow
	err := sqlx.SelectContext(ctx, exec, &rows,
		"SELECT "+newsColumns+" FROM news WHERE feed_link = $1 ORDER BY id", link)
	if err != nil {
		return nil, fmt.Errorf("select news: %w", err)
	}

	news := make([]*domain.News, 0, len(rows))
	for _, r := range rows {
		n, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		news = append(news, n)
	}
	if err := attachLabels(ctx, exec, news); err != nil {
		return nil, err
	}
	return news, nil
}

func attachLabels(ctx context.Context, exec sqlx.ExtContext, news []*domain.News) error {
	if len(news) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.News, len(news))
	ids := make([]int64, 0, len(news))
	for _, n := range news {
		byID[n.ID] = n
		ids = append(ids, n.ID)
	}

	var rows []struct {
		NewsID int64 `db:"news_id"`
		domain.Label
	}
	err := sqlx.SelectContext(ctx, exec, &rows, `
		SELECT nl.news_id, l.id, l.name, l.color, l.sort_order
		FROM news_labels nl
		INNER JOIN labels l ON l.id = nl.label_id
		WHERE nl.news_id = ANY($1)
		ORDER BY l.sort_order, l.name`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("select news labels: %w", err)
	}

	labels := make(map[int64]*domain.Label)
	for _, r := range rows {
		l, ok := labels[r.ID]
		if !ok {
			label := r.Label
			l = &label
			labels[r.ID] = l
		}
		byID[r.NewsID].AddLabel(l)
	}
	return nil
}

// UpsertNews writes news and replaces their label links. Every news must
// carry an id and its labels must already be persisted.
func (s *NewsStore) UpsertNews(ctx context.Context, news []*domain.News) error {
	exec := GetExecutor(ctx, s.db)
	for _, n := range news {
		if err := upsertNews(ctx, exec, n); err != nil {
			return err
		}
	}
	return nil
}

func upsertNews(ctx context.Context, exec sqlx.ExtContext, n *domain.News) error {
	if n.ID == 0 {
		return fmt.Errorf("upsert news %q: missing id", n.Identity())
	}
	attachments, err := jsonb(n.Attachments, "[]")
	if err != nil {
		return err
	}
	categories, err := jsonb(n.Categories, "[]")
	if err != nil {
		return err
	}
	properties, err := jsonb(n.Properties, "{}")
	if err != nil {
		return err
	}
	receiveDate := n.ReceiveDate
	if receiveDate.IsZero() {
		receiveDate = time.Now().UTC()
	}

	query := `
		INSERT INTO news (
			id, feed_link, identity, guid, link, title, description, author,
			publish_date, modified_date, receive_date, attachments, categories,
			state, flagged, properties
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
		ON CONFLICT (id) DO UPDATE SET
			feed_link = EXCLUDED.feed_link,
			identity = EXCLUDED.identity,
			guid = EXCLUDED.guid,
			link = EXCLUDED.link,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			author = EXCLUDED.author,
			publish_date = EXCLUDED.publish_date,
			modified_date = EXCLUDED.modified_date,
			attachments = EXCLUDED.attachments,
			categories = EXCLUDED.categories,
			state = EXCLUDED.state,
			flagged = EXCLUDED.flagged,
			properties = EXCLUDED.properties`

	_, err = exec.ExecContext(ctx, query,
		n.ID,
		n.FeedLink,
		n.Identity(),
		n.GUID,
		n.Link,
		n.Title,
		n.Description,
		n.Author,
		nullTime(n.PublishDate),
		nullTime(n.ModifiedDate),
		receiveDate,
		attachments,
		categories,
		n.State.String(),
		n.Flagged,
		properties,
	)
	if err != nil {
		return fmt.Errorf("upsert news %d: %w", n.ID, err)
	}

	if _, err := exec.ExecContext(ctx, "DELETE FROM news_labels WHERE news_id = $1", n.ID); err != nil {
		return fmt.Errorf("clear labels of news %d: %w", n.ID, err)
	}
	if len(n.Labels) == 0 {
		return nil
	}

	labelIDs := make([]int64, 0, len(n.Labels))
	for _, l := range n.Labels {
		if l.ID == 0 {
			return fmt.Errorf("link label %q to news %d: label not persisted", l.Name, n.ID)
		}
		labelIDs = append(labelIDs, l.ID)
	}
	_, err = exec.ExecContext(ctx, `
		INSERT INTO news_labels (news_id, label_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, n.ID, pq.Array(labelIDs))
	if err != nil {
		return fmt.Errorf("link labels to news %d: %w", n.ID, err)
	}
	return nil
}

func (s *NewsStore) DeleteNews(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM news WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	return nil
}

// NewsIndex looks up news of other feeds by guid or link.
type NewsIndex struct {
	db *sqlx.DB
}

func NewNewsIndex(db *sqlx.DB) *NewsIndex {
	return &NewsIndex{db: db}
}

func (i *NewsIndex) FindByGUID(ctx context.Context, guid, excludeFeed string) (int64, error) {
	return i.find(ctx, "guid", guid, excludeFeed)
}

func (i *NewsIndex) FindByLink(ctx context.Context, link, excludeFeed string) (int64, error) {
	return i.find(ctx, "link", link, excludeFeed)
}

func (i *NewsIndex) find(ctx context.Context, column, value, excludeFeed string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	query := fmt.Sprintf(
		"SELECT id FROM news WHERE %s = $1 AND feed_link <> $2 AND state <> 'hidden' ORDER BY id LIMIT 1",
		column,
	)
	var id int64
	err := sqlx.GetContext(ctx, GetExecutor(ctx, i.db), &id, query, value, excludeFeed)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find news by %s: %w", column, err)
	}
	return id, nil
}
