package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"news_reconciler/internal/domain"
)

// SyncItemStore keeps local deltas until the sync service confirms them.
type SyncItemStore struct {
	db *sqlx.DB
}

func NewSyncItemStore(db *sqlx.DB) *SyncItemStore {
	return &SyncItemStore{db: db}
}

func (s *SyncItemStore) LoadUncommitted(ctx context.Context) (map[string]*domain.SyncItem, error) {
	var rows []struct {
		ID   string `db:"id"`
		Item []byte `db:"item"`
	}
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, "SELECT id, item FROM uncommitted_sync_items")
	if err != nil {
		return nil, fmt.Errorf("select uncommitted sync items: %w", err)
	}

	items := make(map[string]*domain.SyncItem, len(rows))
	for _, r := range rows {
		var item domain.SyncItem
		if err := json.Unmarshal(r.Item, &item); err != nil {
			return nil, fmt.Errorf("decode sync item %s: %w", r.ID, err)
		}
		items[r.ID] = &item
	}
	return items, nil
}

func (s *SyncItemStore) SaveUncommitted(ctx context.Context, items []*domain.SyncItem) error {
	exec := GetExecutor(ctx, s.db)
	for _, item := range items {
		encoded, err := jsonb(item, "{}")
		if err != nil {
			return err
		}
		_, err = exec.ExecContext(ctx, `
			INSERT INTO uncommitted_sync_items (id, item)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET item = EXCLUDED.item`,
			item.ID, encoded)
		if err != nil {
			return fmt.Errorf("save sync item %s: %w", item.ID, err)
		}
	}
	return nil
}

func (s *SyncItemStore) DeleteUncommitted(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM uncommitted_sync_items WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return fmt.Errorf("delete sync items: %w", err)
	}
	return nil
}
