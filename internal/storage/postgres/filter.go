package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"news_reconciler/internal/domain"
)

type FilterStore struct {
	db *sqlx.DB
}

func NewFilterStore(db *sqlx.DB) *FilterStore {
	return &FilterStore{db: db}
}

type filterRow struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Order   int    `db:"sort_order"`
	Enabled bool   `db:"enabled"`
	Search  []byte `db:"search"`
	Actions []byte `db:"actions"`
}

// LoadFilters returns every filter, enabled or not, in ascending order.
func (s *FilterStore) LoadFilters(ctx context.Context) ([]*domain.SearchFilter, error) {
	var rows []filterRow
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, `
		SELECT id, name, sort_order, enabled, search, actions
		FROM search_filters
		ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("select filters: %w", err)
	}

	filters := make([]*domain.SearchFilter, 0, len(rows))
	for _, r := range rows {
		f := &domain.SearchFilter{
			ID:      r.ID,
			Name:    r.Name,
			Order:   r.Order,
			Enabled: r.Enabled,
		}
		if r.Search != nil {
			if err := json.Unmarshal(r.Search, &f.Search); err != nil {
				return nil, fmt.Errorf("decode search of filter %d: %w", r.ID, err)
			}
		}
		if err := json.Unmarshal(r.Actions, &f.Actions); err != nil {
			return nil, fmt.Errorf("decode actions of filter %d: %w", r.ID, err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// SaveFilter inserts f, or updates it when it already has an id.
func (s *FilterStore) SaveFilter(ctx context.Context, f *domain.SearchFilter) error {
	var search *string
	if f.Search != nil {
		encoded, err := jsonb(f.Search, "null")
		if err != nil {
			return err
		}
		search = &encoded
	}
	actions, err := jsonb(f.Actions, "[]")
	if err != nil {
		return err
	}

	exec := GetExecutor(ctx, s.db)
	if f.ID == 0 {
		err = sqlx.GetContext(ctx, exec, &f.ID, `
			INSERT INTO search_filters (name, sort_order, enabled, search, actions)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`, f.Name, f.Order, f.Enabled, search, actions)
	} else {
		_, err = exec.ExecContext(ctx, `
			UPDATE search_filters
			SET name = $2, sort_order = $3, enabled = $4, search = $5, actions = $6
			WHERE id = $1`, f.ID, f.Name, f.Order, f.Enabled, search, actions)
	}
	if err != nil {
		return fmt.Errorf("save filter: %w", err)
	}
	return nil
}
