package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"news_reconciler/internal/domain"
)

type LabelStore struct {
	db *sqlx.DB
}

func NewLabelStore(db *sqlx.DB) *LabelStore {
	return &LabelStore{db: db}
}

func (s *LabelStore) LoadLabels(ctx context.Context) ([]*domain.Label, error) {
	var labels []*domain.Label
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &labels,
		"SELECT id, name, color, sort_order FROM labels ORDER BY sort_order, name")
	if err != nil {
		return nil, fmt.Errorf("select labels: %w", err)
	}
	return labels, nil
}

// SaveLabels inserts labels by name and sets their ids. A label whose name
// already exists keeps the stored row.
func (s *LabelStore) SaveLabels(ctx context.Context, labels []*domain.Label) error {
	exec := GetExecutor(ctx, s.db)
	query := `
		INSERT INTO labels (name, color, sort_order)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	for _, l := range labels {
		if err := sqlx.GetContext(ctx, exec, &l.ID, query, l.Name, l.Color, l.Order); err != nil {
			return fmt.Errorf("save label %q: %w", l.Name, err)
		}
	}
	if len(labels) == 0 {
		return nil
	}

	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
	}
	if _, err := exec.ExecContext(ctx, "DELETE FROM deleted_labels WHERE name = ANY($1)", pq.Array(names)); err != nil {
		return fmt.Errorf("clear deleted labels: %w", err)
	}
	return nil
}

// DeleteLabel removes a label and remembers its name so that synchronization
// does not recreate it.
func (s *LabelStore) DeleteLabel(ctx context.Context, name string) error {
	exec := GetExecutor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, "DELETE FROM labels WHERE name = $1", name); err != nil {
		return fmt.Errorf("delete label: %w", err)
	}
	_, err := exec.ExecContext(ctx,
		"INSERT INTO deleted_labels (name) VALUES ($1) ON CONFLICT DO NOTHING", name)
	if err != nil {
		return fmt.Errorf("remember deleted label: %w", err)
	}
	return nil
}

func (s *LabelStore) DeletedLabelNames(ctx context.Context) ([]string, error) {
	var names []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &names,
		"SELECT name FROM deleted_labels ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("select deleted labels: %w", err)
	}
	return names, nil
}
