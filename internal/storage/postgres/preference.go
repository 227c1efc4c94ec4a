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

const indexRepairKey = "index.repair_needed"

// PreferenceStore holds per-feed retention settings, conditional-GET
// validators and global flags.
type PreferenceStore struct {
	db       *sqlx.DB
	defaults domain.RetentionPreference
}

func NewPreferenceStore(db *sqlx.DB, defaults domain.RetentionPreference) *PreferenceStore {
	return &PreferenceStore{db: db, defaults: defaults}
}

// Retention returns the preference of feedLink, or the configured default.
func (s *PreferenceStore) Retention(ctx context.Context, feedLink string) (domain.RetentionPreference, error) {
	var raw []byte
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &raw,
		"SELECT preference FROM retention_preferences WHERE feed_link = $1", feedLink)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaults, nil
	}
	if err != nil {
		return domain.RetentionPreference{}, fmt.Errorf("get retention preference: %w", err)
	}

	var pref domain.RetentionPreference
	if err := json.Unmarshal(raw, &pref); err != nil {
		return domain.RetentionPreference{}, fmt.Errorf("decode retention preference: %w", err)
	}
	return pref, nil
}

func (s *PreferenceStore) SetRetention(ctx context.Context, feedLink string, pref domain.RetentionPreference) error {
	encoded, err := jsonb(pref, "{}")
	if err != nil {
		return err
	}
	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO retention_preferences (feed_link, preference)
		VALUES ($1, $2)
		ON CONFLICT (feed_link) DO UPDATE SET preference = EXCLUDED.preference`,
		feedLink, encoded)
	if err != nil {
		return fmt.Errorf("set retention preference: %w", err)
	}
	return nil
}

// ConditionalGet returns nil when no validators were stored for feedLink.
func (s *PreferenceStore) ConditionalGet(ctx context.Context, feedLink string) (*domain.ConditionalGetInfo, error) {
	var info domain.ConditionalGetInfo
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &info, `
		SELECT feed_link, if_modified_since, if_none_match
		FROM conditional_get
		WHERE feed_link = $1`, feedLink)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conditional get: %w", err)
	}
	return &info, nil
}

func (s *PreferenceStore) SaveConditionalGet(ctx context.Context, info *domain.ConditionalGetInfo) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO conditional_get (feed_link, if_modified_since, if_none_match)
		VALUES ($1, $2, $3)
		ON CONFLICT (feed_link) DO UPDATE SET
			if_modified_since = EXCLUDED.if_modified_since,
			if_none_match = EXCLUDED.if_none_match`,
		info.Link, info.IfModifiedSince, info.IfNoneMatch)
	if err != nil {
		return fmt.Errorf("save conditional get: %w", err)
	}
	return nil
}

// FlagIndexRepair records that the search index needs rebuilding.
func (s *PreferenceStore) FlagIndexRepair(ctx context.Context) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, 'true')
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, indexRepairKey)
	if err != nil {
		return fmt.Errorf("flag index repair: %w", err)
	}
	return nil
}

func (s *PreferenceStore) IndexRepairNeeded(ctx context.Context) (bool, error) {
	var value string
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &value,
		"SELECT value FROM settings WHERE key = $1", indexRepairKey)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get index repair flag: %w", err)
	}
	return value == "true", nil
}
