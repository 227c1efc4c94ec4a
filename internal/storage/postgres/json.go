package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// jsonb encodes v for a JSONB column, writing empty instead of null. The
// result is a string because lib/pq sends []byte parameters as bytea.
func jsonb(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
