package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// SQLiteBackend persists usage events in a local SQLite file (modernc.org/sqlite, no CGo).
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// NewSQLiteBackend opens (creating if needed) the database at path and runs migrations.
func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; SQLite serialises writes anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteBackend{db: db, path: path}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteBackend) Name() string { return "sqlite" }

func (s *SQLiteBackend) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}

// Insert persists evt; a duplicate id is ignored.
func (s *SQLiteBackend) Insert(ctx context.Context, evt models.UsageEvent) (string, error) {
	if evt.ID == "" || evt.UserID == "" || evt.EventType == "" {
		return "", errors.New("id/user_id/event_type required")
	}

	ctxJSON, payloadJSON, err := marshalMaps(evt)
	if err != nil {
		return "", err
	}

	var success any
	if evt.Success != nil {
		success = boolToInt(*evt.Success)
	}
	var duration any
	if evt.DurationSec != nil {
		duration = *evt.DurationSec
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO usage_events(id, user_id, event_type, category, recommended_tool_id,
		                                   success, duration_sec, context, payload, ts_unix_nano)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, evt.ID, evt.UserID, evt.EventType, nullString(evt.Category), nullString(evt.RecommendedToolID),
		success, duration, string(ctxJSON), string(payloadJSON), evt.Timestamp.UTC().UnixNano())
	if err != nil {
		return "", err
	}
	return evt.ID, nil
}

// FindRecent returns the newest limit events.
func (s *SQLiteBackend) FindRecent(ctx context.Context, limit int) ([]models.UsageEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, event_type, category, recommended_tool_id,
		       success, duration_sec, context, payload, ts_unix_nano
		FROM usage_events
		ORDER BY ts_unix_nano DESC, seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.UsageEvent, 0, limit)
	for rows.Next() {
		var (
			evt                  models.UsageEvent
			category, toolID     sql.NullString
			success, duration    sql.NullInt64
			ctxJSON, payloadJSON string
			tsNano               int64
		)
		if err := rows.Scan(&evt.ID, &evt.UserID, &evt.EventType, &category, &toolID,
			&success, &duration, &ctxJSON, &payloadJSON, &tsNano); err != nil {
			return nil, err
		}

		if success.Valid {
			b := success.Int64 != 0
			evt.Success = &b
		}
		var d32 *int32
		if duration.Valid {
			v := int32(duration.Int64)
			d32 = &v
		}
		if err := fillEvent(&evt, nullableString(category), nullableString(toolID), d32,
			[]byte(ctxJSON), []byte(payloadJSON), time.Unix(0, tsNano)); err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}

type migration struct {
	version int
	name    string
	stmts   []string
}

var sqliteMigrations = []migration{
	{version: 1, name: "usage_events", stmts: []string{
		`CREATE TABLE IF NOT EXISTS usage_events (
			seq                 INTEGER PRIMARY KEY AUTOINCREMENT,
			id                  TEXT    NOT NULL UNIQUE,
			user_id             TEXT    NOT NULL,
			event_type          TEXT    NOT NULL,
			category            TEXT,
			recommended_tool_id TEXT,
			success             INTEGER,
			duration_sec        INTEGER,
			context             TEXT    NOT NULL DEFAULT '{}',
			payload             TEXT    NOT NULL DEFAULT '{}',
			ts_unix_nano        INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_events_ts ON usage_events(ts_unix_nano DESC, seq DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_events_user ON usage_events(user_id, ts_unix_nano DESC)`,
	}},
}

func (s *SQLiteBackend) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range sqliteMigrations {
		if m.version <= current {
			continue
		}
		for _, stmt := range m.stmts {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
			}
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
	}
	return nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
