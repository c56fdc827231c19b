package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

// PostgresBackend persists usage events in Postgres.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend creates a connection pool. The pool connects lazily, so an
// unreachable database is reported by Ping (the store's startup probe), not here.
func NewPostgresBackend(ctx context.Context, dbURL string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (p *PostgresBackend) Name() string { return "postgres" }

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresBackend) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return err
}

// Ping validates DB connectivity.
func (p *PostgresBackend) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresBackend) Close() error {
	p.pool.Close()
	return nil
}

// Insert persists evt. Re-inserting an id that already exists is not an error.
func (p *PostgresBackend) Insert(ctx context.Context, evt models.UsageEvent) (string, error) {
	if evt.ID == "" || evt.UserID == "" || evt.EventType == "" {
		return "", errors.New("id/user_id/event_type required")
	}

	ctxJSON, payloadJSON, err := marshalMaps(evt)
	if err != nil {
		return "", err
	}

	var one int
	err = p.pool.QueryRow(ctx, `
		INSERT INTO usage_events(id, user_id, event_type, category, recommended_tool_id,
		                         success, duration_sec, context, payload, ts)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO NOTHING
		RETURNING 1
	`, evt.ID, evt.UserID, evt.EventType, nullString(evt.Category), nullString(evt.RecommendedToolID),
		evt.Success, evt.DurationSec, ctxJSON, payloadJSON, evt.Timestamp.UTC()).Scan(&one)

	// A conflict returns no row because RETURNING yields nothing.
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	return evt.ID, nil
}

// FindRecent returns the newest limit events; ties on ts keep insertion order reversed.
func (p *PostgresBackend) FindRecent(ctx context.Context, limit int) ([]models.UsageEvent, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id::text, user_id, event_type, category, recommended_tool_id,
		       success, duration_sec, context, payload, ts
		FROM usage_events
		ORDER BY ts DESC, seq DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.UsageEvent, 0, limit)
	for rows.Next() {
		var (
			evt                  models.UsageEvent
			category, toolID     *string
			duration             *int32
			ctxJSON, payloadJSON []byte
			ts                   time.Time
		)
		if err := rows.Scan(&evt.ID, &evt.UserID, &evt.EventType, &category, &toolID,
			&evt.Success, &duration, &ctxJSON, &payloadJSON, &ts); err != nil {
			return nil, err
		}
		if err := fillEvent(&evt, category, toolID, duration, ctxJSON, payloadJSON, ts); err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}

func marshalMaps(evt models.UsageEvent) ([]byte, []byte, error) {
	ctxMap, payload := evt.Context, evt.Payload
	if ctxMap == nil {
		ctxMap = map[string]any{}
	}
	if payload == nil {
		payload = map[string]any{}
	}

	ctxJSON, err := json.Marshal(ctxMap)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal context: %w", err)
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal payload: %w", err)
	}
	return ctxJSON, payloadJSON, nil
}

func fillEvent(evt *models.UsageEvent, category, toolID *string, duration *int32, ctxJSON, payloadJSON []byte, ts time.Time) error {
	if category != nil {
		evt.Category = *category
	}
	if toolID != nil {
		evt.RecommendedToolID = *toolID
	}
	if duration != nil {
		d := int(*duration)
		evt.DurationSec = &d
	}
	evt.Context = map[string]any{}
	evt.Payload = map[string]any{}
	if len(ctxJSON) > 0 {
		if err := json.Unmarshal(ctxJSON, &evt.Context); err != nil {
			return fmt.Errorf("decode context: %w", err)
		}
	}
	if len(payloadJSON) > 0 {
		if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	evt.Timestamp = ts.UTC()
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
