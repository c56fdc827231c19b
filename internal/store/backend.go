package store

import (
	"context"

	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// Backend is a durable event store. Implementations must be safe for concurrent use.
type Backend interface {
	// Name identifies the backend in logs ("postgres", "sqlite").
	Name() string

	// Insert persists an already-stamped event and returns its id.
	Insert(ctx context.Context, evt models.UsageEvent) (string, error)

	// FindRecent returns up to limit events ordered by timestamp, newest first.
	FindRecent(ctx context.Context, limit int) ([]models.UsageEvent, error)

	Ping(ctx context.Context) error
	Close() error
}
