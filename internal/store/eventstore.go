// Package store implements the usage event log: an in-memory buffer that is always
// appended to, plus an optional durable backend chosen once at construction.
//
// Telemetry must never break the action that produced it, so durable failures are
// logged and absorbed: the store drops to memory-only mode and keeps serving.
package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/PratikDhanave/ai-eco-analytics/internal/logger"
	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// DefaultTimeout bounds every durable backend call.
const DefaultTimeout = 2 * time.Second

// Mode is the source the store currently reads from.
type Mode string

const (
	// ModeMemory: no durable backend configured or the startup probe failed.
	ModeMemory Mode = "memory"
	// ModeDurable: reads come from the durable backend.
	ModeDurable Mode = "durable"
	// ModeDegraded: a durable backend was selected but a call failed; memory serves from then on.
	ModeDegraded Mode = "degraded"
)

// Result is the outcome of Record.
type Result struct {
	Status  string `json:"status"`
	EventID string `json:"event_id"`
}

// EventStore is the append-only usage event log.
type EventStore struct {
	buf      *Buffer
	backend  Backend
	timeout  time.Duration
	degraded atomic.Bool

	now   func() time.Time
	newID func() string
}

// Option customises an EventStore.
type Option func(*EventStore)

// WithTimeout bounds durable backend calls.
func WithTimeout(d time.Duration) Option {
	return func(s *EventStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *EventStore) { s.now = now }
}

// NewMemory returns a store backed only by the in-memory buffer.
func NewMemory(opts ...Option) *EventStore {
	return newStore(nil, opts)
}

// NewDurable returns a store that writes to both memory and b, and reads from b.
// No connectivity probe is performed; see Open.
func NewDurable(b Backend, opts ...Option) *EventStore {
	return newStore(b, opts)
}

// Open probes b and selects the durable variant when it answers, the in-memory
// variant otherwise. A nil backend selects memory. Probe failures are logged, not returned.
func Open(ctx context.Context, b Backend, opts ...Option) *EventStore {
	if b == nil {
		return NewMemory(opts...)
	}

	s := newStore(b, opts)
	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := b.Ping(pctx); err != nil {
		logger.FromContext(ctx).Warn("durable event backend unreachable, using in-memory store",
			"backend", b.Name(), "error", err)
		_ = b.Close()
		s.backend = nil
		return s
	}

	logger.FromContext(ctx).Info("durable event backend selected", "backend", b.Name())
	return s
}

func newStore(b Backend, opts []Option) *EventStore {
	s := &EventStore{
		buf:     NewBuffer(),
		backend: b,
		timeout: DefaultTimeout,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Mode reports which source reads are served from.
func (s *EventStore) Mode() Mode {
	switch {
	case s.backend == nil:
		return ModeMemory
	case s.degraded.Load():
		return ModeDegraded
	default:
		return ModeDurable
	}
}

// Record appends evt with a server-assigned id and UTC timestamp.
// It never fails: a durable write error is logged and degrades the store to memory-only.
func (s *EventStore) Record(ctx context.Context, evt models.UsageEvent) Result {
	stored := s.buf.Append(evt, func(e *models.UsageEvent) {
		e.ID = s.newID()
		e.Timestamp = s.now().UTC()
	})

	if b := s.durable(); b != nil {
		// Detached from the caller's cancellation; the write is bounded by s.timeout only.
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		if _, err := b.Insert(dctx, stored); err != nil {
			s.degrade(ctx, "insert", err)
		}
	}

	return Result{Status: "ok", EventID: stored.ID}
}

// List returns up to limit events, most recent first, from exactly one source:
// the durable backend while it is healthy, the in-memory buffer otherwise.
func (s *EventStore) List(ctx context.Context, limit int) []models.UsageEvent {
	if limit <= 0 {
		return []models.UsageEvent{}
	}

	if b := s.durable(); b != nil {
		dctx, cancel := context.WithTimeout(ctx, s.timeout)
		events, err := b.FindRecent(dctx, limit)
		cancel()

		if err == nil {
			if events == nil {
				events = []models.UsageEvent{}
			}
			return events
		}
		// A caller that gave up is not evidence against the backend.
		if ctx.Err() == nil {
			s.degrade(ctx, "find_recent", err)
		}
	}

	return s.buf.Recent(limit)
}

// Buffered is the number of events held in memory.
func (s *EventStore) Buffered() int {
	return s.buf.Len()
}

// Ping checks the source reads are served from. Memory is always reachable.
func (s *EventStore) Ping(ctx context.Context) error {
	b := s.durable()
	if b == nil {
		return nil
	}
	return b.Ping(ctx)
}

// Close releases the durable backend, if any.
func (s *EventStore) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

func (s *EventStore) durable() Backend {
	if s.backend == nil || s.degraded.Load() {
		return nil
	}
	return s.backend
}

func (s *EventStore) degrade(ctx context.Context, op string, err error) {
	if s.degraded.CompareAndSwap(false, true) {
		logger.FromContext(ctx).Warn("durable event backend failed, continuing in memory",
			"backend", s.backend.Name(), "op", op, "error", err)
		return
	}
	logger.FromContext(ctx).Debug("durable event backend call failed", "backend", s.backend.Name(), "op", op, "error", err)
}
