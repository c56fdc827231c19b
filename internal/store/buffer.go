package store

import (
	"sync"

	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// Buffer is the in-process, append-only event log. It is always written to,
// whatever the durable backend is doing.
type Buffer struct {
	mu     sync.RWMutex
	events []models.UsageEvent
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append stores a copy of evt after stamp has filled in its identity.
// stamp runs under the write lock so ids and timestamps follow arrival order.
func (b *Buffer) Append(evt models.UsageEvent, stamp func(*models.UsageEvent)) models.UsageEvent {
	evt = evt.Clone()

	b.mu.Lock()
	stamp(&evt)
	b.events = append(b.events, evt)
	b.mu.Unlock()

	return evt.Clone()
}

// Recent returns up to limit events, most recent first.
func (b *Buffer) Recent(limit int) []models.UsageEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.events)
	if limit > n {
		limit = n
	}
	if limit <= 0 {
		return []models.UsageEvent{}
	}

	out := make([]models.UsageEvent, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, b.events[i].Clone())
	}
	return out
}

// Len is the number of buffered events.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.events)
}
