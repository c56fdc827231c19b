// Package iot tracks the devices users work from and their session signals.
// None of this feeds the analytics; it only provides context.
package iot

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// EventLister is the slice of the event store the registry needs.
type EventLister interface {
	List(ctx context.Context, limit int) []models.UsageEvent
}

// Registry holds devices (upserted by id) and an append-only IoT event log.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]models.Device
	events  []models.IotEvent

	usage     EventLister
	scanLimit int
	now       func() time.Time
}

// CurrentContext is the latest known activity of a user.
type CurrentContext struct {
	UserID          string             `json:"user_id"`
	LastIotEvent    *models.IotEvent   `json:"last_iot_event"`
	LastInteraction *models.UsageEvent `json:"last_interaction"`
}

// NewRegistry returns an empty registry that looks up interactions in usage,
// scanning at most scanLimit recent events.
func NewRegistry(usage EventLister, scanLimit int) *Registry {
	return &Registry{
		devices:   make(map[string]models.Device),
		usage:     usage,
		scanLimit: scanLimit,
		now:       time.Now,
	}
}

// UpsertDevice replaces the device with the same id.
func (r *Registry) UpsertDevice(d models.Device) models.Device {
	r.mu.Lock()
	r.devices[d.ID] = d
	r.mu.Unlock()
	return d
}

// Devices lists devices ordered by id.
func (r *Registry) Devices() []models.Device {
	r.mu.RLock()
	out := make([]models.Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RecordEvent appends evt, stamping it in UTC, and returns the log size.
func (r *Registry) RecordEvent(evt models.IotEvent) int {
	evt.Metadata = copyMap(evt.Metadata)

	r.mu.Lock()
	defer r.mu.Unlock()
	evt.Timestamp = r.now().UTC()
	r.events = append(r.events, evt)
	return len(r.events)
}

// CurrentContext returns the user's last IoT event and last recorded interaction.
func (r *Registry) CurrentContext(ctx context.Context, userID string) CurrentContext {
	out := CurrentContext{UserID: userID}

	r.mu.RLock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].UserID == userID {
			e := r.events[i]
			e.Metadata = copyMap(e.Metadata)
			out.LastIotEvent = &e
			break
		}
	}
	r.mu.RUnlock()

	for _, e := range r.usage.List(ctx, r.scanLimit) {
		if e.UserID == userID {
			e := e
			out.LastInteraction = &e
			break
		}
	}
	return out
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
