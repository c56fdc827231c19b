package iot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
	"github.com/PratikDhanave/ai-eco-analytics/internal/store"
)

func TestDevices_UpsertAndSortedList(t *testing.T) {
	r := NewRegistry(store.NewMemory(), 100)
	r.UpsertDevice(models.Device{ID: "phone", Kind: "smartphone"})
	r.UpsertDevice(models.Device{ID: "desk", Kind: "desktop"})
	r.UpsertDevice(models.Device{ID: "phone", Kind: "tablet"})

	devs := r.Devices()
	require.Len(t, devs, 2)
	assert.Equal(t, "desk", devs[0].ID)
	assert.Equal(t, "tablet", devs[1].Kind)
}

func TestRecordEvent_ReturnsTotal(t *testing.T) {
	r := NewRegistry(store.NewMemory(), 100)
	assert.Equal(t, 1, r.RecordEvent(models.IotEvent{DeviceID: "d", EventType: "session_start"}))
	assert.Equal(t, 2, r.RecordEvent(models.IotEvent{DeviceID: "d", EventType: "session_end"}))
}

func TestCurrentContext_LatestOfEachSource(t *testing.T) {
	ctx := context.Background()
	events := store.NewMemory()
	r := NewRegistry(events, 100)

	r.RecordEvent(models.IotEvent{DeviceID: "d1", UserID: "u1", EventType: "session_start"})
	r.RecordEvent(models.IotEvent{DeviceID: "d2", UserID: "u2", EventType: "session_start"})
	r.RecordEvent(models.IotEvent{DeviceID: "d1", UserID: "u1", EventType: "session_end"})

	events.Record(ctx, models.UsageEvent{UserID: "u1", EventType: "first"})
	events.Record(ctx, models.UsageEvent{UserID: "u1", EventType: "second"})
	events.Record(ctx, models.UsageEvent{UserID: "u2", EventType: "other"})

	cc := r.CurrentContext(ctx, "u1")
	require.NotNil(t, cc.LastIotEvent)
	assert.Equal(t, "session_end", cc.LastIotEvent.EventType)
	require.NotNil(t, cc.LastInteraction)
	assert.Equal(t, "second", cc.LastInteraction.EventType)

	none := r.CurrentContext(ctx, "nobody")
	assert.Nil(t, none.LastIotEvent)
	assert.Nil(t, none.LastInteraction)
}
