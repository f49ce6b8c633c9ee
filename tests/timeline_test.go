package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(eventType, status string, at time.Time) model.SupplyChainEvent {
	return model.SupplyChainEvent{
		ID:           uuid.New(),
		CollectionID: uuid.New(),
		EventType:    eventType,
		Status:       status,
		EventDate:    at,
	}
}

func TestTimelineOrdersByTimestamp(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := []model.SupplyChainEvent{
		event(model.EventShipping, model.EventCompleted, base.Add(2*time.Hour)),
		event(model.EventCollection, model.EventCompleted, base),
		event(model.EventProcessing, model.EventCompleted, base.Add(time.Hour)),
	}

	steps := ledger.AssembleTimeline(events)
	require.Len(t, steps, 3)
	assert.Equal(t, model.EventCollection, steps[0].EventType)
	assert.Equal(t, model.EventProcessing, steps[1].EventType)
	assert.Equal(t, model.EventShipping, steps[2].EventType)
}

func TestTimelineTieBreakByStagePrecedence(t *testing.T) {
	// Four events sharing one timestamp must come back in fixed stage order
	// regardless of input order.
	at := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := []model.SupplyChainEvent{
		event(model.EventShipping, model.EventPending, at),
		event(model.EventCollection, model.EventCompleted, at),
		event(model.EventPackaging, model.EventPending, at),
		event(model.EventProcessing, model.EventInProgress, at),
	}

	steps := ledger.AssembleTimeline(events)
	require.Len(t, steps, 4)
	var types []string
	for _, s := range steps {
		types = append(types, s.EventType)
	}
	assert.Equal(t, []string{
		model.EventCollection,
		model.EventProcessing,
		model.EventPackaging,
		model.EventShipping,
	}, types)
}

func TestTimelineTerminalFlag(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := []model.SupplyChainEvent{
		event(model.EventCollection, model.EventCompleted, base),
		event(model.EventProcessing, model.EventCompleted, base.Add(time.Hour)),
		event(model.EventShipping, model.EventInProgress, base.Add(2*time.Hour)),
	}

	steps := ledger.AssembleTimeline(events)
	require.Len(t, steps, 3)

	// Highest-precedence completed step is processing; the in-progress
	// shipping step never carries the flag.
	assert.False(t, steps[0].IsTerminal)
	assert.True(t, steps[1].IsTerminal)
	assert.False(t, steps[2].IsTerminal)
}

func TestTimelineIsPureProjection(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := []model.SupplyChainEvent{
		event(model.EventShipping, model.EventCompleted, base.Add(time.Hour)),
		event(model.EventCollection, model.EventCompleted, base),
	}
	inputOrder := []string{events[0].EventType, events[1].EventType}

	first := ledger.AssembleTimeline(events)
	second := ledger.AssembleTimeline(events)

	assert.Equal(t, first, second, "assembling twice must yield the same sequence")
	assert.Equal(t, inputOrder, []string{events[0].EventType, events[1].EventType},
		"input slice must not be reordered")
}

func TestTimelineEmptyInput(t *testing.T) {
	assert.Empty(t, ledger.AssembleTimeline(nil))
}
