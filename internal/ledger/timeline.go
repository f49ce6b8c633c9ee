package ledger

import (
	"sort"
	"time"

	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"github.com/shopspring/decimal"
)

// TimelineStep is one ordered, rendered unit of a record's event history.
type TimelineStep struct {
	EventType       string           `json:"eventType"`
	Status          string           `json:"status"`
	LocationLat     *decimal.Decimal `json:"locationLat"`
	LocationLng     *decimal.Decimal `json:"locationLng"`
	LocationAddress *string          `json:"locationAddress"`
	Description     string           `json:"description"`
	PerformedBy     *string          `json:"performedBy"`
	Timestamp       time.Time        `json:"timestamp"`
	// IsTerminal is true only for the highest-precedence completed step.
	IsTerminal bool `json:"isTerminal"`
}

// AssembleTimeline projects a collection's events into a causally ordered
// sequence: primary key event timestamp ascending, tie-break by fixed stage
// precedence. The input slice is never mutated; calling again with the same
// events yields the same sequence.
func AssembleTimeline(events []model.SupplyChainEvent) []TimelineStep {
	ordered := make([]model.SupplyChainEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].EventDate.Equal(ordered[j].EventDate) {
			return ordered[i].EventDate.Before(ordered[j].EventDate)
		}
		return model.StagePrecedence[ordered[i].EventType] < model.StagePrecedence[ordered[j].EventType]
	})

	terminal := -1
	for i, ev := range ordered {
		if ev.Status != model.EventCompleted {
			continue
		}
		if terminal == -1 || model.StagePrecedence[ev.EventType] >= model.StagePrecedence[ordered[terminal].EventType] {
			terminal = i
		}
	}

	steps := make([]TimelineStep, 0, len(ordered))
	for i, ev := range ordered {
		steps = append(steps, TimelineStep{
			EventType:       ev.EventType,
			Status:          ev.Status,
			LocationLat:     ev.LocationLat,
			LocationLng:     ev.LocationLng,
			LocationAddress: ev.LocationAddress,
			Description:     ev.Description,
			PerformedBy:     ev.PerformedBy,
			Timestamp:       ev.EventDate,
			IsTerminal:      i == terminal,
		})
	}
	return steps
}
