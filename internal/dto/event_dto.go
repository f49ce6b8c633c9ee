package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type AppendEventRequest struct {
	// collection is absent from the set: the opening event is created with
	// the record itself and is never appended afterwards.
	EventType       string           `json:"eventType"   validate:"required,oneof=quality-check processing packaging shipping delivered"`
	Status          string           `json:"status"      validate:"required,oneof=pending in-progress completed"`
	EventDate       *time.Time       `json:"eventDate"`
	LocationLat     *decimal.Decimal `json:"locationLat"`
	LocationLng     *decimal.Decimal `json:"locationLng"`
	LocationAddress *string          `json:"locationAddress"`
	Description     string           `json:"description" validate:"max=2000"`
	PerformedBy     *string          `json:"performedBy"`
	Metadata        json.RawMessage  `json:"metadata"`
}

type EventResponse struct {
	ID              string           `json:"id"`
	CollectionID    string           `json:"collectionId"`
	EventType       string           `json:"eventType"`
	Status          string           `json:"status"`
	LocationLat     *decimal.Decimal `json:"locationLat"`
	LocationLng     *decimal.Decimal `json:"locationLng"`
	LocationAddress *string          `json:"locationAddress"`
	EventDate       time.Time        `json:"eventDate"`
	Description     string           `json:"description"`
	PerformedBy     *string          `json:"performedBy"`
	Fingerprint     *string          `json:"fingerprint"`
}
