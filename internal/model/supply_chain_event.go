package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Event types, one per supply-chain stage.
const (
	EventCollection   = "collection"
	EventQualityCheck = "quality-check"
	EventProcessing   = "processing"
	EventPackaging    = "packaging"
	EventShipping     = "shipping"
	EventDelivered    = "delivered"
)

// StagePrecedence fixes the tie-break order for events sharing an identical
// timestamp, so rendering is deterministic regardless of storage order.
var StagePrecedence = map[string]int{
	EventCollection:   0,
	EventQualityCheck: 1,
	EventProcessing:   2,
	EventPackaging:    3,
	EventShipping:     4,
	EventDelivered:    5,
}

// Event statuses.
const (
	EventPending    = "pending"
	EventInProgress = "in-progress"
	EventCompleted  = "completed"
)

// SupplyChainEvent is one stage of a collection's history. Events are an
// append-only log: immutable once written, timestamps non-decreasing per
// collection in canonical order.
type SupplyChainEvent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CollectionID uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType    string    `gorm:"not null"`
	Status       string    `gorm:"not null;default:'pending'"`
	LocationLat  *decimal.Decimal `gorm:"type:decimal(9,6)"`
	LocationLng  *decimal.Decimal `gorm:"type:decimal(9,6)"`
	LocationAddress *string
	EventDate    time.Time `gorm:"not null;index"`
	Description  string
	PerformedBy  *string
	// BlockchainHash is optional: downstream actors may stamp their events.
	BlockchainHash *string
	TransactionID  *string
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time

	Collection *HerbCollection `gorm:"foreignKey:CollectionID"`
}

func (SupplyChainEvent) TableName() string { return "supply_chain_events" }
