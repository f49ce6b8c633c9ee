package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Collection statuses, monotonically forward only.
const (
	StatusRecorded  = "recorded"
	StatusInTransit = "in-transit"
	StatusProcessed = "processed"
	StatusDelivered = "delivered"
)

// StatusRank orders collection statuses for the forward-only transition check.
var StatusRank = map[string]int{
	StatusRecorded:  0,
	StatusInTransit: 1,
	StatusProcessed: 2,
	StatusDelivered: 3,
}

// Quality grades form a closed set.
const (
	GradePremium  = "premium"
	GradeStandard = "standard"
	GradeBasic    = "basic"
)

// ValidQualityGrade reports whether g belongs to the closed grade set.
func ValidQualityGrade(g string) bool {
	return g == GradePremium || g == GradeStandard || g == GradeBasic
}

// HerbCollection is the root provenance entity: a single harvest event,
// fingerprinted at write time and never mutated afterwards. Corrections are
// expressed as new supply-chain events, not updates.
type HerbCollection struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HerbType        string           `gorm:"not null;index"`
	Quantity        decimal.Decimal  `gorm:"type:decimal(10,3);not null"`
	QualityGrade    string           `gorm:"not null"`
	LocationLat     *decimal.Decimal `gorm:"type:decimal(9,6)"`
	LocationLng     *decimal.Decimal `gorm:"type:decimal(9,6)"`
	LocationAddress *string
	CollectionDate  time.Time `gorm:"not null"`
	// BlockchainHash is the content fingerprint ("0x" + 64 hex chars).
	BlockchainHash string `gorm:"not null"`
	TransactionID  string `gorm:"uniqueIndex;not null"`
	Status         string `gorm:"not null;default:'recorded'"`
	UserID         *uuid.UUID     `gorm:"type:uuid;index"`
	Photos         pq.StringArray `gorm:"type:text[]"`
	Documents      pq.StringArray `gorm:"type:text[]"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Events     []SupplyChainEvent `gorm:"foreignKey:CollectionID"`
	LabResults []LabTestResult    `gorm:"foreignKey:CollectionID"`
}

func (HerbCollection) TableName() string { return "herb_collections" }
