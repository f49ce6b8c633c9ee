package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Batch aggregates collections into a distributable unit. Its aggregate
// fingerprint is derived from the sorted set of constituent fingerprints, so
// the same set always yields the same value regardless of insertion order.
type Batch struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID       string    `gorm:"uniqueIndex;not null"`
	ProductName   string    `gorm:"not null"`
	CollectionIDs pq.StringArray `gorm:"type:text[]"`
	PackagingDate *time.Time
	ExpiryDate    *time.Time
	Certifications pq.StringArray `gorm:"type:text[]"`
	BlockchainHash string        `gorm:"not null"`
	QRCodeData     *string
	Status         string `gorm:"not null;default:'packaged'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Batch) TableName() string { return "batches" }
