package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LabTestResult is a quality-assurance record attached to a collection.
// A collection may carry any number of them, each independently fingerprinted.
type LabTestResult struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CollectionID uuid.UUID `gorm:"type:uuid;not null;index"`
	LabName      string    `gorm:"not null"`
	TestDate     time.Time `gorm:"not null"`
	// Percentages are bounded to [0,100] at write time.
	PurityPercentage   *decimal.Decimal `gorm:"type:decimal(5,2)"`
	MoisturePercentage *decimal.Decimal `gorm:"type:decimal(5,2)"`
	PesticidesDetected bool             `gorm:"not null;default:false"`
	PesticideDetails   *string
	LabCertificate     *string
	BlockchainHash     string `gorm:"not null"`
	CreatedAt          time.Time

	Collection *HerbCollection `gorm:"foreignKey:CollectionID"`
}

func (LabTestResult) TableName() string { return "lab_test_results" }
