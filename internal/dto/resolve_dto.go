package dto

import (
	"time"

	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/shopspring/decimal"
)

type ResolveRequest struct {
	Token string `json:"token" validate:"required"`
}

// Coordinates is the map-friendly projection of a record's location.
type Coordinates struct {
	Lat decimal.Decimal `json:"lat"`
	Lng decimal.Decimal `json:"lng"`
}

// ResolvedRecord bundles everything a consumer-facing scan needs: the
// canonical record, its ordered timeline, lab results, and the verification
// flag (true iff the stored fingerprint still matches the stored fields).
type ResolvedRecord struct {
	ID              string                `json:"id"`
	TransactionID   string                `json:"transactionId"`
	Fingerprint     string                `json:"fingerprint"`
	HerbType        string                `json:"herbType"`
	Quantity        decimal.Decimal       `json:"quantity"`
	// Tagged "quality", not "qualityGrade": scanner clients consume this
	// payload under that key.
	QualityGrade    string                `json:"quality"`
	LocationAddress *string               `json:"locationAddress"`
	Coordinates     *Coordinates          `json:"coordinates"`
	CollectionDate  time.Time             `json:"collectionDate"`
	Status          string                `json:"status"`
	Timeline        []ledger.TimelineStep `json:"timeline"`
	LabResults      []LabResultResponse   `json:"labResults"`
	Verified        bool                  `json:"verified"`
}
