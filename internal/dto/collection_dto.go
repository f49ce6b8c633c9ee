package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SubmitCollectionRequest struct {
	HerbType        string           `json:"herbType"        validate:"required,min=2,max=100"`
	Quantity        decimal.Decimal  `json:"quantity"        validate:"required"`
	QualityGrade    string           `json:"qualityGrade"    validate:"required,oneof=premium standard basic"`
	LocationLat     *decimal.Decimal `json:"locationLat"`
	LocationLng     *decimal.Decimal `json:"locationLng"`
	LocationAddress *string          `json:"locationAddress"`
	UserID          *string          `json:"userId"          validate:"omitempty,uuid"`
	Photos          []string         `json:"photos"`
	Documents       []string         `json:"documents"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type CollectionFilter struct {
	HerbType     string `form:"herb_type"`
	QualityGrade string `form:"quality_grade"`
	Status       string `form:"status"`
	UserID       string `form:"user_id"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// SubmitCollectionResponse mirrors what producers need to print on labels:
// the record id, the content fingerprint, and the scan token.
type SubmitCollectionResponse struct {
	ID            string `json:"id"`
	Fingerprint   string `json:"fingerprint"`
	TransactionID string `json:"transactionId"`
}

type CollectionResponse struct {
	ID              string           `json:"id"`
	HerbType        string           `json:"herbType"`
	Quantity        decimal.Decimal  `json:"quantity"`
	QualityGrade    string           `json:"qualityGrade"`
	LocationLat     *decimal.Decimal `json:"locationLat"`
	LocationLng     *decimal.Decimal `json:"locationLng"`
	LocationAddress *string          `json:"locationAddress"`
	CollectionDate  time.Time        `json:"collectionDate"`
	Fingerprint     string           `json:"fingerprint"`
	TransactionID   string           `json:"transactionId"`
	Status          string           `json:"status"`
	UserID          *string          `json:"userId"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type CollectionListResponse struct {
	Data       []CollectionResponse `json:"data"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}
