package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddLabResultRequest struct {
	LabName            string           `json:"labName"            validate:"required,min=2,max=200"`
	TestDate           *time.Time       `json:"testDate"`
	PurityPercentage   *decimal.Decimal `json:"purityPercentage"`
	MoisturePercentage *decimal.Decimal `json:"moisturePercentage"`
	PesticidesDetected bool             `json:"pesticidesDetected"`
	PesticideDetails   *string          `json:"pesticideDetails"`
	LabCertificate     *string          `json:"labCertificate"`
}

type LabResultResponse struct {
	ID                 string           `json:"id"`
	CollectionID       string           `json:"collectionId"`
	LabName            string           `json:"labName"`
	TestDate           time.Time        `json:"testDate"`
	PurityPercentage   *decimal.Decimal `json:"purityPercentage"`
	MoisturePercentage *decimal.Decimal `json:"moisturePercentage"`
	PesticidesDetected bool             `json:"pesticidesDetected"`
	PesticideDetails   *string          `json:"pesticideDetails"`
	LabCertificate     *string          `json:"labCertificate"`
	Fingerprint        string           `json:"fingerprint"`
}
