package dto

import "time"

type CreateBatchRequest struct {
	BatchID        string     `json:"batchId"       validate:"required,min=3,max=60"`
	ProductName    string     `json:"productName"   validate:"required,min=2,max=200"`
	CollectionIDs  []string   `json:"collectionIds" validate:"required,min=1,dive,uuid"`
	PackagingDate  *time.Time `json:"packagingDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	Certifications []string   `json:"certifications"`
}

type BatchResponse struct {
	ID             string     `json:"id"`
	BatchID        string     `json:"batchId"`
	ProductName    string     `json:"productName"`
	CollectionIDs  []string   `json:"collectionIds"`
	PackagingDate  *time.Time `json:"packagingDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	Certifications []string   `json:"certifications"`
	Fingerprint    string     `json:"fingerprint"`
	QRCodeData     *string    `json:"qrCodeData"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
}
