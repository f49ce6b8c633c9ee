package service

import (
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
)

func collectionToResponse(c *model.HerbCollection) *dto.CollectionResponse {
	var userID *string
	if c.UserID != nil {
		s := c.UserID.String()
		userID = &s
	}
	return &dto.CollectionResponse{
		ID:              c.ID.String(),
		HerbType:        c.HerbType,
		Quantity:        c.Quantity,
		QualityGrade:    c.QualityGrade,
		LocationLat:     c.LocationLat,
		LocationLng:     c.LocationLng,
		LocationAddress: c.LocationAddress,
		CollectionDate:  c.CollectionDate,
		Fingerprint:     c.BlockchainHash,
		TransactionID:   c.TransactionID,
		Status:          c.Status,
		UserID:          userID,
		CreatedAt:       c.CreatedAt,
	}
}

func eventToResponse(ev *model.SupplyChainEvent) *dto.EventResponse {
	return &dto.EventResponse{
		ID:              ev.ID.String(),
		CollectionID:    ev.CollectionID.String(),
		EventType:       ev.EventType,
		Status:          ev.Status,
		LocationLat:     ev.LocationLat,
		LocationLng:     ev.LocationLng,
		LocationAddress: ev.LocationAddress,
		EventDate:       ev.EventDate,
		Description:     ev.Description,
		PerformedBy:     ev.PerformedBy,
		Fingerprint:     ev.BlockchainHash,
	}
}

func labResultToResponse(lr *model.LabTestResult) *dto.LabResultResponse {
	return &dto.LabResultResponse{
		ID:                 lr.ID.String(),
		CollectionID:       lr.CollectionID.String(),
		LabName:            lr.LabName,
		TestDate:           lr.TestDate,
		PurityPercentage:   lr.PurityPercentage,
		MoisturePercentage: lr.MoisturePercentage,
		PesticidesDetected: lr.PesticidesDetected,
		PesticideDetails:   lr.PesticideDetails,
		LabCertificate:     lr.LabCertificate,
		Fingerprint:        lr.BlockchainHash,
	}
}

func batchToResponse(b *model.Batch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:             b.ID.String(),
		BatchID:        b.BatchID,
		ProductName:    b.ProductName,
		CollectionIDs:  b.CollectionIDs,
		PackagingDate:  b.PackagingDate,
		ExpiryDate:     b.ExpiryDate,
		Certifications: b.Certifications,
		Fingerprint:    b.BlockchainHash,
		QRCodeData:     b.QRCodeData,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
	}
}
