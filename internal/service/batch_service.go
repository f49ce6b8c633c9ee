package service

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/repository"
)

// BatchService aggregates collections into distributable units.
type BatchService interface {
	Create(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error)
	Get(ctx context.Context, idOrCode string) (*dto.BatchResponse, error)
}

type batchService struct {
	batches     repository.BatchRepository
	collections repository.CollectionRepository
}

func NewBatchService(batches repository.BatchRepository, collections repository.CollectionRepository) BatchService {
	return &batchService{batches: batches, collections: collections}
}

func (s *batchService) Create(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if req.PackagingDate != nil && req.ExpiryDate != nil && !req.ExpiryDate.After(*req.PackagingDate) {
		return nil, ledger.NewValidationError("expiryDate", "must be after packagingDate")
	}

	// Every constituent must exist; collect its fingerprint for the
	// aggregate. The aggregate covers the member set, so repeated ids
	// contribute once.
	seen := make(map[uuid.UUID]bool, len(req.CollectionIDs))
	members := make([]string, 0, len(req.CollectionIDs))
	fingerprints := make([]string, 0, len(req.CollectionIDs))
	for _, raw := range req.CollectionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ledger.NewValidationError("collectionIds", "contains an invalid record id")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		c, err := s.collections.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		members = append(members, id.String())
		fingerprints = append(fingerprints, c.BlockchainHash)
	}

	// Sorted before hashing: the same member set always yields the same
	// aggregate regardless of insertion order.
	sort.Strings(fingerprints)
	aggregate := ledger.FingerprintChecksums(fingerprints)

	qr, err := json.Marshal(map[string]string{"batchId": req.BatchID})
	if err != nil {
		return nil, err
	}
	qrData := string(qr)

	b := &model.Batch{
		BatchID:        req.BatchID,
		ProductName:    req.ProductName,
		CollectionIDs:  members,
		PackagingDate:  req.PackagingDate,
		ExpiryDate:     req.ExpiryDate,
		Certifications: req.Certifications,
		BlockchainHash: aggregate,
		QRCodeData:     &qrData,
		Status:         "packaged",
	}
	if err := s.batches.Create(ctx, b); err != nil {
		return nil, err
	}
	return batchToResponse(b), nil
}

// Get accepts either the internal uuid or the human-facing batch code.
func (s *batchService) Get(ctx context.Context, idOrCode string) (*dto.BatchResponse, error) {
	if id, err := uuid.Parse(idOrCode); err == nil {
		b, err := s.batches.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return batchToResponse(b), nil
	}
	b, err := s.batches.FindByBatchID(ctx, idOrCode)
	if err != nil {
		return nil, err
	}
	return batchToResponse(b), nil
}
