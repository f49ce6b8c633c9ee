package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/repository"
	"github.com/redis/go-redis/v9"
)

const resolveCacheTTL = 60 * time.Second

// ResolveService turns a client-presented token — transaction id, record id,
// or scan payload — into the canonical record plus its ordered history.
type ResolveService interface {
	Resolve(ctx context.Context, token string) (*dto.ResolvedRecord, error)
}

type resolveService struct {
	collections repository.CollectionRepository
	events      repository.EventRepository
	labs        repository.LabResultRepository
	rdb         *redis.Client
}

func NewResolveService(
	collections repository.CollectionRepository,
	events repository.EventRepository,
	labs repository.LabResultRepository,
	rdb *redis.Client,
) ResolveService {
	return &resolveService{collections: collections, events: events, labs: labs, rdb: rdb}
}

func (s *resolveService) Resolve(ctx context.Context, token string) (*dto.ResolvedRecord, error) {
	scan, err := ledger.DecodeToken(token)
	if err != nil {
		return nil, err
	}

	record, err := s.lookup(ctx, scan)
	if err != nil {
		return nil, err
	}

	// Short-TTL read-through cache keyed by transaction id, so a structured
	// payload and its raw id hit the same entry. Timeline appends make stale
	// entries wrong, hence the tight TTL. Best effort throughout.
	cacheKey := "resolve:" + record.TransactionID
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resolved dto.ResolvedRecord
			if jsonErr := json.Unmarshal(cached, &resolved); jsonErr == nil {
				return &resolved, nil
			}
		}
	}

	events, err := s.events.ListByCollection(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	labs, err := s.labs.ListByCollection(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	resolved := s.project(record, events, labs)

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resolved); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), cacheKey, b, resolveCacheTTL).Err()
		}
	}

	return resolved, nil
}

// lookup resolves the decoded token to a collection row. Raw tokens that
// parse as a uuid are record ids; everything else is tried as a transaction id.
func (s *resolveService) lookup(ctx context.Context, scan ledger.ScanToken) (*model.HerbCollection, error) {
	switch {
	case scan.TransactionID != "":
		return s.collections.FindByTransactionID(ctx, scan.TransactionID)
	case scan.RecordID != "":
		id, err := uuid.Parse(scan.RecordID)
		if err != nil {
			return nil, &ledger.MalformedTokenError{Reason: "scan payload id is not a valid record id"}
		}
		return s.collections.FindByID(ctx, id)
	default:
		if id, err := uuid.Parse(scan.Raw); err == nil {
			return s.collections.FindByID(ctx, id)
		}
		return s.collections.FindByTransactionID(ctx, scan.Raw)
	}
}

// project builds the consumer-facing bundle: record fields, coordinates,
// ordered timeline, lab results, and the recomputed verification flag.
func (s *resolveService) project(c *model.HerbCollection, events []model.SupplyChainEvent, labs []model.LabTestResult) *dto.ResolvedRecord {
	verified := ledger.Verify(c.BlockchainHash,
		ledger.NewCanonicalPayload(c.HerbType, c.Quantity, c.QualityGrade, c.LocationLat, c.LocationLng, c.CollectionDate))

	var coords *dto.Coordinates
	if c.LocationLat != nil && c.LocationLng != nil {
		coords = &dto.Coordinates{Lat: *c.LocationLat, Lng: *c.LocationLng}
	}

	labResponses := make([]dto.LabResultResponse, 0, len(labs))
	for i := range labs {
		labResponses = append(labResponses, *labResultToResponse(&labs[i]))
	}

	return &dto.ResolvedRecord{
		ID:              c.ID.String(),
		TransactionID:   c.TransactionID,
		Fingerprint:     c.BlockchainHash,
		HerbType:        c.HerbType,
		Quantity:        c.Quantity,
		QualityGrade:    c.QualityGrade,
		LocationAddress: c.LocationAddress,
		Coordinates:     coords,
		CollectionDate:  c.CollectionDate,
		Status:          c.Status,
		Timeline:        ledger.AssembleTimeline(events),
		LabResults:      labResponses,
		Verified:        verified,
	}
}
