package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/repository"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/worker"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CollectionService defines the business logic contract for collection
// records: submission, retrieval, the append-only event log, and lab results.
type CollectionService interface {
	Submit(ctx context.Context, req dto.SubmitCollectionRequest) (*dto.SubmitCollectionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CollectionResponse, error)
	List(ctx context.Context, filter dto.CollectionFilter) (*dto.CollectionListResponse, error)
	AppendEvent(ctx context.Context, collectionID uuid.UUID, req dto.AppendEventRequest) (*dto.EventResponse, error)
	AddLabResult(ctx context.Context, collectionID uuid.UUID, req dto.AddLabResultRequest) (*dto.LabResultResponse, error)
}

type collectionService struct {
	collections repository.CollectionRepository
	events      repository.EventRepository
	labs        repository.LabResultRepository
	dispatcher  *worker.Dispatcher
	now         func() time.Time
}

func NewCollectionService(
	collections repository.CollectionRepository,
	events repository.EventRepository,
	labs repository.LabResultRepository,
	dispatcher *worker.Dispatcher,
) CollectionService {
	return &collectionService{
		collections: collections,
		events:      events,
		labs:        labs,
		dispatcher:  dispatcher,
		now:         time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// eventStatusTarget maps a stage to the collection status it advances the
// record towards. Statuses only ever move forward.
var eventStatusTarget = map[string]string{
	model.EventShipping:   model.StatusInTransit,
	model.EventProcessing: model.StatusProcessed,
	model.EventPackaging:  model.StatusProcessed,
	model.EventDelivered:  model.StatusDelivered,
}

// ── Submit ───────────────────────────────────────────────────────────────────

func (s *collectionService) Submit(ctx context.Context, req dto.SubmitCollectionRequest) (*dto.SubmitCollectionResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, ledger.NewValidationError("quantity", "must be greater than zero")
	}
	if !model.ValidQualityGrade(req.QualityGrade) {
		return nil, ledger.NewValidationError("qualityGrade", "must be one of premium, standard, basic")
	}

	collectedAt := s.now().UTC()
	payload := ledger.NewCanonicalPayload(req.HerbType, req.Quantity, req.QualityGrade, req.LocationLat, req.LocationLng, collectedAt)
	fingerprint, txnID, err := ledger.Stamp(payload)
	if err != nil {
		return nil, err
	}

	var userID *uuid.UUID
	if req.UserID != nil {
		uid, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, ledger.NewValidationError("userId", "must be a valid uuid")
		}
		userID = &uid
	}

	c := &model.HerbCollection{
		HerbType:        req.HerbType,
		Quantity:        req.Quantity,
		QualityGrade:    req.QualityGrade,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
		CollectionDate:  collectedAt,
		BlockchainHash:  fingerprint,
		TransactionID:   txnID,
		Status:          model.StatusRecorded,
		UserID:          userID,
		Photos:          req.Photos,
		Documents:       req.Documents,
	}

	// Every record opens with its collection event: chronologically first,
	// exactly one per record.
	firstEvent := &model.SupplyChainEvent{
		EventType:       model.EventCollection,
		Status:          model.EventCompleted,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
		EventDate:       collectedAt,
		Description:     "Herb collected at source",
		BlockchainHash:  &fingerprint,
		TransactionID:   &txnID,
	}

	if err := s.collections.Create(ctx, c, firstEvent); err != nil {
		return nil, err
	}

	s.auditAsync(c.ID)

	return &dto.SubmitCollectionResponse{
		ID:            c.ID.String(),
		Fingerprint:   fingerprint,
		TransactionID: txnID,
	}, nil
}

// auditAsync enqueues a fingerprint re-check. Best effort only: the write
// already committed and must not fail on queue trouble.
func (s *collectionService) auditAsync(id uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.dispatcher.EnqueueVerification(ctx, id.String()); err != nil {
		log.Warn().Str("collection_id", id.String()).Err(err).Msg("failed to enqueue verification audit")
	}
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *collectionService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CollectionResponse, error) {
	c, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return collectionToResponse(c), nil
}

func (s *collectionService) List(ctx context.Context, filter dto.CollectionFilter) (*dto.CollectionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	collections, total, err := s.collections.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CollectionResponse, 0, len(collections))
	for i := range collections {
		data = append(data, *collectionToResponse(&collections[i]))
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.CollectionListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// ── AppendEvent ──────────────────────────────────────────────────────────────
// Per-record serialization: the collection row is locked FOR UPDATE, then the
// ordering check and the insert run inside the same transaction, so two
// concurrent appends against one record cannot both pass the monotonic
// timestamp check.

func (s *collectionService) AppendEvent(ctx context.Context, collectionID uuid.UUID, req dto.AppendEventRequest) (*dto.EventResponse, error) {
	// The collection event is created once, by Submit, as the record's
	// chronologically first step. Appending another would break that.
	if req.EventType == model.EventCollection {
		return nil, ledger.NewValidationError("eventType", "collection events are created with the record and cannot be appended")
	}

	eventDate := s.now().UTC()
	if req.EventDate != nil {
		eventDate = req.EventDate.UTC()
	}

	ev := &model.SupplyChainEvent{
		CollectionID:    collectionID,
		EventType:       req.EventType,
		Status:          req.Status,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
		EventDate:       eventDate,
		Description:     req.Description,
		PerformedBy:     req.PerformedBy,
		Metadata:        []byte(req.Metadata),
	}

	fingerprint, err := ledger.Fingerprint(ledger.CanonicalEventPayload{
		CollectionID: collectionID.String(),
		EventType:    req.EventType,
		Status:       req.Status,
		Description:  req.Description,
		TS:           eventDate.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}
	ev.BlockchainHash = &fingerprint

	txErr := runTx(ctx, s.collections.DB(), func(tx *gorm.DB) error {
		c, err := s.collections.FindByIDForUpdate(tx, collectionID)
		if err != nil {
			return err
		}

		latest, err := s.events.LatestEventDateTx(tx, collectionID)
		if err != nil {
			return err
		}
		if latest != nil && eventDate.Before(*latest) {
			return &ledger.OrderingError{Attempted: eventDate, Latest: *latest}
		}

		if err := s.events.CreateTx(tx, ev); err != nil {
			return err
		}

		// Advance the record status, forward only.
		if target, ok := eventStatusTarget[req.EventType]; ok {
			if model.StatusRank[target] > model.StatusRank[c.Status] {
				return s.collections.UpdateStatusTx(tx, collectionID, target)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.auditAsync(collectionID)

	return eventToResponse(ev), nil
}

// ── Lab results ──────────────────────────────────────────────────────────────

func (s *collectionService) AddLabResult(ctx context.Context, collectionID uuid.UUID, req dto.AddLabResultRequest) (*dto.LabResultResponse, error) {
	if err := validatePercent("purityPercentage", req.PurityPercentage); err != nil {
		return nil, err
	}
	if err := validatePercent("moisturePercentage", req.MoisturePercentage); err != nil {
		return nil, err
	}

	// Parent must exist; the FK is non-owning and the parent is never deleted.
	if _, err := s.collections.FindByID(ctx, collectionID); err != nil {
		return nil, err
	}

	testDate := s.now().UTC()
	if req.TestDate != nil {
		testDate = req.TestDate.UTC()
	}

	fingerprint, err := ledger.Fingerprint(ledger.CanonicalLabPayload{
		CollectionID:       collectionID.String(),
		LabName:            req.LabName,
		PurityPercentage:   ledger.PercentString(req.PurityPercentage),
		MoisturePercentage: ledger.PercentString(req.MoisturePercentage),
		PesticidesDetected: req.PesticidesDetected,
		TS:                 testDate.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	lr := &model.LabTestResult{
		CollectionID:       collectionID,
		LabName:            req.LabName,
		TestDate:           testDate,
		PurityPercentage:   req.PurityPercentage,
		MoisturePercentage: req.MoisturePercentage,
		PesticidesDetected: req.PesticidesDetected,
		PesticideDetails:   req.PesticideDetails,
		LabCertificate:     req.LabCertificate,
		BlockchainHash:     fingerprint,
	}
	if err := s.labs.Create(ctx, lr); err != nil {
		return nil, err
	}

	return labResultToResponse(lr), nil
}

// validatePercent bounds an optional percentage to [0,100].
func validatePercent(field string, d *decimal.Decimal) error {
	if d == nil {
		return nil
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return ledger.NewValidationError(field, "must be between 0 and 100")
	}
	return nil
}
