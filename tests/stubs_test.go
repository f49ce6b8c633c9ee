package tests

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/repository"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories so service logic can be exercised without Postgres.
// DB() returns nil, which makes the services run their transaction bodies
// directly (runTx unit-test mode).

type stubCollectionRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*model.HerbCollection
	byTxn  map[string]*model.HerbCollection
	events *stubEventRepo
}

func newStubCollectionRepo(events *stubEventRepo) *stubCollectionRepo {
	return &stubCollectionRepo{
		byID:   make(map[uuid.UUID]*model.HerbCollection),
		byTxn:  make(map[string]*model.HerbCollection),
		events: events,
	}
}

func (r *stubCollectionRepo) Create(_ context.Context, c *model.HerbCollection, firstEvent *model.SupplyChainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.byID[c.ID] = c
	r.byTxn[c.TransactionID] = c
	firstEvent.CollectionID = c.ID
	r.events.append(firstEvent)
	return nil
}

func (r *stubCollectionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.HerbCollection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return c, nil
}

func (r *stubCollectionRepo) FindByTransactionID(_ context.Context, txnID string) (*model.HerbCollection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byTxn[txnID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return c, nil
}

func (r *stubCollectionRepo) List(_ context.Context, filter dto.CollectionFilter) ([]model.HerbCollection, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.HerbCollection
	for _, c := range r.byID {
		if filter.HerbType != "" && c.HerbType != filter.HerbType {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCollectionRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.HerbCollection, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCollectionRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return ledger.ErrNotFound
	}
	c.Status = status
	return nil
}

func (r *stubCollectionRepo) DB() *gorm.DB { return nil }

var _ repository.CollectionRepository = (*stubCollectionRepo)(nil)

type stubEventRepo struct {
	mu     sync.Mutex
	events []model.SupplyChainEvent
}

func newStubEventRepo() *stubEventRepo { return &stubEventRepo{} }

func (r *stubEventRepo) append(ev *model.SupplyChainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	ev.CreatedAt = time.Now()
	r.events = append(r.events, *ev)
}

func (r *stubEventRepo) ListByCollection(_ context.Context, collectionID uuid.UUID) ([]model.SupplyChainEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SupplyChainEvent
	for _, ev := range r.events {
		if ev.CollectionID == collectionID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *stubEventRepo) CreateTx(_ *gorm.DB, ev *model.SupplyChainEvent) error {
	r.append(ev)
	return nil
}

func (r *stubEventRepo) LatestEventDateTx(_ *gorm.DB, collectionID uuid.UUID) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *time.Time
	for _, ev := range r.events {
		if ev.CollectionID != collectionID {
			continue
		}
		t := ev.EventDate
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}

var _ repository.EventRepository = (*stubEventRepo)(nil)

type stubLabRepo struct {
	mu      sync.Mutex
	results []model.LabTestResult
}

func newStubLabRepo() *stubLabRepo { return &stubLabRepo{} }

func (r *stubLabRepo) Create(_ context.Context, lr *model.LabTestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lr.ID == uuid.Nil {
		lr.ID = uuid.New()
	}
	r.results = append(r.results, *lr)
	return nil
}

func (r *stubLabRepo) ListByCollection(_ context.Context, collectionID uuid.UUID) ([]model.LabTestResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.LabTestResult
	for _, lr := range r.results {
		if lr.CollectionID == collectionID {
			out = append(out, lr)
		}
	}
	return out, nil
}

var _ repository.LabResultRepository = (*stubLabRepo)(nil)

type stubBatchRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*model.Batch
	byCode map[string]*model.Batch
}

func newStubBatchRepo() *stubBatchRepo {
	return &stubBatchRepo{
		byID:   make(map[uuid.UUID]*model.Batch),
		byCode: make(map[string]*model.Batch),
	}
}

func (r *stubBatchRepo) Create(_ context.Context, b *model.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	r.byID[b.ID] = b
	r.byCode[b.BatchID] = b
	return nil
}

func (r *stubBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return b, nil
}

func (r *stubBatchRepo) FindByBatchID(_ context.Context, batchID string) (*model.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byCode[batchID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return b, nil
}

var _ repository.BatchRepository = (*stubBatchRepo)(nil)
