package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"gorm.io/gorm"
)

// EventRepository defines the data access contract for supply-chain events.
// Events are append-only: there are no update or delete operations.
type EventRepository interface {
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]model.SupplyChainEvent, error)

	// Used inside the per-record append transaction.
	CreateTx(tx *gorm.DB, ev *model.SupplyChainEvent) error
	LatestEventDateTx(tx *gorm.DB, collectionID uuid.UUID) (*time.Time, error)
}

type eventRepo struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) EventRepository { return &eventRepo{db: db} }

func (r *eventRepo) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]model.SupplyChainEvent, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	var events []model.SupplyChainEvent
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("event_date ASC, created_at ASC").
		Find(&events).Error
	return events, translate(err)
}

func (r *eventRepo) CreateTx(tx *gorm.DB, ev *model.SupplyChainEvent) error {
	return translate(tx.Create(ev).Error)
}

// LatestEventDateTx returns the newest event timestamp for the collection, or
// nil when no events exist yet. Must run inside the same transaction as the
// insert so the monotonic-timestamp check cannot race.
func (r *eventRepo) LatestEventDateTx(tx *gorm.DB, collectionID uuid.UUID) (*time.Time, error) {
	var latest *time.Time
	err := tx.Model(&model.SupplyChainEvent{}).
		Where("collection_id = ?", collectionID).
		Select("MAX(event_date)").
		Scan(&latest).Error
	if err != nil {
		return nil, translate(err)
	}
	return latest, nil
}
