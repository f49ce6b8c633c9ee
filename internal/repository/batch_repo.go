package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"gorm.io/gorm"
)

// BatchRepository defines the data access contract for batches.
type BatchRepository interface {
	Create(ctx context.Context, b *model.Batch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	FindByBatchID(ctx context.Context, batchID string) (*model.Batch, error)
}

type batchRepo struct{ db *gorm.DB }

func NewBatchRepository(db *gorm.DB) BatchRepository { return &batchRepo{db: db} }

func (r *batchRepo) Create(ctx context.Context, b *model.Batch) error {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *batchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	var b model.Batch
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *batchRepo) FindByBatchID(ctx context.Context, batchID string) (*model.Batch, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	var b model.Batch
	err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).First(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}
