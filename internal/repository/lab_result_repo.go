package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"gorm.io/gorm"
)

// LabResultRepository defines the data access contract for lab test results.
type LabResultRepository interface {
	Create(ctx context.Context, lr *model.LabTestResult) error
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]model.LabTestResult, error)
}

type labResultRepo struct{ db *gorm.DB }

func NewLabResultRepository(db *gorm.DB) LabResultRepository { return &labResultRepo{db: db} }

func (r *labResultRepo) Create(ctx context.Context, lr *model.LabTestResult) error {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return translate(r.db.WithContext(ctx).Create(lr).Error)
}

func (r *labResultRepo) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]model.LabTestResult, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	var results []model.LabTestResult
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("test_date ASC").
		Find(&results).Error
	return results, translate(err)
}
