package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionRepository defines the data access contract for collection records.
type CollectionRepository interface {
	Create(ctx context.Context, c *model.HerbCollection, firstEvent *model.SupplyChainEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.HerbCollection, error)
	FindByTransactionID(ctx context.Context, txnID string) (*model.HerbCollection, error)
	List(ctx context.Context, filter dto.CollectionFilter) ([]model.HerbCollection, int64, error)

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdate takes a row lock so concurrent appends against the
	// same collection serialize on the parent row.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.HerbCollection, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type collectionRepo struct{ db *gorm.DB }

func NewCollectionRepository(db *gorm.DB) CollectionRepository { return &collectionRepo{db: db} }

// Create persists the collection together with its originating `collection`
// event in a single transaction, so no record ever exists without its first
// timeline step.
func (r *collectionRepo) Create(ctx context.Context, c *model.HerbCollection, firstEvent *model.SupplyChainEvent) error {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		firstEvent.CollectionID = c.ID
		return tx.Create(firstEvent).Error
	})
	return translate(err)
}

func (r *collectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.HerbCollection, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	var c model.HerbCollection
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *collectionRepo) FindByTransactionID(ctx context.Context, txnID string) (*model.HerbCollection, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	var c model.HerbCollection
	err := r.db.WithContext(ctx).Where("transaction_id = ?", txnID).First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *collectionRepo) List(ctx context.Context, filter dto.CollectionFilter) ([]model.HerbCollection, int64, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var collections []model.HerbCollection
	var total int64

	q := r.db.WithContext(ctx).Model(&model.HerbCollection{})
	if filter.HerbType != "" {
		q = q.Where("herb_type = ?", filter.HerbType)
	}
	if filter.QualityGrade != "" {
		q = q.Where("quality_grade = ?", filter.QualityGrade)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&collections).Error
	return collections, total, translate(err)
}

func (r *collectionRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.HerbCollection, error) {
	var c model.HerbCollection
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *collectionRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return translate(tx.Model(&model.HerbCollection{}).Where("id = ?", id).Update("status", status).Error)
}

func (r *collectionRepo) DB() *gorm.DB { return r.db }
