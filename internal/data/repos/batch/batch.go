package batch

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

// ListFilter narrows batch listings; zero values mean "no filter".
type ListFilter struct {
	Status        string
	ProductTypeID uint
}

type BatchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, b *domain.ProductionBatch) (*domain.ProductionBatch, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.ProductionBatch, error)
	NumberExists(ctx context.Context, tx *gorm.DB, batchNumber string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter, skip, limit int) ([]*domain.ProductionBatch, error)
	CountByProductType(ctx context.Context, tx *gorm.DB, productTypeID uint) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type batchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBatchRepo(db *gorm.DB, baseLog *logger.Logger) BatchRepo {
	repoLog := baseLog.With("repo", "BatchRepo")
	return &batchRepo{db: db, log: repoLog}
}

func (br *batchRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return br.db
}

func (br *batchRepo) Create(ctx context.Context, tx *gorm.DB, b *domain.ProductionBatch) (*domain.ProductionBatch, error) {
	if err := br.conn(tx).WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (br *batchRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.ProductionBatch, error) {
	var result domain.ProductionBatch
	err := br.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *batchRepo) NumberExists(ctx context.Context, tx *gorm.DB, batchNumber string) (bool, error) {
	var count int64
	if err := br.conn(tx).WithContext(ctx).
		Model(&domain.ProductionBatch{}).
		Where("batch_number = ?", batchNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (br *batchRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter, skip, limit int) ([]*domain.ProductionBatch, error) {
	query := br.conn(tx).WithContext(ctx).Model(&domain.ProductionBatch{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ProductTypeID != 0 {
		query = query.Where("product_type_id = ?", filter.ProductTypeID)
	}

	var results []*domain.ProductionBatch
	if err := query.
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *batchRepo) CountByProductType(ctx context.Context, tx *gorm.DB, productTypeID uint) (int64, error) {
	var count int64
	if err := br.conn(tx).WithContext(ctx).
		Model(&domain.ProductionBatch{}).
		Where("product_type_id = ?", productTypeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (br *batchRepo) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	return br.conn(tx).WithContext(ctx).
		Model(&domain.ProductionBatch{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (br *batchRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := br.conn(tx).WithContext(ctx).Delete(&domain.ProductionBatch{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
