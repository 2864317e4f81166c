package producttype

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type ProductTypeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pt *domain.ProductType) (*domain.ProductType, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.ProductType, error)
	CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.ProductType, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type productTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductTypeRepo(db *gorm.DB, baseLog *logger.Logger) ProductTypeRepo {
	repoLog := baseLog.With("repo", "ProductTypeRepo")
	return &productTypeRepo{db: db, log: repoLog}
}

func (pr *productTypeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *productTypeRepo) Create(ctx context.Context, tx *gorm.DB, pt *domain.ProductType) (*domain.ProductType, error) {
	if err := pr.conn(tx).WithContext(ctx).Create(pt).Error; err != nil {
		return nil, err
	}
	return pt, nil
}

func (pr *productTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.ProductType, error) {
	var result domain.ProductType
	err := pr.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *productTypeRepo) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := pr.conn(tx).WithContext(ctx).
		Model(&domain.ProductType{}).
		Where("type_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *productTypeRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.ProductType, error) {
	var results []*domain.ProductType
	if err := pr.conn(tx).WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productTypeRepo) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&domain.ProductType{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (pr *productTypeRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := pr.conn(tx).WithContext(ctx).Delete(&domain.ProductType{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
