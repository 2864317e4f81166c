package inspectionpoint

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type InspectionPointRepo interface {
	Create(ctx context.Context, tx *gorm.DB, p *domain.InspectionPoint) (*domain.InspectionPoint, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.InspectionPoint, error)
	CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.InspectionPoint, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type inspectionPointRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInspectionPointRepo(db *gorm.DB, baseLog *logger.Logger) InspectionPointRepo {
	repoLog := baseLog.With("repo", "InspectionPointRepo")
	return &inspectionPointRepo{db: db, log: repoLog}
}

func (pr *inspectionPointRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *inspectionPointRepo) Create(ctx context.Context, tx *gorm.DB, p *domain.InspectionPoint) (*domain.InspectionPoint, error) {
	if err := pr.conn(tx).WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (pr *inspectionPointRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.InspectionPoint, error) {
	var result domain.InspectionPoint
	err := pr.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *inspectionPointRepo) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := pr.conn(tx).WithContext(ctx).
		Model(&domain.InspectionPoint{}).
		Where("point_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *inspectionPointRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.InspectionPoint, error) {
	var results []*domain.InspectionPoint
	if err := pr.conn(tx).WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *inspectionPointRepo) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&domain.InspectionPoint{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (pr *inspectionPointRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := pr.conn(tx).WithContext(ctx).Delete(&domain.InspectionPoint{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
