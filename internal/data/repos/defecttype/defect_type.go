package defecttype

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type DefectTypeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, dt *domain.DefectType) (*domain.DefectType, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.DefectType, error)
	CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.DefectType, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type defectTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDefectTypeRepo(db *gorm.DB, baseLog *logger.Logger) DefectTypeRepo {
	repoLog := baseLog.With("repo", "DefectTypeRepo")
	return &defectTypeRepo{db: db, log: repoLog}
}

func (dr *defectTypeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return dr.db
}

func (dr *defectTypeRepo) Create(ctx context.Context, tx *gorm.DB, dt *domain.DefectType) (*domain.DefectType, error) {
	if err := dr.conn(tx).WithContext(ctx).Create(dt).Error; err != nil {
		return nil, err
	}
	return dt, nil
}

func (dr *defectTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.DefectType, error) {
	var result domain.DefectType
	err := dr.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *defectTypeRepo) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := dr.conn(tx).WithContext(ctx).
		Model(&domain.DefectType{}).
		Where("defect_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *defectTypeRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.DefectType, error) {
	var results []*domain.DefectType
	if err := dr.conn(tx).WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *defectTypeRepo) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	return dr.conn(tx).WithContext(ctx).
		Model(&domain.DefectType{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (dr *defectTypeRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := dr.conn(tx).WithContext(ctx).Delete(&domain.DefectType{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
