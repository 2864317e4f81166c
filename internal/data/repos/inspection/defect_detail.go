package inspection

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type DefectDetailRepo interface {
	Create(ctx context.Context, tx *gorm.DB, d *domain.DefectDetail) (*domain.DefectDetail, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.DefectDetail, error)
	ListByInspection(ctx context.Context, tx *gorm.DB, inspectionResultID uint, skip, limit int) ([]*domain.DefectDetail, error)
	CountByDefectType(ctx context.Context, tx *gorm.DB, defectTypeID uint) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	DeleteByInspection(ctx context.Context, tx *gorm.DB, inspectionResultID uint) error
	DeleteByBatch(ctx context.Context, tx *gorm.DB, batchID uint) error
}

type defectDetailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDefectDetailRepo(db *gorm.DB, baseLog *logger.Logger) DefectDetailRepo {
	repoLog := baseLog.With("repo", "DefectDetailRepo")
	return &defectDetailRepo{db: db, log: repoLog}
}

func (dr *defectDetailRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return dr.db
}

func (dr *defectDetailRepo) Create(ctx context.Context, tx *gorm.DB, d *domain.DefectDetail) (*domain.DefectDetail, error) {
	if err := dr.conn(tx).WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (dr *defectDetailRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.DefectDetail, error) {
	var result domain.DefectDetail
	err := dr.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *defectDetailRepo) ListByInspection(ctx context.Context, tx *gorm.DB, inspectionResultID uint, skip, limit int) ([]*domain.DefectDetail, error) {
	var results []*domain.DefectDetail
	if err := dr.conn(tx).WithContext(ctx).
		Where("inspection_result_id = ?", inspectionResultID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *defectDetailRepo) CountByDefectType(ctx context.Context, tx *gorm.DB, defectTypeID uint) (int64, error) {
	var count int64
	if err := dr.conn(tx).WithContext(ctx).
		Model(&domain.DefectDetail{}).
		Where("defect_type_id = ?", defectTypeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (dr *defectDetailRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := dr.conn(tx).WithContext(ctx).Delete(&domain.DefectDetail{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (dr *defectDetailRepo) DeleteByInspection(ctx context.Context, tx *gorm.DB, inspectionResultID uint) error {
	return dr.conn(tx).WithContext(ctx).
		Where("inspection_result_id = ?", inspectionResultID).
		Delete(&domain.DefectDetail{}).Error
}

// DeleteByBatch clears defect details for every inspection of the batch via
// a subquery so the cascade stays a single statement.
func (dr *defectDetailRepo) DeleteByBatch(ctx context.Context, tx *gorm.DB, batchID uint) error {
	conn := dr.conn(tx).WithContext(ctx)
	sub := conn.Session(&gorm.Session{NewDB: true}).
		Model(&domain.InspectionResult{}).
		Select("id").
		Where("batch_id = ?", batchID)
	return conn.
		Where("inspection_result_id IN (?)", sub).
		Delete(&domain.DefectDetail{}).Error
}
