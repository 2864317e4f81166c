package inspection

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type ListFilter struct {
	BatchID uint
	Verdict string
}

type InspectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, r *domain.InspectionResult) (*domain.InspectionResult, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.InspectionResult, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter, skip, limit int) ([]*domain.InspectionResult, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	DeleteByBatch(ctx context.Context, tx *gorm.DB, batchID uint) error
}

type inspectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInspectionRepo(db *gorm.DB, baseLog *logger.Logger) InspectionRepo {
	repoLog := baseLog.With("repo", "InspectionRepo")
	return &inspectionRepo{db: db, log: repoLog}
}

func (ir *inspectionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ir.db
}

func (ir *inspectionRepo) Create(ctx context.Context, tx *gorm.DB, r *domain.InspectionResult) (*domain.InspectionResult, error) {
	if err := ir.conn(tx).WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

func (ir *inspectionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.InspectionResult, error) {
	var result domain.InspectionResult
	err := ir.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *inspectionRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter, skip, limit int) ([]*domain.InspectionResult, error) {
	query := ir.conn(tx).WithContext(ctx).Model(&domain.InspectionResult{})
	if filter.BatchID != 0 {
		query = query.Where("batch_id = ?", filter.BatchID)
	}
	if filter.Verdict != "" {
		query = query.Where("overall_verdict = ?", filter.Verdict)
	}

	var results []*domain.InspectionResult
	if err := query.
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *inspectionRepo) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	return ir.conn(tx).WithContext(ctx).
		Model(&domain.InspectionResult{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (ir *inspectionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := ir.conn(tx).WithContext(ctx).Delete(&domain.InspectionResult{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteByBatch removes every inspection result of a batch. Callers are
// expected to clear defect details first (see DefectDetailRepo.DeleteByBatch)
// and to run both inside one transaction.
func (ir *inspectionRepo) DeleteByBatch(ctx context.Context, tx *gorm.DB, batchID uint) error {
	return ir.conn(tx).WithContext(ctx).
		Where("batch_id = ?", batchID).
		Delete(&domain.InspectionResult{}).Error
}
