package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	dtrepo "github.com/yungbote/metalqc-backend/internal/data/repos/defecttype"
	insprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspection"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type CreateDefectTypeInput struct {
	DefectCode      string   `json:"defect_code" binding:"required"`
	DefectName      string   `json:"defect_name" binding:"required"`
	Category        string   `json:"category"`
	SeverityLevel   string   `json:"severity_level"`
	Description     string   `json:"description"`
	MeasurementUnit string   `json:"measurement_unit"`
	ThresholdValue  *float64 `json:"threshold_value"`
}

type UpdateDefectTypeInput struct {
	DefectName      *string  `json:"defect_name"`
	Category        *string  `json:"category"`
	SeverityLevel   *string  `json:"severity_level"`
	Description     *string  `json:"description"`
	MeasurementUnit *string  `json:"measurement_unit"`
	ThresholdValue  *float64 `json:"threshold_value"`
}

type DefectTypeService interface {
	Create(ctx context.Context, actorID uint, input CreateDefectTypeInput) (*domain.DefectType, error)
	Get(ctx context.Context, id uint) (*domain.DefectType, error)
	List(ctx context.Context, skip, limit int) ([]*domain.DefectType, error)
	Update(ctx context.Context, id uint, input UpdateDefectTypeInput) (*domain.DefectType, error)
	Delete(ctx context.Context, id uint) error
}

type defectTypeService struct {
	db         *gorm.DB
	log        *logger.Logger
	dtRepo     dtrepo.DefectTypeRepo
	detailRepo insprepo.DefectDetailRepo
}

func NewDefectTypeService(db *gorm.DB, baseLog *logger.Logger, dtRepo dtrepo.DefectTypeRepo, detailRepo insprepo.DefectDetailRepo) DefectTypeService {
	serviceLog := baseLog.With("service", "DefectTypeService")
	return &defectTypeService{db: db, log: serviceLog, dtRepo: dtRepo, detailRepo: detailRepo}
}

func (ds *defectTypeService) Create(ctx context.Context, actorID uint, input CreateDefectTypeInput) (*domain.DefectType, error) {
	code := strings.TrimSpace(input.DefectCode)
	if code == "" || strings.TrimSpace(input.DefectName) == "" {
		return nil, apierr.Validation("defect_code and defect_name are required")
	}

	dt := &domain.DefectType{
		DefectCode:      code,
		DefectName:      input.DefectName,
		Category:        input.Category,
		SeverityLevel:   input.SeverityLevel,
		Description:     input.Description,
		MeasurementUnit: input.MeasurementUnit,
		ThresholdValue:  input.ThresholdValue,
	}
	if actorID != 0 {
		dt.CreatedBy = &actorID
	}

	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := ds.dtRepo.CodeExists(ctx, tx, code)
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("defect code already exists")
		}
		_, err = ds.dtRepo.Create(ctx, tx, dt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dt, nil
}

func (ds *defectTypeService) Get(ctx context.Context, id uint) (*domain.DefectType, error) {
	dt, err := ds.dtRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, apierr.NotFound("defect type not found")
	}
	return dt, nil
}

func (ds *defectTypeService) List(ctx context.Context, skip, limit int) ([]*domain.DefectType, error) {
	return ds.dtRepo.List(ctx, nil, skip, limit)
}

func (ds *defectTypeService) Update(ctx context.Context, id uint, input UpdateDefectTypeInput) (*domain.DefectType, error) {
	updates := map[string]any{}
	if input.DefectName != nil {
		updates["defect_name"] = *input.DefectName
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.SeverityLevel != nil {
		updates["severity_level"] = *input.SeverityLevel
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.MeasurementUnit != nil {
		updates["measurement_unit"] = *input.MeasurementUnit
	}
	if input.ThresholdValue != nil {
		updates["threshold_value"] = *input.ThresholdValue
	}

	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ds.dtRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("defect type not found")
		}
		if len(updates) == 0 {
			return nil
		}
		return ds.dtRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return nil, err
	}
	return ds.Get(ctx, id)
}

// Delete refuses while recorded defect details still reference the type.
func (ds *defectTypeService) Delete(ctx context.Context, id uint) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ds.dtRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("defect type not found")
		}
		refs, err := ds.detailRepo.CountByDefectType(ctx, tx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apierr.Conflict("defect type is referenced by %d defect details", refs)
		}
		_, err = ds.dtRepo.Delete(ctx, tx, id)
		return err
	})
}
