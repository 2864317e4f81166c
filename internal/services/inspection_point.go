package services

import (
	"context"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	iprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspectionpoint"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type CreateInspectionPointInput struct {
	PointCode      string            `json:"point_code" binding:"required"`
	PointName      string            `json:"point_name" binding:"required"`
	Description    string            `json:"description"`
	EquipmentType  string            `json:"equipment_type"`
	LocationInLine string            `json:"location_in_line"`
	Coordinates    datatypes.JSONMap `json:"coordinates"`
}

type UpdateInspectionPointInput struct {
	PointName      *string            `json:"point_name"`
	Description    *string            `json:"description"`
	EquipmentType  *string            `json:"equipment_type"`
	LocationInLine *string            `json:"location_in_line"`
	Coordinates    *datatypes.JSONMap `json:"coordinates"`
}

type InspectionPointService interface {
	Create(ctx context.Context, input CreateInspectionPointInput) (*domain.InspectionPoint, error)
	Get(ctx context.Context, id uint) (*domain.InspectionPoint, error)
	List(ctx context.Context, skip, limit int) ([]*domain.InspectionPoint, error)
	Update(ctx context.Context, id uint, input UpdateInspectionPointInput) (*domain.InspectionPoint, error)
	Delete(ctx context.Context, id uint) error
}

type inspectionPointService struct {
	db        *gorm.DB
	log       *logger.Logger
	pointRepo iprepo.InspectionPointRepo
}

func NewInspectionPointService(db *gorm.DB, baseLog *logger.Logger, pointRepo iprepo.InspectionPointRepo) InspectionPointService {
	serviceLog := baseLog.With("service", "InspectionPointService")
	return &inspectionPointService{db: db, log: serviceLog, pointRepo: pointRepo}
}

func (ps *inspectionPointService) Create(ctx context.Context, input CreateInspectionPointInput) (*domain.InspectionPoint, error) {
	code := strings.TrimSpace(input.PointCode)
	if code == "" || strings.TrimSpace(input.PointName) == "" {
		return nil, apierr.Validation("point_code and point_name are required")
	}

	p := &domain.InspectionPoint{
		PointCode:      code,
		PointName:      input.PointName,
		Description:    input.Description,
		EquipmentType:  input.EquipmentType,
		LocationInLine: input.LocationInLine,
		Coordinates:    input.Coordinates,
	}

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := ps.pointRepo.CodeExists(ctx, tx, code)
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("inspection point code already exists")
		}
		_, err = ps.pointRepo.Create(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (ps *inspectionPointService) Get(ctx context.Context, id uint) (*domain.InspectionPoint, error) {
	p, err := ps.pointRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apierr.NotFound("inspection point not found")
	}
	return p, nil
}

func (ps *inspectionPointService) List(ctx context.Context, skip, limit int) ([]*domain.InspectionPoint, error) {
	return ps.pointRepo.List(ctx, nil, skip, limit)
}

func (ps *inspectionPointService) Update(ctx context.Context, id uint, input UpdateInspectionPointInput) (*domain.InspectionPoint, error) {
	updates := map[string]any{}
	if input.PointName != nil {
		updates["point_name"] = *input.PointName
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.EquipmentType != nil {
		updates["equipment_type"] = *input.EquipmentType
	}
	if input.LocationInLine != nil {
		updates["location_in_line"] = *input.LocationInLine
	}
	if input.Coordinates != nil {
		updates["coordinates"] = *input.Coordinates
	}

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ps.pointRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("inspection point not found")
		}
		if len(updates) == 0 {
			return nil
		}
		return ps.pointRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return nil, err
	}
	return ps.Get(ctx, id)
}

func (ps *inspectionPointService) Delete(ctx context.Context, id uint) error {
	deleted, err := ps.pointRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apierr.NotFound("inspection point not found")
	}
	return nil
}
