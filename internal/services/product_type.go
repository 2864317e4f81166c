package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	batchrepo "github.com/yungbote/metalqc-backend/internal/data/repos/batch"
	ptrepo "github.com/yungbote/metalqc-backend/internal/data/repos/producttype"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type CreateProductTypeInput struct {
	TypeCode       string `json:"type_code" binding:"required"`
	TypeName       string `json:"type_name" binding:"required"`
	Standard       string `json:"standard"`
	ThicknessRange string `json:"thickness_range"`
	WidthRange     string `json:"width_range"`
	MaterialGrade  string `json:"material_grade"`
	Description    string `json:"description"`
}

type UpdateProductTypeInput struct {
	TypeName       *string `json:"type_name"`
	Standard       *string `json:"standard"`
	ThicknessRange *string `json:"thickness_range"`
	WidthRange     *string `json:"width_range"`
	MaterialGrade  *string `json:"material_grade"`
	Description    *string `json:"description"`
}

type ProductTypeService interface {
	Create(ctx context.Context, actorID uint, input CreateProductTypeInput) (*domain.ProductType, error)
	Get(ctx context.Context, id uint) (*domain.ProductType, error)
	List(ctx context.Context, skip, limit int) ([]*domain.ProductType, error)
	Update(ctx context.Context, id uint, input UpdateProductTypeInput) (*domain.ProductType, error)
	Delete(ctx context.Context, id uint) error
}

type productTypeService struct {
	db        *gorm.DB
	log       *logger.Logger
	typeRepo  ptrepo.ProductTypeRepo
	batchRepo batchrepo.BatchRepo
}

func NewProductTypeService(db *gorm.DB, baseLog *logger.Logger, typeRepo ptrepo.ProductTypeRepo, batchRepo batchrepo.BatchRepo) ProductTypeService {
	serviceLog := baseLog.With("service", "ProductTypeService")
	return &productTypeService{db: db, log: serviceLog, typeRepo: typeRepo, batchRepo: batchRepo}
}

func (ps *productTypeService) Create(ctx context.Context, actorID uint, input CreateProductTypeInput) (*domain.ProductType, error) {
	code := strings.TrimSpace(input.TypeCode)
	if code == "" || strings.TrimSpace(input.TypeName) == "" {
		return nil, apierr.Validation("type_code and type_name are required")
	}

	pt := &domain.ProductType{
		TypeCode:       code,
		TypeName:       input.TypeName,
		Standard:       input.Standard,
		ThicknessRange: input.ThicknessRange,
		WidthRange:     input.WidthRange,
		MaterialGrade:  input.MaterialGrade,
		Description:    input.Description,
	}
	if actorID != 0 {
		pt.CreatedBy = &actorID
	}

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := ps.typeRepo.CodeExists(ctx, tx, code)
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("product type code already exists")
		}
		_, err = ps.typeRepo.Create(ctx, tx, pt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pt, nil
}

func (ps *productTypeService) Get(ctx context.Context, id uint) (*domain.ProductType, error) {
	pt, err := ps.typeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if pt == nil {
		return nil, apierr.NotFound("product type not found")
	}
	return pt, nil
}

func (ps *productTypeService) List(ctx context.Context, skip, limit int) ([]*domain.ProductType, error) {
	return ps.typeRepo.List(ctx, nil, skip, limit)
}

func (ps *productTypeService) Update(ctx context.Context, id uint, input UpdateProductTypeInput) (*domain.ProductType, error) {
	updates := map[string]any{}
	if input.TypeName != nil {
		updates["type_name"] = *input.TypeName
	}
	if input.Standard != nil {
		updates["standard"] = *input.Standard
	}
	if input.ThicknessRange != nil {
		updates["thickness_range"] = *input.ThicknessRange
	}
	if input.WidthRange != nil {
		updates["width_range"] = *input.WidthRange
	}
	if input.MaterialGrade != nil {
		updates["material_grade"] = *input.MaterialGrade
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ps.typeRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("product type not found")
		}
		if len(updates) == 0 {
			return nil
		}
		return ps.typeRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return nil, err
	}
	return ps.Get(ctx, id)
}

// Delete refuses when production batches still reference the type; the
// batches must be removed or repointed first.
func (ps *productTypeService) Delete(ctx context.Context, id uint) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ps.typeRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("product type not found")
		}
		refs, err := ps.batchRepo.CountByProductType(ctx, tx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apierr.Conflict("product type is referenced by %d production batches", refs)
		}
		_, err = ps.typeRepo.Delete(ctx, tx, id)
		return err
	})
}
