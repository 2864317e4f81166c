package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	batchrepo "github.com/yungbote/metalqc-backend/internal/data/repos/batch"
	insprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspection"
	ptrepo "github.com/yungbote/metalqc-backend/internal/data/repos/producttype"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type CreateBatchInput struct {
	BatchNumber    string            `json:"batch_number" binding:"required"`
	ProductTypeID  uint              `json:"product_type_id" binding:"required"`
	ProductionDate time.Time         `json:"production_date" binding:"required"`
	FurnaceNumber  string            `json:"furnace_number"`
	ShiftNumber    *int              `json:"shift_number"`
	TotalWeightKg  *float64          `json:"total_weight_kg"`
	TotalLengthM   *float64          `json:"total_length_m"`
	Status         string            `json:"status"`
	QualityRating  *int              `json:"quality_rating"`
	Metadata       datatypes.JSONMap `json:"metadata"`
}

// UpdateBatchInput never touches batch_number or product_type_id; both are
// fixed at creation.
type UpdateBatchInput struct {
	FurnaceNumber *string            `json:"furnace_number"`
	ShiftNumber   *int               `json:"shift_number"`
	TotalWeightKg *float64           `json:"total_weight_kg"`
	TotalLengthM  *float64           `json:"total_length_m"`
	Status        *string            `json:"status"`
	QualityRating *int               `json:"quality_rating"`
	Metadata      *datatypes.JSONMap `json:"metadata"`
}

type BatchService interface {
	Create(ctx context.Context, actorID uint, input CreateBatchInput) (*domain.ProductionBatch, error)
	Get(ctx context.Context, id uint) (*domain.ProductionBatch, error)
	List(ctx context.Context, filter batchrepo.ListFilter, skip, limit int) ([]*domain.ProductionBatch, error)
	Update(ctx context.Context, id uint, input UpdateBatchInput) (*domain.ProductionBatch, error)
	Delete(ctx context.Context, id uint) error
}

type batchService struct {
	db         *gorm.DB
	log        *logger.Logger
	batchRepo  batchrepo.BatchRepo
	typeRepo   ptrepo.ProductTypeRepo
	inspRepo   insprepo.InspectionRepo
	detailRepo insprepo.DefectDetailRepo
}

func NewBatchService(
	db *gorm.DB,
	baseLog *logger.Logger,
	batchRepo batchrepo.BatchRepo,
	typeRepo ptrepo.ProductTypeRepo,
	inspRepo insprepo.InspectionRepo,
	detailRepo insprepo.DefectDetailRepo,
) BatchService {
	serviceLog := baseLog.With("service", "BatchService")
	return &batchService{
		db:         db,
		log:        serviceLog,
		batchRepo:  batchRepo,
		typeRepo:   typeRepo,
		inspRepo:   inspRepo,
		detailRepo: detailRepo,
	}
}

func (bs *batchService) Create(ctx context.Context, actorID uint, input CreateBatchInput) (*domain.ProductionBatch, error) {
	number := strings.TrimSpace(input.BatchNumber)
	if number == "" {
		return nil, apierr.Validation("batch_number is required")
	}

	b := &domain.ProductionBatch{
		BatchNumber:    number,
		ProductTypeID:  input.ProductTypeID,
		ProductionDate: input.ProductionDate,
		FurnaceNumber:  input.FurnaceNumber,
		ShiftNumber:    input.ShiftNumber,
		TotalWeightKg:  input.TotalWeightKg,
		TotalLengthM:   input.TotalLengthM,
		Status:         domain.BatchStatusInProduction,
		QualityRating:  input.QualityRating,
		Metadata:       input.Metadata,
	}
	if input.Status != "" {
		b.Status = input.Status
	}
	if actorID != 0 {
		b.CreatedBy = &actorID
	}

	err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := bs.batchRepo.NumberExists(ctx, tx, number)
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("batch number already exists")
		}
		pt, err := bs.typeRepo.GetByID(ctx, tx, input.ProductTypeID)
		if err != nil {
			return err
		}
		if pt == nil {
			return apierr.Validation("product type %d does not exist", input.ProductTypeID)
		}
		_, err = bs.batchRepo.Create(ctx, tx, b)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (bs *batchService) Get(ctx context.Context, id uint) (*domain.ProductionBatch, error) {
	b, err := bs.batchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apierr.NotFound("production batch not found")
	}
	return b, nil
}

func (bs *batchService) List(ctx context.Context, filter batchrepo.ListFilter, skip, limit int) ([]*domain.ProductionBatch, error) {
	return bs.batchRepo.List(ctx, nil, filter, skip, limit)
}

func (bs *batchService) Update(ctx context.Context, id uint, input UpdateBatchInput) (*domain.ProductionBatch, error) {
	updates := map[string]any{}
	if input.FurnaceNumber != nil {
		updates["furnace_number"] = *input.FurnaceNumber
	}
	if input.ShiftNumber != nil {
		updates["shift_number"] = *input.ShiftNumber
	}
	if input.TotalWeightKg != nil {
		updates["total_weight_kg"] = *input.TotalWeightKg
	}
	if input.TotalLengthM != nil {
		updates["total_length_m"] = *input.TotalLengthM
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.QualityRating != nil {
		updates["quality_rating"] = *input.QualityRating
	}
	if input.Metadata != nil {
		updates["metadata"] = *input.Metadata
	}

	err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := bs.batchRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("production batch not found")
		}
		if len(updates) == 0 {
			return nil
		}
		return bs.batchRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return nil, err
	}
	return bs.Get(ctx, id)
}

// Delete cascades: defect details of the batch's inspections go first, then
// the inspections, then the batch row. One transaction, so a failure leaves
// the batch intact.
func (bs *batchService) Delete(ctx context.Context, id uint) error {
	return bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := bs.batchRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("production batch not found")
		}
		if err := bs.detailRepo.DeleteByBatch(ctx, tx, id); err != nil {
			return err
		}
		if err := bs.inspRepo.DeleteByBatch(ctx, tx, id); err != nil {
			return err
		}
		_, err = bs.batchRepo.Delete(ctx, tx, id)
		return err
	})
}
