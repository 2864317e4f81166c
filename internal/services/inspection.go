package services

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	batchrepo "github.com/yungbote/metalqc-backend/internal/data/repos/batch"
	dtrepo "github.com/yungbote/metalqc-backend/internal/data/repos/defecttype"
	insprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspection"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type CreateInspectionInput struct {
	BatchID           uint              `json:"batch_id" binding:"required"`
	InspectionPointID *uint             `json:"inspection_point_id"`
	InspectorID       *uint             `json:"inspector_id"`
	InspectorName     string            `json:"inspector_name"`
	InspectionTime    *time.Time        `json:"inspection_time"`
	MeasurementData   datatypes.JSONMap `json:"measurement_data"`
	IsDefectDetected  bool              `json:"is_defect_detected"`
	DefectCount       int               `json:"defect_count"`
	OverallVerdict    string            `json:"overall_verdict"`
	Status            string            `json:"status"`
	Notes             string            `json:"notes"`
}

type UpdateInspectionInput struct {
	OverallVerdict *string `json:"overall_verdict"`
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
}

type CreateDefectDetailInput struct {
	DefectTypeID   uint              `json:"defect_type_id" binding:"required"`
	DefectLocation datatypes.JSONMap `json:"defect_location"`
	Severity       *float64          `json:"severity"`
	SizeMm         *float64          `json:"size_mm"`
	ImagePath      string            `json:"image_path"`
	IsRepaired     bool              `json:"is_repaired"`
	RepairMethod   string            `json:"repair_method"`
	RepairDate     *time.Time        `json:"repair_date"`
	RepairNotes    string            `json:"repair_notes"`
}

type InspectionService interface {
	Create(ctx context.Context, actor *domain.User, input CreateInspectionInput) (*domain.InspectionResult, error)
	Get(ctx context.Context, id uint) (*domain.InspectionResult, error)
	List(ctx context.Context, filter insprepo.ListFilter, skip, limit int) ([]*domain.InspectionResult, error)
	Update(ctx context.Context, id uint, input UpdateInspectionInput) (*domain.InspectionResult, error)
	Delete(ctx context.Context, id uint) error

	AddDefectDetail(ctx context.Context, inspectionID uint, input CreateDefectDetailInput) (*domain.DefectDetail, error)
	ListDefectDetails(ctx context.Context, inspectionID uint, skip, limit int) ([]*domain.DefectDetail, error)
	DeleteDefectDetail(ctx context.Context, inspectionID, detailID uint) error
}

type inspectionService struct {
	db         *gorm.DB
	log        *logger.Logger
	inspRepo   insprepo.InspectionRepo
	detailRepo insprepo.DefectDetailRepo
	batchRepo  batchrepo.BatchRepo
	dtRepo     dtrepo.DefectTypeRepo
}

func NewInspectionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	inspRepo insprepo.InspectionRepo,
	detailRepo insprepo.DefectDetailRepo,
	batchRepo batchrepo.BatchRepo,
	dtRepo dtrepo.DefectTypeRepo,
) InspectionService {
	serviceLog := baseLog.With("service", "InspectionService")
	return &inspectionService{
		db:         db,
		log:        serviceLog,
		inspRepo:   inspRepo,
		detailRepo: detailRepo,
		batchRepo:  batchRepo,
		dtRepo:     dtRepo,
	}
}

// Create records an inspection. When the payload names no inspector the
// acting user is recorded as the inspector.
func (is *inspectionService) Create(ctx context.Context, actor *domain.User, input CreateInspectionInput) (*domain.InspectionResult, error) {
	r := &domain.InspectionResult{
		BatchID:           input.BatchID,
		InspectionPointID: input.InspectionPointID,
		InspectorID:       input.InspectorID,
		InspectorName:     input.InspectorName,
		InspectionTime:    time.Now().UTC(),
		MeasurementData:   input.MeasurementData,
		IsDefectDetected:  input.IsDefectDetected,
		DefectCount:       input.DefectCount,
		OverallVerdict:    domain.VerdictConforms,
		Status:            domain.InspectionStatusProcessing,
		Notes:             input.Notes,
	}
	if input.InspectionTime != nil {
		r.InspectionTime = *input.InspectionTime
	}
	if input.OverallVerdict != "" {
		r.OverallVerdict = input.OverallVerdict
	}
	if input.Status != "" {
		r.Status = input.Status
	}
	if r.MeasurementData == nil {
		r.MeasurementData = datatypes.JSONMap{}
	}
	if r.InspectorID == nil && actor != nil {
		id := actor.ID
		r.InspectorID = &id
		if r.InspectorName == "" {
			r.InspectorName = actor.FullName
			if r.InspectorName == "" {
				r.InspectorName = actor.Username
			}
		}
	}

	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := is.batchRepo.GetByID(ctx, tx, input.BatchID)
		if err != nil {
			return err
		}
		if b == nil {
			return apierr.Validation("batch %d does not exist", input.BatchID)
		}
		_, err = is.inspRepo.Create(ctx, tx, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (is *inspectionService) Get(ctx context.Context, id uint) (*domain.InspectionResult, error) {
	r, err := is.inspRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apierr.NotFound("inspection result not found")
	}
	return r, nil
}

func (is *inspectionService) List(ctx context.Context, filter insprepo.ListFilter, skip, limit int) ([]*domain.InspectionResult, error) {
	return is.inspRepo.List(ctx, nil, filter, skip, limit)
}

func (is *inspectionService) Update(ctx context.Context, id uint, input UpdateInspectionInput) (*domain.InspectionResult, error) {
	updates := map[string]any{}
	if input.OverallVerdict != nil {
		updates["overall_verdict"] = *input.OverallVerdict
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := is.inspRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("inspection result not found")
		}
		if len(updates) == 0 {
			return nil
		}
		return is.inspRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return nil, err
	}
	return is.Get(ctx, id)
}

// Delete removes the inspection and its defect details in one transaction.
func (is *inspectionService) Delete(ctx context.Context, id uint) error {
	return is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := is.inspRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("inspection result not found")
		}
		if err := is.detailRepo.DeleteByInspection(ctx, tx, id); err != nil {
			return err
		}
		_, err = is.inspRepo.Delete(ctx, tx, id)
		return err
	})
}

func (is *inspectionService) AddDefectDetail(ctx context.Context, inspectionID uint, input CreateDefectDetailInput) (*domain.DefectDetail, error) {
	d := &domain.DefectDetail{
		InspectionResultID: inspectionID,
		DefectTypeID:       input.DefectTypeID,
		DefectLocation:     input.DefectLocation,
		Severity:           input.Severity,
		SizeMm:             input.SizeMm,
		ImagePath:          input.ImagePath,
		IsRepaired:         input.IsRepaired,
		RepairMethod:       input.RepairMethod,
		RepairDate:         input.RepairDate,
		RepairNotes:        input.RepairNotes,
	}

	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := is.inspRepo.GetByID(ctx, tx, inspectionID)
		if err != nil {
			return err
		}
		if r == nil {
			return apierr.NotFound("inspection result not found")
		}
		dt, err := is.dtRepo.GetByID(ctx, tx, input.DefectTypeID)
		if err != nil {
			return err
		}
		if dt == nil {
			return apierr.Validation("defect type %d does not exist", input.DefectTypeID)
		}
		_, err = is.detailRepo.Create(ctx, tx, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (is *inspectionService) ListDefectDetails(ctx context.Context, inspectionID uint, skip, limit int) ([]*domain.DefectDetail, error) {
	r, err := is.inspRepo.GetByID(ctx, nil, inspectionID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apierr.NotFound("inspection result not found")
	}
	return is.detailRepo.ListByInspection(ctx, nil, inspectionID, skip, limit)
}

func (is *inspectionService) DeleteDefectDetail(ctx context.Context, inspectionID, detailID uint) error {
	return is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := is.detailRepo.GetByID(ctx, tx, detailID)
		if err != nil {
			return err
		}
		if d == nil || d.InspectionResultID != inspectionID {
			return apierr.NotFound("defect detail not found")
		}
		_, err = is.detailRepo.Delete(ctx, tx, detailID)
		return err
	})
}
