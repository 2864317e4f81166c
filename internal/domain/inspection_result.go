package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	VerdictConforms            = "conforms"
	InspectionStatusProcessing = "processing"
)

// InspectionResult carries verdict, defect flag and defect count as the
// inspector reported them; they are not derived from the DefectDetail rows.
type InspectionResult struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	BatchID           uint              `gorm:"not null;index" json:"batch_id"`
	Batch             *ProductionBatch  `gorm:"foreignKey:BatchID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	InspectionPointID *uint             `json:"inspection_point_id"`
	InspectionPoint   *InspectionPoint  `gorm:"foreignKey:InspectionPointID;references:ID" json:"inspection_point,omitempty"`
	InspectorID       *uint             `json:"inspector_id"`
	Inspector         *User             `gorm:"foreignKey:InspectorID;references:ID" json:"-"`
	InspectorName     string            `gorm:"size:200" json:"inspector_name"`
	InspectionTime    time.Time         `gorm:"not null" json:"inspection_time"`
	MeasurementData   datatypes.JSONMap `gorm:"not null" json:"measurement_data"`
	IsDefectDetected  bool              `gorm:"not null;default:false" json:"is_defect_detected"`
	DefectCount       int               `gorm:"not null;default:0" json:"defect_count"`
	OverallVerdict    string            `gorm:"size:50;not null;default:conforms" json:"overall_verdict"`
	Status            string            `gorm:"size:50;not null;default:processing" json:"status"`
	Notes             string            `gorm:"type:text" json:"notes"`
	DefectDetails     []DefectDetail    `gorm:"foreignKey:InspectionResultID;references:ID" json:"-"`
	CreatedAt         time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null" json:"updated_at"`
}

func (InspectionResult) TableName() string { return "inspection_results" }
