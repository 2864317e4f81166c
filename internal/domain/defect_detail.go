package domain

import (
	"time"

	"gorm.io/datatypes"
)

type DefectDetail struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	InspectionResultID uint              `gorm:"not null;index" json:"inspection_result_id"`
	InspectionResult   *InspectionResult `gorm:"foreignKey:InspectionResultID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	DefectTypeID       uint              `gorm:"not null;index" json:"defect_type_id"`
	DefectType         *DefectType       `gorm:"foreignKey:DefectTypeID;references:ID" json:"defect_type,omitempty"`
	DefectLocation     datatypes.JSONMap `json:"defect_location"`
	Severity           *float64          `json:"severity"`
	SizeMm             *float64          `json:"size_mm"`
	ImagePath          string            `gorm:"size:500" json:"image_path"`
	IsRepaired         bool              `gorm:"not null;default:false" json:"is_repaired"`
	RepairMethod       string            `gorm:"size:200" json:"repair_method"`
	RepairDate         *time.Time        `json:"repair_date"`
	RepairNotes        string            `gorm:"type:text" json:"repair_notes"`
	CreatedAt          time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"not null" json:"updated_at"`
}

func (DefectDetail) TableName() string { return "defect_details" }
