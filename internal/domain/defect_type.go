package domain

import (
	"time"
)

type DefectType struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	DefectCode      string    `gorm:"uniqueIndex;size:50;not null" json:"defect_code"`
	DefectName      string    `gorm:"size:200;not null" json:"defect_name"`
	Category        string    `gorm:"size:100" json:"category"`
	SeverityLevel   string    `gorm:"size:50" json:"severity_level"`
	Description     string    `gorm:"type:text" json:"description"`
	MeasurementUnit string    `gorm:"size:50" json:"measurement_unit"`
	ThresholdValue  *float64  `json:"threshold_value"`
	CreatedBy       *uint     `json:"created_by"`
	Creator         *User     `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (DefectType) TableName() string { return "defect_types" }
