package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Batch status values are enumerated by convention, not constrained.
const (
	BatchStatusInProduction = "in_production"
)

type ProductionBatch struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	BatchNumber       string             `gorm:"uniqueIndex;size:100;not null" json:"batch_number"`
	ProductTypeID     uint               `gorm:"not null;index" json:"product_type_id"`
	ProductType       *ProductType       `gorm:"foreignKey:ProductTypeID;references:ID;constraint:OnDelete:RESTRICT" json:"product_type,omitempty"`
	ProductionDate    time.Time          `gorm:"not null" json:"production_date"`
	FurnaceNumber     string             `gorm:"size:50" json:"furnace_number"`
	ShiftNumber       *int               `json:"shift_number"`
	TotalWeightKg     *float64           `json:"total_weight_kg"`
	TotalLengthM      *float64           `json:"total_length_m"`
	Status            string             `gorm:"size:50;not null;default:in_production" json:"status"`
	QualityRating     *int               `json:"quality_rating"`
	Metadata          datatypes.JSONMap  `json:"metadata"`
	CreatedBy         *uint              `json:"created_by"`
	Creator           *User              `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`
	InspectionResults []InspectionResult `gorm:"foreignKey:BatchID;references:ID" json:"-"`
	CreatedAt         time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"not null" json:"updated_at"`
}

func (ProductionBatch) TableName() string { return "production_batches" }
