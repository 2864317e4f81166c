package domain

import (
	"time"

	"gorm.io/datatypes"
)

type InspectionPoint struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	PointCode      string            `gorm:"uniqueIndex;size:50;not null" json:"point_code"`
	PointName      string            `gorm:"size:200;not null" json:"point_name"`
	Description    string            `gorm:"type:text" json:"description"`
	EquipmentType  string            `gorm:"size:100" json:"equipment_type"`
	LocationInLine string            `gorm:"size:100" json:"location_in_line"`
	Coordinates    datatypes.JSONMap `json:"coordinates"`
	CreatedAt      time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null" json:"updated_at"`
}

func (InspectionPoint) TableName() string { return "inspection_points" }
