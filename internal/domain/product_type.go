package domain

import (
	"time"
)

type ProductType struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TypeCode       string    `gorm:"uniqueIndex;size:50;not null" json:"type_code"`
	TypeName       string    `gorm:"size:200;not null" json:"type_name"`
	Standard       string    `gorm:"size:100" json:"standard"`
	ThicknessRange string    `gorm:"size:100" json:"thickness_range"`
	WidthRange     string    `gorm:"size:100" json:"width_range"`
	MaterialGrade  string    `gorm:"size:100" json:"material_grade"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedBy      *uint     `json:"created_by"`
	Creator        *User     `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductType) TableName() string { return "product_types" }
