package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
)

// AutoMigrateAll keeps the schema in sync. Order matters: referenced
// tables first so foreign keys resolve.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.ProductType{},
		&domain.ProductionBatch{},
		&domain.InspectionPoint{},
		&domain.InspectionResult{},
		&domain.DefectType{},
		&domain.DefectDetail{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
