package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/platform/logger"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type Services struct {
	Auth            services.AuthService
	User            services.UserService
	Role            services.RoleService
	ProductType     services.ProductTypeService
	Batch           services.BatchService
	Inspection      services.InspectionService
	DefectType      services.DefectTypeService
	InspectionPoint services.InspectionPointService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:            services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:            services.NewUserService(db, log, repos.User, repos.Role),
		Role:            services.NewRoleService(db, log, repos.Role, repos.User),
		ProductType:     services.NewProductTypeService(db, log, repos.ProductType, repos.Batch),
		Batch:           services.NewBatchService(db, log, repos.Batch, repos.ProductType, repos.Inspection, repos.DefectDetail),
		Inspection:      services.NewInspectionService(db, log, repos.Inspection, repos.DefectDetail, repos.Batch, repos.DefectType),
		DefectType:      services.NewDefectTypeService(db, log, repos.DefectType, repos.DefectDetail),
		InspectionPoint: services.NewInspectionPointService(db, log, repos.InspectionPoint),
	}
}
