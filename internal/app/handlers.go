package app

import (
	"github.com/yungbote/metalqc-backend/internal/data/db"
	"github.com/yungbote/metalqc-backend/internal/http/handlers"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type Handlers struct {
	Auth            *handlers.AuthHandler
	User            *handlers.UserHandler
	Role            *handlers.RoleHandler
	ProductType     *handlers.ProductTypeHandler
	Batch           *handlers.BatchHandler
	Inspection      *handlers.InspectionHandler
	InspectionPoint *handlers.InspectionPointHandler
	DefectType      *handlers.DefectTypeHandler
	Health          *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services, pg *db.PostgresService) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:            handlers.NewAuthHandler(services.Auth),
		User:            handlers.NewUserHandler(services.User),
		Role:            handlers.NewRoleHandler(services.Role),
		ProductType:     handlers.NewProductTypeHandler(services.ProductType),
		Batch:           handlers.NewBatchHandler(services.Batch),
		Inspection:      handlers.NewInspectionHandler(services.Inspection),
		InspectionPoint: handlers.NewInspectionPointHandler(services.InspectionPoint),
		DefectType:      handlers.NewDefectTypeHandler(services.DefectType),
		Health:          handlers.NewHealthHandler(pg),
	}
}
