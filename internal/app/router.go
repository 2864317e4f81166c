package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/yungbote/metalqc-backend/internal/http"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		GinMode:     cfg.GinMode,

		AuthHandler:            handlers.Auth,
		AuthMiddleware:         middleware.Auth,
		UserHandler:            handlers.User,
		RoleHandler:            handlers.Role,
		ProductTypeHandler:     handlers.ProductType,
		BatchHandler:           handlers.Batch,
		InspectionHandler:      handlers.Inspection,
		InspectionPointHandler: handlers.InspectionPoint,
		DefectTypeHandler:      handlers.DefectType,
		HealthHandler:          handlers.Health,
	})
}
