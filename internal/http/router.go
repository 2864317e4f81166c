package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/metalqc-backend/internal/http/handlers"
	httpMW "github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log          *logger.Logger
	CORSOrigins  []string
	GinMode      string

	AuthHandler            *httpH.AuthHandler
	AuthMiddleware         *httpMW.AuthMiddleware
	UserHandler            *httpH.UserHandler
	RoleHandler            *httpH.RoleHandler
	ProductTypeHandler     *httpH.ProductTypeHandler
	BatchHandler           *httpH.BatchHandler
	InspectionHandler      *httpH.InspectionHandler
	InspectionPointHandler *httpH.InspectionPointHandler
	DefectTypeHandler      *httpH.DefectTypeHandler
	HealthHandler          *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.HealthCheck)
		}

		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/token", cfg.AuthHandler.Token)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.GET("/auth/me", cfg.AuthHandler.Me)
		}

		// Users
		if cfg.UserHandler != nil {
			protected.POST("/users", cfg.UserHandler.Create)
			protected.GET("/users", cfg.UserHandler.List)
			protected.GET("/users/:id", cfg.UserHandler.Get)
			protected.PUT("/users/:id", cfg.UserHandler.Update)
			protected.DELETE("/users/:id", cfg.UserHandler.Delete)
		}

		// Roles
		if cfg.RoleHandler != nil {
			protected.POST("/roles", cfg.RoleHandler.Create)
			protected.GET("/roles", cfg.RoleHandler.List)
			protected.GET("/roles/:id", cfg.RoleHandler.Get)
			protected.PUT("/roles/:id", cfg.RoleHandler.Update)
			protected.DELETE("/roles/:id", cfg.RoleHandler.Delete)
		}

		// Product types
		if cfg.ProductTypeHandler != nil {
			protected.POST("/product-types", cfg.ProductTypeHandler.Create)
			protected.GET("/product-types", cfg.ProductTypeHandler.List)
			protected.GET("/product-types/:id", cfg.ProductTypeHandler.Get)
			protected.PUT("/product-types/:id", cfg.ProductTypeHandler.Update)
			protected.DELETE("/product-types/:id", cfg.ProductTypeHandler.Delete)
		}

		// Production batches
		if cfg.BatchHandler != nil {
			protected.POST("/batches", cfg.BatchHandler.Create)
			protected.GET("/batches", cfg.BatchHandler.List)
			protected.GET("/batches/:id", cfg.BatchHandler.Get)
			protected.PUT("/batches/:id", cfg.BatchHandler.Update)
			protected.DELETE("/batches/:id", cfg.BatchHandler.Delete)
		}

		// Inspection results + nested defect details
		if cfg.InspectionHandler != nil {
			protected.POST("/inspections", cfg.InspectionHandler.Create)
			protected.GET("/inspections", cfg.InspectionHandler.List)
			protected.GET("/inspections/:id", cfg.InspectionHandler.Get)
			protected.PUT("/inspections/:id", cfg.InspectionHandler.Update)
			protected.DELETE("/inspections/:id", cfg.InspectionHandler.Delete)
			protected.POST("/inspections/:id/defects", cfg.InspectionHandler.AddDefect)
			protected.GET("/inspections/:id/defects", cfg.InspectionHandler.ListDefects)
			protected.DELETE("/inspections/:id/defects/:defect_id", cfg.InspectionHandler.DeleteDefect)
		}

		// Inspection points
		if cfg.InspectionPointHandler != nil {
			protected.POST("/inspection-points", cfg.InspectionPointHandler.Create)
			protected.GET("/inspection-points", cfg.InspectionPointHandler.List)
			protected.GET("/inspection-points/:id", cfg.InspectionPointHandler.Get)
			protected.PUT("/inspection-points/:id", cfg.InspectionPointHandler.Update)
			protected.DELETE("/inspection-points/:id", cfg.InspectionPointHandler.Delete)
		}

		// Defect types
		if cfg.DefectTypeHandler != nil {
			protected.POST("/defect-types", cfg.DefectTypeHandler.Create)
			protected.GET("/defect-types", cfg.DefectTypeHandler.List)
			protected.GET("/defect-types/:id", cfg.DefectTypeHandler.Get)
			protected.PUT("/defect-types/:id", cfg.DefectTypeHandler.Update)
			protected.DELETE("/defect-types/:id", cfg.DefectTypeHandler.Delete)
		}
	}

	return r
}
