package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type InspectionPointHandler struct {
	pointService services.InspectionPointService
}

func NewInspectionPointHandler(pointService services.InspectionPointService) *InspectionPointHandler {
	return &InspectionPointHandler{pointService: pointService}
}

// POST /inspection-points
func (ph *InspectionPointHandler) Create(c *gin.Context) {
	if !services.CanEditInspectionPoints(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	var req services.CreateInspectionPointInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	p, err := ph.pointService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, p)
}

// GET /inspection-points
func (ph *InspectionPointHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	points, err := ph.pointService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, points)
}

// GET /inspection-points/:id
func (ph *InspectionPointHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	p, err := ph.pointService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// PUT /inspection-points/:id
func (ph *InspectionPointHandler) Update(c *gin.Context) {
	if !services.CanEditInspectionPoints(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateInspectionPointInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	p, err := ph.pointService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// DELETE /inspection-points/:id
func (ph *InspectionPointHandler) Delete(c *gin.Context) {
	if !services.CanDeleteInspectionPoints(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := ph.pointService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
