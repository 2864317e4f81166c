package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type DefectTypeHandler struct {
	dtService services.DefectTypeService
}

func NewDefectTypeHandler(dtService services.DefectTypeService) *DefectTypeHandler {
	return &DefectTypeHandler{dtService: dtService}
}

// POST /defect-types
func (dh *DefectTypeHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !services.CanEditDefectTypes(actor) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	var req services.CreateDefectTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	dt, err := dh.dtService.Create(c.Request.Context(), actor.ID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, dt)
}

// GET /defect-types
func (dh *DefectTypeHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	types, err := dh.dtService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, types)
}

// GET /defect-types/:id
func (dh *DefectTypeHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	dt, err := dh.dtService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, dt)
}

// PUT /defect-types/:id
func (dh *DefectTypeHandler) Update(c *gin.Context) {
	if !services.CanEditDefectTypes(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateDefectTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	dt, err := dh.dtService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, dt)
}

// DELETE /defect-types/:id
func (dh *DefectTypeHandler) Delete(c *gin.Context) {
	if !services.CanDeleteDefectTypes(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := dh.dtService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
