package handlers

import (
	"github.com/gin-gonic/gin"

	insprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspection"
	"github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type InspectionHandler struct {
	inspService services.InspectionService
}

func NewInspectionHandler(inspService services.InspectionService) *InspectionHandler {
	return &InspectionHandler{inspService: inspService}
}

// POST /inspections
func (ih *InspectionHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !services.CanWriteInspections(actor) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	var req services.CreateInspectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	r, err := ih.inspService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, r)
}

// GET /inspections?batch_id=&verdict=&skip=&limit=
func (ih *InspectionHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	filter := insprepo.ListFilter{
		BatchID: uintQuery(c, "batch_id"),
		Verdict: c.Query("verdict"),
	}
	results, err := ih.inspService.List(c.Request.Context(), filter, skip, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, results)
}

// GET /inspections/:id
func (ih *InspectionHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	r, err := ih.inspService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, r)
}

// PUT /inspections/:id
func (ih *InspectionHandler) Update(c *gin.Context) {
	if !services.CanWriteInspections(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateInspectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	r, err := ih.inspService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, r)
}

// DELETE /inspections/:id
func (ih *InspectionHandler) Delete(c *gin.Context) {
	if !services.CanDeleteInspections(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := ih.inspService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /inspections/:id/defects
func (ih *InspectionHandler) AddDefect(c *gin.Context) {
	if !services.CanWriteInspections(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.CreateDefectDetailInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	d, err := ih.inspService.AddDefectDetail(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, d)
}

// GET /inspections/:id/defects
func (ih *InspectionHandler) ListDefects(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	skip, limit := pagination(c)
	details, err := ih.inspService.ListDefectDetails(c.Request.Context(), id, skip, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, details)
}

// DELETE /inspections/:id/defects/:defect_id
func (ih *InspectionHandler) DeleteDefect(c *gin.Context) {
	if !services.CanDeleteInspections(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	defectID, err := idParam(c, "defect_id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := ih.inspService.DeleteDefectDetail(c.Request.Context(), id, defectID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
