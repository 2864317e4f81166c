package handlers

import (
	"github.com/gin-gonic/gin"

	batchrepo "github.com/yungbote/metalqc-backend/internal/data/repos/batch"
	"github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type BatchHandler struct {
	batchService services.BatchService
}

func NewBatchHandler(batchService services.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// POST /batches
func (bh *BatchHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !services.CanWriteBatches(actor) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	var req services.CreateBatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	b, err := bh.batchService.Create(c.Request.Context(), actor.ID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, b)
}

// GET /batches?status=&product_type_id=&skip=&limit=
func (bh *BatchHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	filter := batchrepo.ListFilter{
		Status:        c.Query("status"),
		ProductTypeID: uintQuery(c, "product_type_id"),
	}
	batches, err := bh.batchService.List(c.Request.Context(), filter, skip, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, batches)
}

// GET /batches/:id
func (bh *BatchHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	b, err := bh.batchService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, b)
}

// PUT /batches/:id
func (bh *BatchHandler) Update(c *gin.Context) {
	if !services.CanWriteBatches(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateBatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	b, err := bh.batchService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, b)
}

// DELETE /batches/:id
func (bh *BatchHandler) Delete(c *gin.Context) {
	if !services.CanDeleteBatches(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := bh.batchService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
