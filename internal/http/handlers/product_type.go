package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type ProductTypeHandler struct {
	typeService services.ProductTypeService
}

func NewProductTypeHandler(typeService services.ProductTypeService) *ProductTypeHandler {
	return &ProductTypeHandler{typeService: typeService}
}

// POST /product-types
func (ph *ProductTypeHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !services.CanEditProductTypes(actor) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	var req services.CreateProductTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	pt, err := ph.typeService.Create(c.Request.Context(), actor.ID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, pt)
}

// GET /product-types
func (ph *ProductTypeHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	types, err := ph.typeService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, types)
}

// GET /product-types/:id
func (ph *ProductTypeHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	pt, err := ph.typeService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, pt)
}

// PUT /product-types/:id
func (ph *ProductTypeHandler) Update(c *gin.Context) {
	if !services.CanEditProductTypes(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateProductTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	pt, err := ph.typeService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, pt)
}

// DELETE /product-types/:id
func (ph *ProductTypeHandler) Delete(c *gin.Context) {
	if !services.CanDeleteProductTypes(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := ph.typeService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
