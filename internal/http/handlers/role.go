package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type RoleHandler struct {
	roleService services.RoleService
}

func NewRoleHandler(roleService services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (rh *RoleHandler) requireAdmin(c *gin.Context) bool {
	if !services.CanManageRoles(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return false
	}
	return true
}

// POST /roles
func (rh *RoleHandler) Create(c *gin.Context) {
	if !rh.requireAdmin(c) {
		return
	}
	var req services.CreateRoleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	role, err := rh.roleService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, role)
}

// GET /roles
func (rh *RoleHandler) List(c *gin.Context) {
	if !rh.requireAdmin(c) {
		return
	}
	skip, limit := pagination(c)
	roles, err := rh.roleService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, roles)
}

// GET /roles/:id
func (rh *RoleHandler) Get(c *gin.Context) {
	if !rh.requireAdmin(c) {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	role, err := rh.roleService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, role)
}

// PUT /roles/:id
func (rh *RoleHandler) Update(c *gin.Context) {
	if !rh.requireAdmin(c) {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateRoleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	role, err := rh.roleService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, role)
}

// DELETE /roles/:id
func (rh *RoleHandler) Delete(c *gin.Context) {
	if !rh.requireAdmin(c) {
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := rh.roleService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
