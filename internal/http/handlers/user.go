package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// POST /users
func (uh *UserHandler) Create(c *gin.Context) {
	if !services.CanManageUsers(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	var req services.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	user, err := uh.userService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, user)
}

// GET /users
func (uh *UserHandler) List(c *gin.Context) {
	if !services.CanManageUsers(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	skip, limit := pagination(c)
	users, err := uh.userService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, users)
}

// GET /users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if !services.CanViewUser(middleware.CurrentUser(c), id) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	user, err := uh.userService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// PUT /users/:id
func (uh *UserHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	actor := middleware.CurrentUser(c)
	if !services.CanModifyUser(actor, id) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	var req services.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	// Only admins may reassign roles or flip activation, even on their
	// own account.
	if (req.RoleID != nil || req.IsActive != nil) && !services.CanManageUsers(actor) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	user, err := uh.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// DELETE /users/:id
func (uh *UserHandler) Delete(c *gin.Context) {
	if !services.CanDeleteUsers(middleware.CurrentUser(c)) {
		response.RespondError(c, apierr.Forbidden("not enough permissions"))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
