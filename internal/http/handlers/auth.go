package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/metalqc-backend/internal/http/middleware"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /auth/token
// Accepts form-encoded username/password, the shape OAuth2 password clients
// send. JSON bodies bind too.
func (ah *AuthHandler) Token(c *gin.Context) {
	var req struct {
		Username string `form:"username" json:"username"`
		Password string `form:"password" json:"password"`
	}
	if err := c.ShouldBind(&req); err != nil || req.Username == "" || req.Password == "" {
		response.RespondError(c, apierr.Validation("username and password are required"))
		return
	}

	token, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// GET /auth/me
func (ah *AuthHandler) Me(c *gin.Context) {
	response.RespondOK(c, middleware.CurrentUser(c))
}
