package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/http/response"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
	"github.com/yungbote/metalqc-backend/internal/services"
)

const currentUserKey = "current_user"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(baseLog *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLog := baseLog.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog, authService: authService}
}

// RequireAuth verifies the bearer token and loads the current user (with
// role) into the gin context. Every failure is a 401 with WWW-Authenticate.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			response.AbortError(c, apierr.Unauthenticated("not authenticated"))
			return
		}
		claims, err := am.authService.VerifyToken(tokenString)
		if err != nil {
			response.AbortError(c, err)
			return
		}
		user, err := am.authService.ResolveUser(c.Request.Context(), claims)
		if err != nil {
			response.AbortError(c, err)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// CurrentUser returns the user attached by RequireAuth, nil on public routes.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
