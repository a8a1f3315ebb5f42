package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/routemanager/internal/pkg/auth"
	"github.com/polkiloo/routemanager/internal/server/http/dto"
)

const (
	// OperatorIDContextKey is a gin context key for the authenticated operator.
	OperatorIDContextKey = "operatorID"
	authCookieName       = "routemanager_token"
)

// TokenParser resolves a bearer token to an operator id.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// AuthRequired rejects requests without a valid operator token.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "missing token")
			return
		}

		operatorID, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abortUnauthorized(c, "invalid or expired token")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal", Message: "token check failed"})
			return
		}

		c.Set(OperatorIDContextKey, operatorID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: message})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
