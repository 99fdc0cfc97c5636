package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/pkg/response"
)

// Auth validates the Bearer token and stores user_id/role in the context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c, jwt)
		if !ok {
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth sets user_id/role when a valid token is present but never
// rejects the request. Day views use it to mark the caller's own slots.
func OptionalAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			if claims, err := jwt.ValidateToken(tokenStr); err == nil {
				c.Set("user_id", claims.UserID)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwt *jwtsvc.Service) (*jwtsvc.Claims, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		abortUnauthorized(c, "Missing Authorization header")
		return nil, false
	}
	if !strings.HasPrefix(h, "Bearer ") {
		abortUnauthorized(c, "Invalid Authorization header")
		return nil, false
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		abortUnauthorized(c, "Empty token")
		return nil, false
	}

	claims, err := jwt.ValidateToken(tokenStr)
	if err != nil {
		abortUnauthorized(c, "Invalid token")
		return nil, false
	}
	return claims, true
}

// UserID returns the authenticated user's id from the context, or 0 when
// the request is anonymous.
func UserID(c *gin.Context) int64 {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// Role returns the authenticated user's role, or "" for anonymous calls.
func Role(c *gin.Context) string {
	v, ok := c.Get("role")
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}

func abortUnauthorized(c *gin.Context, msg string) {
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", msg)
	c.Abort()
}
