package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snapsite/snapsite-backend/pkg/helpers"
	"github.com/snapsite/snapsite-backend/pkg/response"
)

const CtxUserIDKey = "userID"

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth validates the bearer token and injects the user id into the
// Gin context. Requests without a valid token are rejected.
func RequireAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth resolves the user id when a valid bearer token is present but
// never rejects the request. Public-or-owned reads use it to widen what the
// caller can see.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.Parse(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}
