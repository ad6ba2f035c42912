package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/umg-robotica/pistas-backend/internal/services"
)

// UsernameKey is the gin context key holding the authenticated username.
const UsernameKey = "username"

// AuthMiddleware verifies the bearer token and places its subject in the
// context so handlers can attribute audit entries to the acting
// administrator.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header must be a bearer token")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		username, err := authService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "token inválido o expirado")
			return
		}

		c.Set(UsernameKey, username)
		c.Next()
	}
}

// GetUsername returns the authenticated username placed by AuthMiddleware,
// or "" on unauthenticated routes.
func GetUsername(c *gin.Context) string {
	if v, ok := c.Get(UsernameKey); ok {
		if username, ok := v.(string); ok {
			return username
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
		"data":    nil,
	})
}
