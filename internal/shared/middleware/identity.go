package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/shared/apperror"
	"clinic-backend/internal/shared/response"
)

const (
	// UsernameHeader carries the acting user. It is trusted as-is.
	UsernameHeader = "X-Username"
	usernameKey    = "username"
)

// IdentityMiddleware rejects requests without the X-Username header and
// stores the acting username in the gin context.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.GetHeader(UsernameHeader))
		if username == "" {
			response.HandleError(c, apperror.Unauthorized("Missing required header: "+UsernameHeader))
			c.Abort()
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// ActingUsername returns the username stored by IdentityMiddleware.
func ActingUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
