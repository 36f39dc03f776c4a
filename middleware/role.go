package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auditorium/utils"
)

// RequireRole lets the request through only when the authenticated role is one
// of roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(utils.CtxRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied for role " + role})
			return
		}
		c.Next()
	}
}
