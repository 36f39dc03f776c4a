package middleware

import (
	"net/http"
	"strings"

	"auditorium/models"
	"auditorium/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware verifies the bearer token's signature and expiry and only
// then stores the caller's id, role and department in the context.
func JWTAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			zap.L().Debug("rejected access token",
				zap.String("tokenHash", utils.HashToken(tokenString)[:12]),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(utils.CtxUserID, claims.Subject)
		c.Set(utils.CtxRole, claims.Role)
		c.Set(utils.CtxDepartment, claims.Department)
		c.Next()
	}
}

// ActorFromContext returns the identity stored by JWTAuthMiddleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	userID := c.GetString(utils.CtxUserID)
	role := c.GetString(utils.CtxRole)
	if userID == "" || role == "" {
		return models.Actor{}, false
	}
	return models.Actor{
		UserID:     userID,
		Role:       role,
		Department: c.GetString(utils.CtxDepartment),
	}, true
}
