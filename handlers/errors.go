package handlers

import (
	"net/http"

	"auditorium/middleware"
	"auditorium/models"
	"auditorium/services/errs"
	"auditorium/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a service error kind to an HTTP status code.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindAuthorization:
		return http.StatusForbidden
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	case errs.KindDependency:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": ...}. Internal details of dependency and
// unknown failures are logged, not returned.
func respondError(c *gin.Context, err error, action string) {
	status := statusFor(err)
	logger := getLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error(action+" failed", zap.Error(err))
		msg := "Internal server error"
		if status == http.StatusBadGateway {
			msg = "A backing service is unavailable, please try again"
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Debug(action+" rejected", zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

// actor reads the authenticated caller or aborts with 401.
func actor(c *gin.Context) (models.Actor, bool) {
	a, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return a, ok
}

func badRequest(c *gin.Context, msg string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	utils.JSONError(c, http.StatusBadRequest, msg, details)
}
