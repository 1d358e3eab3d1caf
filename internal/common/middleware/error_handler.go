package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "cantine-backend/internal/common/errors"
	"cantine-backend/internal/common/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from panics and renders them as typed errors.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := apperrors.New(apperrors.ErrCodeInternal, "Internal server error").
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		RespondError(c, appErr)
	})
}

// RespondError writes an error response in the common envelope, mapping
// typed errors to their HTTP status and hiding everything else behind 500.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"code":    apperrors.ErrCodeInternal,
		"message": "Internal server error",
	}})
}
