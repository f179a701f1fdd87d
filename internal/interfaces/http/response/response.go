package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "wanderlite.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// SuccessWithWarning sends a 2xx payload, adding a warning field when a
// secondary step of the operation was absorbed rather than completed.
func SuccessWithWarning(c *gin.Context, status int, payload gin.H, warning string) {
	if warning != "" {
		payload["warning"] = warning
	}
	c.JSON(status, payload)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.FromError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithStatus sends an error response with an explicit status and code
func ErrorWithStatus(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
