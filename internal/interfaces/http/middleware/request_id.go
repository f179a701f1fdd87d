package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wanderlite.backend/pkg/logger"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware assigns a unique ID to each request, honoring an
// incoming X-Request-ID header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		// Mirror into the request context so logger.WithContext tags
		// every log line from this request.
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}
