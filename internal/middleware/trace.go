package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecomart-chatbot/pkg/log"
)

// Trace puts a request id into the request context so every log line of the request carries it.
func (m Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(log.WithTraceID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
