package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context ключи для gin.Context.
const (
	ContextRequestIDKey = "requestID"

	HeaderRequestID = "X-Request-ID"
)

// RequestID назначает запросу идентификатор. Входящий X-Request-ID принимается,
// только если это валидный UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(ContextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
