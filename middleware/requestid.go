package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id, minted here when the caller
// did not send one.
const RequestIDHeader = "X-Request-ID"

// ContextRequestID is the gin context key the id is stored under.
const ContextRequestID = "request_id"

func RequestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(ContextRequestID, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}
