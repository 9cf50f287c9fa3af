package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propflow/backend/internal/interfaces/http/dto"
)

// DefaultMaxBodyBytes caps request bodies at 1 MiB. Application payloads
// are small fixed-shape JSON documents, so anything larger is noise.
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit returns a middleware that rejects request bodies above maxBytes.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Request body exceeds maximum allowed size"))
			return
		}

		// Wrap the body with a limited reader for streaming requests
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
