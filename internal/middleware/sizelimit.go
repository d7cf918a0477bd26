package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ehospital/internal/handler"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

// DefaultMaxBodySize bounds form submissions.
const DefaultMaxBodySize int64 = 1 << 20

// SizeLimit rejects bodies larger than maxBytes and caps the reader for
// requests that do not declare a length.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			handler.RenderError(c, &apperrors.AppError{
				Code:    apperrors.ErrPayloadTooLarge,
				Message: fmt.Sprintf("Request body exceeds %d bytes", maxBytes),
			})
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
