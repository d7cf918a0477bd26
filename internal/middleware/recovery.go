package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/ehospital/internal/handler"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

// Recovery turns a panicking page into the 500 error page. If the page had
// already started writing, the connection is just aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			zerolog.Ctx(c.Request.Context()).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("route", c.FullPath()).
				Msg("page panicked")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			handler.RenderError(c, apperrors.Internal(fmt.Errorf("panic: %v", rec)))
			c.Abort()
		}()
		c.Next()
	}
}
