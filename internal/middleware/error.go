package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/ehospital/internal/handler"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

// ErrorHandler logs the errors a page attached with c.Error once the page
// has been written. Pages render their own error responses, so only the
// log entry is produced here.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		l := zerolog.Ctx(c.Request.Context())
		for _, e := range c.Errors {
			ev := l.Warn()
			if apperrors.StatusOf(e.Err) >= 500 {
				ev = l.Error()
			}
			if s := handler.CurrentSession(c); s != nil {
				ev = ev.Int64("user_id", s.UserID).Str("role", s.Role.String())
			}
			ev.Err(e.Err).
				Str("route", c.FullPath()).
				Int("status", c.Writer.Status()).
				Msg("page failed")
		}
	}
}
