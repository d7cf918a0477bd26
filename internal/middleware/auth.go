package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/ehospital/internal/handler"
	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/pkg/auth"
)

// SessionMiddleware reads the session cookie and guards role areas.
type SessionMiddleware struct {
	sessions *auth.SessionManager
	cookie   handler.CookieConfig
}

func NewSessionMiddleware(sessions *auth.SessionManager, cookie handler.CookieConfig) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cookie:   cookie,
	}
}

// Load verifies the session cookie, if any, and stores the session in the
// context. Invalid, expired or revoked tokens are dropped and the request
// continues anonymously.
func (m *SessionMiddleware) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, _, err := m.sessions.Verify(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ContextRequestID)).Msg("session cookie rejected")
			handler.ClearSessionCookie(c, m.cookie)
			c.Next()
			return
		}

		handler.SetSession(c, session)
		c.Next()
	}
}

// RequireLogin admits any authenticated user.
func (m *SessionMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler.CurrentSession(c) == nil {
			handler.Redirect(c, "/login", handler.FlashError, "Please login first")
			c.Abort()
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

func (m *SessionMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.requireRole(model.RoleAdmin, "Admin access required")
}

func (m *SessionMiddleware) RequireDoctor() gin.HandlerFunc {
	return m.requireRole(model.RoleDoctor, "Doctor access required")
}

func (m *SessionMiddleware) RequirePatient() gin.HandlerFunc {
	return m.requireRole(model.RolePatient, "Patient access required")
}

func (m *SessionMiddleware) requireRole(role model.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := handler.CurrentSession(c)
		if s == nil || s.Role != role {
			handler.Redirect(c, "/", handler.FlashError, message)
			c.Abort()
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
