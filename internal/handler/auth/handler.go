package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/ehospital/internal/handler"
	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/service/auth"
	pkgauth "github.com/jwalitptl/ehospital/pkg/auth"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

// LoginRecorder counts login outcomes.
type LoginRecorder interface {
	LoginAttempt(outcome string)
}

type Handler struct {
	svc      *auth.Service
	sessions *pkgauth.SessionManager
	cookie   handler.CookieConfig
	logins   LoginRecorder
}

func NewHandler(svc *auth.Service, sessions *pkgauth.SessionManager, cookie handler.CookieConfig, logins LoginRecorder) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		cookie:   cookie,
		logins:   logins,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Home)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)
}

func (h *Handler) Home(c *gin.Context) {
	handler.Render(c, http.StatusOK, "home.html", gin.H{"Title": "Home"})
}

func (h *Handler) LoginPage(c *gin.Context) {
	handler.Render(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := handler.Bind(c, &req); err != nil {
		h.invalidCredentials(c)
		return
	}

	u, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.invalidCredentials(c)
			return
		}
		handler.RenderError(c, err)
		return
	}

	token, err := h.sessions.Issue(model.Session{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
	})
	if err != nil {
		handler.RenderError(c, apperrors.Internal(err))
		return
	}

	h.record("success")
	handler.SetSessionCookie(c, h.cookie, token)
	handler.Redirect(c, u.Role.DashboardPath(), handler.FlashSuccess, "Login successful")
}

func (h *Handler) invalidCredentials(c *gin.Context) {
	h.record("failure")
	handler.AddFlash(c, handler.FlashError, "Invalid credentials")
	handler.Render(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

func (h *Handler) RegisterPage(c *gin.Context) {
	handler.Render(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := handler.Bind(c, &req); err != nil {
		handler.RenderError(c, err)
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), &req); err != nil {
		if apperrors.StatusOf(err) == http.StatusConflict {
			handler.Redirect(c, "/register", handler.FlashError, apperrors.MessageOf(err))
			return
		}
		handler.RenderError(c, err)
		return
	}

	handler.Redirect(c, "/login", handler.FlashSuccess, "Registration successful. Please login.")
}

// Logout revokes the session token and clears the cookie. It is reachable
// without a session.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		h.sessions.Revoke(token)
	}
	if s := handler.CurrentSession(c); s != nil {
		log.Ctx(c.Request.Context()).Info().Int64("user_id", s.UserID).Msg("user logged out")
	}

	handler.ClearSessionCookie(c, h.cookie)
	handler.Redirect(c, "/", handler.FlashSuccess, "Logged out successfully")
}

func (h *Handler) record(outcome string) {
	if h.logins != nil {
		h.logins.LoginAttempt(outcome)
	}
}
