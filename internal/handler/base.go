package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

const (
	contextSession = "session"
	contextFlashes = "flashes"

	flashCookie = "ehospital_flash"

	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func SetSession(c *gin.Context, s *model.Session) {
	c.Set(contextSession, s)
}

// CurrentSession returns the verified session or nil for anonymous requests.
func CurrentSession(c *gin.Context) *model.Session {
	if v, ok := c.Get(contextSession); ok {
		if s, ok := v.(*model.Session); ok {
			return s
		}
	}
	return nil
}

func SetSessionCookie(c *gin.Context, cfg CookieConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}

func ClearSessionCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, "", -1, "/", "", cfg.Secure, true)
}

// AddFlash queues a message for this response. Redirect carries queued
// messages to the next request; Render shows them immediately.
func AddFlash(c *gin.Context, category, message string) {
	flashes := pendingFlashes(c)
	c.Set(contextFlashes, append(flashes, Flash{Category: category, Message: message}))
}

// Redirect queues a flash and answers with 302 to path.
func Redirect(c *gin.Context, path, category, message string) {
	if message != "" {
		AddFlash(c, category, message)
	}
	if flashes := append(cookieFlashes(c), pendingFlashes(c)...); len(flashes) > 0 {
		if raw, err := json.Marshal(flashes); err == nil {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 0, "/", "", false, true)
		}
	}
	c.Redirect(http.StatusFound, path)
}

// Render executes the named page with the session and pending flashes added
// to data.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = CurrentSession(c)
	data["Flashes"] = takeFlashes(c)
	c.HTML(status, name, data)
}

// RenderError shows the error page with the status carried by err. Errors
// without a status are logged and shown as a generic 500. Values rejected
// by the store for their column length are a 400.
func RenderError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrTooLong) {
		err = apperrors.BadRequest("A submitted value is too long", err)
	}
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Render(c, status, "error.html", gin.H{
		"Status":  status,
		"Message": apperrors.MessageOf(err),
	})
}

// Bind decodes the submitted form into obj. Validation failures become a
// 400 naming the first offending field.
func Bind(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperrors.BadRequest(fieldMessage(verrs[0]), err)
		}
		return apperrors.BadRequest("Invalid form submission", err)
	}
	return nil
}

// ParamID reads a positive integer path parameter; anything else is a 404.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NotFound("page", err)
	}
	return id, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(contextFlashes); ok {
		if f, ok := v.([]Flash); ok {
			return f
		}
	}
	return nil
}

// takeFlashes returns the flashes carried over from the previous response
// followed by those queued on this one, and clears the carrier cookie.
func takeFlashes(c *gin.Context) []Flash {
	flashes := cookieFlashes(c)
	if flashes != nil {
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	flashes = append(flashes, pendingFlashes(c)...)
	c.Set(contextFlashes, []Flash(nil))
	return flashes
}

func cookieFlashes(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return []Flash{}
	}
	var flashes []Flash
	if err := json.Unmarshal(b, &flashes); err != nil || flashes == nil {
		return []Flash{}
	}
	return flashes
}
