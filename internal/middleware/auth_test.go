package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ehospital/internal/handler"
	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/pkg/auth"
)

var testCookie = handler.CookieConfig{Name: "sid", TTL: time.Hour}

func newEngine(m *SessionMiddleware, gate gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Load())
	r.GET("/area", gate, func(c *gin.Context) {
		c.String(http.StatusOK, "hello %s", handler.CurrentSession(c).Username)
	})
	return r
}

func request(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/area", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionGates(t *testing.T) {
	revoked := auth.NewRevocationList(time.Minute)
	sessions := auth.NewSessionManager("secret", time.Hour, revoked)
	m := NewSessionMiddleware(sessions, testCookie)

	doctorToken, err := sessions.Issue(model.Session{UserID: 2, Username: "drbob", Role: model.RoleDoctor, Name: "Bob"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		gate     gin.HandlerFunc
		token    string
		status   int
		location string
	}{
		{"login gate anonymous", m.RequireLogin(), "", http.StatusFound, "/login"},
		{"login gate garbage token", m.RequireLogin(), "not-a-token", http.StatusFound, "/login"},
		{"login gate doctor", m.RequireLogin(), doctorToken, http.StatusOK, ""},
		{"doctor gate doctor", m.RequireDoctor(), doctorToken, http.StatusOK, ""},
		{"admin gate doctor", m.RequireAdmin(), doctorToken, http.StatusFound, "/"},
		{"patient gate doctor", m.RequirePatient(), doctorToken, http.StatusFound, "/"},
		{"admin gate anonymous", m.RequireAdmin(), "", http.StatusFound, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, newEngine(m, tt.gate), tt.token)
			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			} else {
				assert.Equal(t, "hello drbob", w.Body.String())
				assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestSessionGateRejectsRevokedToken(t *testing.T) {
	sessions := auth.NewSessionManager("secret", time.Hour, auth.NewRevocationList(time.Minute))
	m := NewSessionMiddleware(sessions, testCookie)
	r := newEngine(m, m.RequireLogin())

	token, err := sessions.Issue(model.Session{UserID: 1, Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, request(t, r, token).Code)

	sessions.Revoke(token)
	w := request(t, r, token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSessionGateRejectsForeignSignature(t *testing.T) {
	m := NewSessionMiddleware(auth.NewSessionManager("secret", time.Hour, nil), testCookie)
	other := auth.NewSessionManager("other-secret", time.Hour, nil)

	token, err := other.Issue(model.Session{UserID: 1, Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	w := request(t, newEngine(m, m.RequireAdmin()), token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
