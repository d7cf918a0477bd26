package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New("ehospital")
	b := New("ehospital")

	a.LoginAttempts.WithLabelValues("success").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.LoginAttempts.WithLabelValues("success")))
}

func TestHandler_Exposition(t *testing.T) {
	m := New("ehospital")
	m.RequestTotal.WithLabelValues("GET", "/login", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ehospital_http_requests_total{method="GET",route="/login",status="200"} 1`)
}
