package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// report is the JSON body of the probe endpoints.
type report struct {
	Status  string    `json:"status"`
	Store   string    `json:"store,omitempty"`
	Checked time.Time `json:"checked_at"`
	Problem string    `json:"problem,omitempty"`
}

type Handler struct {
	store   Pinger
	metrics http.Handler
}

func NewHandler(store Pinger, metrics http.Handler) *Handler {
	return &Handler{
		store:   store,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.LivenessCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(h.metrics))
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, report{Status: "UP", Checked: time.Now().UTC()})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	r := report{Status: "UP", Store: "reachable", Checked: time.Now().UTC()}
	if err := h.store.Ping(ctx); err != nil {
		r.Status, r.Store, r.Problem = "DOWN", "unreachable", "database connection failed"
		c.JSON(http.StatusServiceUnavailable, r)
		return
	}
	c.JSON(http.StatusOK, r)
}
