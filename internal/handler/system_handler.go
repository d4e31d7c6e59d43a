package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/response"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger, e.g. a redis client's Ping(ctx).Err.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// SystemHandler reports process liveness and backing-service reachability.
type SystemHandler struct {
	db        Pinger
	cache     Pinger
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler builds the health handler. cache may be nil when no
// redis is configured.
func NewSystemHandler(db Pinger, cache Pinger, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		cache:     cache,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type healthStatus struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := healthStatus{
		Status:   "ok",
		Uptime:   time.Since(h.startTime).Truncate(time.Second).String(),
		Postgres: h.check(ctx, "postgres", h.db),
		Redis:    h.check(ctx, "redis", h.cache),
	}
	if status.Postgres == "down" || status.Redis == "down" {
		status.Status = "degraded"
		response.FailWithData(c, http.StatusServiceUnavailable, response.ErrServiceUnavailable, status)
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *SystemHandler) check(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Str("dependency", name).Msg("health check failed")
		return "down"
	}
	return "up"
}
