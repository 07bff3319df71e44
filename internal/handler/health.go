package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/go-catalog/internal/middleware"
	"github.com/deppfellow/go-catalog/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth pings the configured dependencies (database, redis).
//
// It returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()
	cfg := h.server.Config.Observability.HealthChecks

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	pings := map[string]func(ctx context.Context) error{}
	if h.server.DB != nil {
		pings["database"] = h.server.DB.Pool.Ping
	}
	if h.server.Redis != nil {
		pings["redis"] = func(ctx context.Context) error { return h.server.Redis.Ping(ctx).Err() }
	}

	if cfg.Enabled {
		for name, ping := range pings {
			if !slices.Contains(cfg.Checks, name) {
				continue
			}

			result := h.runCheck(c.Request().Context(), name, ping, cfg.Timeout)
			response.Checks[name] = result

			if result.Status != "healthy" {
				response.Status = "unhealthy"
				logger.Error().Str("check", name).Str("error", result.Error).Msg("health check failed")
			}
		}
	}

	if response.Status != "healthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(ctx context.Context, name string, ping func(context.Context) error, timeout time.Duration) checkResult {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err == nil {
		return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
	}

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":       name,
			"operation":        "health_check",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}
