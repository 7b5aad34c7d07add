package handler

import (
	"context"
	"time"

	"exam-grader/internal/domain"
	"exam-grader/internal/dto"
	"exam-grader/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler reports whether the backing services are reachable
type HealthHandler struct {
	store domain.ExamResultRepository
	cache domain.Cache
}

// NewHealthHandler creates a HealthHandler. cache may be nil when caching is disabled.
func NewHealthHandler(store domain.ExamResultRepository, cache domain.Cache) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
}

// Health godoc
// @Summary Health check
// @Description Pings the result store and, if configured, the evaluation cache
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Checks: map[string]string{}}

	resp.Checks["store"] = h.check(ctx, "store", h.store.Ping)
	if h.cache != nil {
		resp.Checks["cache"] = h.check(ctx, "cache", h.cache.Ping)
	}

	for _, state := range resp.Checks {
		if state != "ok" {
			resp.Status = "degraded"
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
	}
	return c.JSON(resp)
}

func (h *HealthHandler) check(ctx context.Context, name string, ping func(context.Context) error) string {
	if err := ping(ctx); err != nil {
		logger.Get().Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
		return "unavailable"
	}
	return "ok"
}
