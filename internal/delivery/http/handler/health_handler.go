package handler

import (
	"context"
	"time"

	"profile-sync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"database": "ok", "cache": "ok"}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			status["database"] = "unavailable"
			healthy = false
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			// Cache is best-effort; report but stay healthy.
			status["cache"] = "unavailable"
		}
	}

	if !healthy {
		return response.Error(c, fiber.StatusServiceUnavailable, "degraded", status)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
