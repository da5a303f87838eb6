package handler

import (
	"errors"
	"strings"

	"profile-sync/internal/pkg/response"
	"profile-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AchievementHandler struct {
	uc usecase.AchievementUsecase
}

func NewAchievementHandler(uc usecase.AchievementUsecase) *AchievementHandler {
	return &AchievementHandler{uc: uc}
}

func (h *AchievementHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/users/:user_id/achievements/deduplicate", h.DeduplicateKey)
	r.Post("/users/:user_id/work-history/:record_id/achievements/deduplicate", h.DeduplicateWork)
}

func (h *AchievementHandler) DeduplicateKey(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id", nil)
	}

	result, err := h.uc.DeduplicateKeyAchievements(c.Context(), userID, dryRunQuery(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func (h *AchievementHandler) DeduplicateWork(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id", nil)
	}
	recordID, err := uuid.Parse(c.Params("record_id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid record id", nil)
	}

	result, err := h.uc.DeduplicateWorkAchievements(c.Context(), userID, recordID, dryRunQuery(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func (h *AchievementHandler) mapError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	case errors.Is(err, usecase.ErrForbidden):
		return response.Error(c, fiber.StatusForbidden, response.MessageForbidden, nil)
	case errors.Is(err, usecase.ErrRecordNotFound):
		return response.Error(c, fiber.StatusNotFound, response.MessageNotFound, nil)
	default:
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}
}

func dryRunQuery(c fiber.Ctx) bool {
	switch strings.ToLower(c.Query("dry_run")) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
