package handler

import (
	"errors"

	"profile-sync/internal/pkg/response"
	"profile-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type skillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type normalizeSkillRequest struct {
	Name string `json:"name"`
}

type normalizeSkillResponse struct {
	BaseSkillID   uuid.UUID `json:"base_skill_id"`
	BaseSkillName string    `json:"base_skill_name"`
	DetailVariant string    `json:"detail_variant,omitempty"`
	Category      string    `json:"category"`
	Confidence    float64   `json:"confidence"`
	IsNewBase     bool      `json:"is_new_base"`
	IsNewVariant  bool      `json:"is_new_variant"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/normalize", h.Normalize)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	res := make([]skillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, skillResponse{ID: it.ID, Name: it.Name, Category: string(it.Category)})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Normalize(c fiber.Ctx) error {
	var req normalizeSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	ns, err := h.uc.NormalizeSkill(c.Context(), req.Name)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, normalizeSkillResponse{
		BaseSkillID:   ns.BaseSkillID,
		BaseSkillName: ns.BaseSkillName,
		DetailVariant: ns.DetailVariant,
		Category:      string(ns.Category),
		Confidence:    ns.Confidence,
		IsNewBase:     ns.IsNewBase,
		IsNewVariant:  ns.IsNewVariant,
	})
}
