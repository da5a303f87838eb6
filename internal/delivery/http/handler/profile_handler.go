package handler

import (
	"errors"

	"profile-sync/internal/domain/profile"
	"profile-sync/internal/pkg/response"
	"profile-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ReconcileUsecase
}

type workExperienceFactRequest struct {
	Company      string   `json:"company"`
	JobTitle     string   `json:"job_title"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Achievements []string `json:"achievements"`
	Skills       []string `json:"skills"`
}

type educationFactRequest struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	Skills      []string `json:"skills"`
}

type reconcileRequest struct {
	WorkExperience []workExperienceFactRequest `json:"work_experience"`
	Education      []educationFactRequest      `json:"education"`
}

type reconcileResponse struct {
	usecase.ReconcileCounts
	EducationSkillsLinked int `json:"education_skills_linked"`
}

func NewProfileHandler(uc usecase.ReconcileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/users/:user_id/profile/reconcile", h.Reconcile)
}

func (h *ProfileHandler) Reconcile(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id", nil)
	}

	var req reconcileRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}
	if len(req.WorkExperience) == 0 && len(req.Education) == 0 {
		return response.Error(c, fiber.StatusBadRequest, "no facts provided", nil)
	}

	workFacts := make([]profile.WorkExperienceFact, 0, len(req.WorkExperience))
	for _, f := range req.WorkExperience {
		workFacts = append(workFacts, profile.WorkExperienceFact{
			Company:      f.Company,
			JobTitle:     f.JobTitle,
			StartDate:    f.StartDate,
			EndDate:      f.EndDate,
			Achievements: f.Achievements,
			Skills:       f.Skills,
		})
	}

	counts, err := h.uc.ReconcileWorkExperience(c.Context(), userID, workFacts)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	eduFacts := make([]profile.EducationFact, 0, len(req.Education))
	for _, f := range req.Education {
		eduFacts = append(eduFacts, profile.EducationFact{
			Institution: f.Institution,
			Degree:      f.Degree,
			Field:       f.Field,
			Skills:      f.Skills,
		})
	}

	eduLinked := 0
	if len(eduFacts) > 0 {
		eduLinked, err = h.uc.ReconcileEducation(c.Context(), userID, eduFacts)
		if err != nil {
			return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, reconcileResponse{
		ReconcileCounts:       counts,
		EducationSkillsLinked: eduLinked,
	})
}
