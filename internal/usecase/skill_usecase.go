package usecase

import (
	"context"
	"strings"

	"profile-sync/internal/domain/skill"
	"profile-sync/internal/normalizer"
	"profile-sync/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SkillItem struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Category skill.Category `json:"category"`
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	NormalizeSkill(ctx context.Context, name string) (normalizer.NormalizedSkill, error)
}

type Skill struct {
	repo       repository.SkillRepository
	normalizer *normalizer.Normalizer
	logger     *zap.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, norm *normalizer.Normalizer, logger *zap.Logger) *Skill {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Skill{repo: repo, normalizer: norm, logger: logger}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		u.logger.Error("list skills failed", zap.Error(err))
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name, Category: it.Category})
	}
	return out, nil
}

func (u *Skill) NormalizeSkill(ctx context.Context, name string) (normalizer.NormalizedSkill, error) {
	if strings.TrimSpace(name) == "" {
		return normalizer.NormalizedSkill{}, ErrInvalidInput
	}

	ns, err := u.normalizer.Normalize(ctx, name, skill.CategoryOther)
	if err != nil {
		u.logger.Error("normalize skill failed", zap.String("name", name), zap.Error(err))
		return normalizer.NormalizedSkill{}, ErrInternal
	}
	return ns, nil
}
