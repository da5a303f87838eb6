package normalizer

import (
	"context"
	"strings"
	"time"

	"profile-sync/internal/domain/skill"
	"profile-sync/internal/repository"
	"profile-sync/internal/taxonomy"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memSkillRepo struct {
	skills  map[uuid.UUID]skill.Skill
	aliases *memAliasRepo
}

func newMemSkillRepo(aliases *memAliasRepo) *memSkillRepo {
	return &memSkillRepo{skills: make(map[uuid.UUID]skill.Skill), aliases: aliases}
}

func (m *memSkillRepo) FindByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	if s, ok := m.skills[id]; ok {
		return s, nil
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

func (m *memSkillRepo) FindByNameOrAlias(_ context.Context, name string) (skill.Skill, error) {
	for _, s := range m.skills {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	for _, a := range m.aliases.entries {
		if strings.EqualFold(a.Alias, name) {
			if s, ok := m.skills[a.SkillID]; ok {
				return s, nil
			}
		}
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

func (m *memSkillRepo) Create(_ context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now().UTC()
	m.skills[s.ID] = s
	return s, nil
}

func (m *memSkillRepo) List(_ context.Context) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0, len(m.skills))
	for _, s := range m.skills {
		out = append(out, s)
	}
	return out, nil
}

type memAliasRepo struct {
	entries []skill.Alias
}

func (m *memAliasRepo) FindByAlias(_ context.Context, alias string) (skill.Alias, error) {
	for _, a := range m.entries {
		if strings.EqualFold(a.Alias, alias) {
			return a, nil
		}
	}
	return skill.Alias{}, repository.ErrAliasNotFound
}

func (m *memAliasRepo) Insert(_ context.Context, skillID uuid.UUID, alias string) (bool, error) {
	for _, a := range m.entries {
		if strings.EqualFold(a.Alias, alias) {
			return false, nil
		}
	}
	m.entries = append(m.entries, skill.Alias{ID: uuid.New(), SkillID: skillID, Alias: alias})
	return true, nil
}

func (m *memAliasRepo) ListBySkill(_ context.Context, skillID uuid.UUID) ([]skill.Alias, error) {
	out := make([]skill.Alias, 0)
	for _, a := range m.entries {
		if a.SkillID == skillID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestTaxonomy(skills *memSkillRepo, aliases *memAliasRepo) *taxonomy.Taxonomy {
	return taxonomy.New(skills, aliases, nil, 0, zap.NewNop())
}
