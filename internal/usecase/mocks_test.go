package usecase

import (
	"context"
	"strings"
	"time"

	"profile-sync/internal/domain/profile"
	"profile-sync/internal/domain/skill"
	"profile-sync/internal/normalizer"
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

func newTestNormalizer() (*normalizer.Normalizer, *memSkillRepo) {
	aliases := &memAliasRepo{}
	skills := newMemSkillRepo(aliases)
	tax := taxonomy.New(skills, aliases, nil, 0, zap.NewNop())
	return normalizer.New(tax, zap.NewNop()), skills
}

type memWorkHistoryRepo struct {
	records      []profile.WorkHistoryRecord
	achievements map[uuid.UUID][]profile.WorkAchievement

	replaceCalls int
	failCreate   error
}

func newMemWorkHistoryRepo() *memWorkHistoryRepo {
	return &memWorkHistoryRepo{achievements: make(map[uuid.UUID][]profile.WorkAchievement)}
}

func (m *memWorkHistoryRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]profile.WorkHistoryRecord, error) {
	out := make([]profile.WorkHistoryRecord, 0)
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memWorkHistoryRepo) FindByID(_ context.Context, id uuid.UUID) (profile.WorkHistoryRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return profile.WorkHistoryRecord{}, repository.ErrWorkHistoryNotFound
}

func (m *memWorkHistoryRepo) ListAchievements(_ context.Context, workHistoryID uuid.UUID) ([]profile.WorkAchievement, error) {
	return m.achievements[workHistoryID], nil
}

func (m *memWorkHistoryRepo) CreateWithAchievements(_ context.Context, rec profile.WorkHistoryRecord, achievements []string) (profile.WorkHistoryRecord, error) {
	if m.failCreate != nil {
		return profile.WorkHistoryRecord{}, m.failCreate
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now().UTC()
	m.records = append(m.records, rec)
	m.setAchievements(rec.ID, achievements)
	return rec, nil
}

func (m *memWorkHistoryRepo) UpdateAndReplaceAchievements(_ context.Context, rec profile.WorkHistoryRecord, achievements []string) error {
	for i := range m.records {
		if m.records[i].ID == rec.ID {
			m.records[i] = rec
			m.setAchievements(rec.ID, achievements)
			return nil
		}
	}
	return repository.ErrWorkHistoryNotFound
}

func (m *memWorkHistoryRepo) ReplaceAchievements(_ context.Context, workHistoryID uuid.UUID, achievements []string) error {
	m.replaceCalls++
	m.setAchievements(workHistoryID, achievements)
	return nil
}

func (m *memWorkHistoryRepo) setAchievements(workHistoryID uuid.UUID, achievements []string) {
	out := make([]profile.WorkAchievement, 0, len(achievements))
	for _, text := range achievements {
		out = append(out, profile.WorkAchievement{
			ID:            uuid.New(),
			WorkHistoryID: workHistoryID,
			Description:   text,
			CreatedAt:     time.Now().UTC(),
		})
	}
	m.achievements[workHistoryID] = out
}

type memUserSkillRepo struct {
	assignments []skill.UserSkillAssignment
}

func (m *memUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.UserSkillAssignment, error) {
	out := make([]skill.UserSkillAssignment, 0)
	for _, a := range m.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memUserSkillRepo) FindByUserAndSkill(_ context.Context, userID, skillID uuid.UUID) (skill.UserSkillAssignment, error) {
	for _, a := range m.assignments {
		if a.UserID == userID && a.SkillID == skillID {
			return a, nil
		}
	}
	return skill.UserSkillAssignment{}, repository.ErrAssignmentNotFound
}

func (m *memUserSkillRepo) Create(_ context.Context, a skill.UserSkillAssignment) (skill.UserSkillAssignment, error) {
	for _, existing := range m.assignments {
		if existing.UserID == a.UserID && existing.SkillID == a.SkillID {
			return skill.UserSkillAssignment{}, repository.ErrAssignmentExists
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now().UTC()
	m.assignments = append(m.assignments, a)
	return a, nil
}

func (m *memUserSkillRepo) AttachWorkHistory(_ context.Context, assignmentID, workHistoryID uuid.UUID) error {
	for i := range m.assignments {
		if m.assignments[i].ID == assignmentID && m.assignments[i].WorkHistoryID == nil {
			id := workHistoryID
			m.assignments[i].WorkHistoryID = &id
			return nil
		}
	}
	return nil
}

type memKeyAchievementRepo struct {
	items []profile.KeyAchievement

	replaceCalls int
	lastReplace  []string
}

func (m *memKeyAchievementRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]profile.KeyAchievement, error) {
	out := make([]profile.KeyAchievement, 0)
	for _, a := range m.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memKeyAchievementRepo) Replace(_ context.Context, userID uuid.UUID, contents []string) error {
	m.replaceCalls++
	m.lastReplace = contents
	out := make([]profile.KeyAchievement, 0, len(contents))
	for _, c := range contents {
		out = append(out, profile.KeyAchievement{ID: uuid.New(), UserID: userID, Content: c, CreatedAt: time.Now().UTC()})
	}
	m.items = out
	return nil
}
