package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"profile-sync/internal/domain/skill"
	"profile-sync/internal/repository"

	"go.uber.org/zap"
)

// Cache is an optional read-through cache for name resolution. The Redis
// implementation bypasses itself when the server is unreachable, so a nil or
// unavailable cache never blocks resolution.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Taxonomy is the process-wide canonical skill registry. Resolution is a
// read-or-create operation, which keeps the shared state append-mostly: the
// race between two callers creating the same novel base skill is accepted,
// since a duplicate canonical entry is a mergeable data-quality issue rather
// than a correctness violation.
type Taxonomy struct {
	skills  repository.SkillRepository
	aliases repository.SkillAliasRepository
	cache   Cache
	ttl     time.Duration
	logger  *zap.Logger
}

func New(skills repository.SkillRepository, aliases repository.SkillAliasRepository, cache Cache, ttl time.Duration, logger *zap.Logger) *Taxonomy {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Taxonomy{skills: skills, aliases: aliases, cache: cache, ttl: ttl, logger: logger}
}

// ResolveExisting looks a name up case-insensitively against canonical names
// and aliases. The boolean reports whether a skill was found.
func (t *Taxonomy) ResolveExisting(ctx context.Context, name string) (skill.Skill, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, false, nil
	}

	key := resolveCacheKey(name)
	if t.cache != nil {
		var cached skill.Skill
		if ok, err := t.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, true, nil
		}
	}

	s, err := t.skills.FindByNameOrAlias(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, false, nil
		}
		return skill.Skill{}, false, err
	}

	if t.cache != nil {
		if err := t.cache.SetJSON(ctx, key, s, t.ttl); err != nil {
			t.logger.Debug("taxonomy cache write failed", zap.String("name", name), zap.Error(err))
		}
	}
	return s, true, nil
}

// CreateCanonical registers a new base skill together with its seed aliases
// (the curated table plus any caller-supplied ones). A seed alias already
// owned by another skill is logged and skipped; wrong aliasing is a
// data-quality issue, not a system error.
func (t *Taxonomy) CreateCanonical(ctx context.Context, baseName string, category skill.Category, extraAliases []string) (skill.Skill, error) {
	baseName = strings.TrimSpace(baseName)
	if baseName == "" {
		return skill.Skill{}, fmt.Errorf("empty skill name")
	}
	if category == "" {
		category = skill.CategoryOther
	}

	created, err := t.skills.Create(ctx, skill.Skill{Name: baseName, Category: category})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost the resolve-or-create race; reuse the winner.
			existing, found, rerr := t.ResolveExisting(ctx, baseName)
			if rerr != nil {
				return skill.Skill{}, rerr
			}
			if found {
				return existing, nil
			}
		}
		return skill.Skill{}, err
	}

	t.logger.Info("canonical skill created",
		zap.String("name", created.Name),
		zap.String("category", string(created.Category)),
	)

	seeds := append([]string{}, SeedAliasesFor(baseName)...)
	seeds = append(seeds, extraAliases...)
	for _, alias := range seeds {
		if _, err := t.AddAlias(ctx, created, alias); err != nil {
			t.logger.Warn("seed alias not registered",
				zap.String("skill", created.Name),
				zap.String("alias", alias),
				zap.Error(err),
			)
		}
	}

	return created, nil
}

// AddAlias is idempotent: a no-op when the alias already points at the skill,
// a logged skip when it belongs to another skill. It reports whether a new
// alias row was written.
func (t *Taxonomy) AddAlias(ctx context.Context, s skill.Skill, aliasText string) (bool, error) {
	aliasText = strings.TrimSpace(aliasText)
	if aliasText == "" || strings.EqualFold(aliasText, s.Name) {
		return false, nil
	}

	inserted, err := t.aliases.Insert(ctx, s.ID, aliasText)
	if err != nil {
		return false, err
	}
	if inserted {
		return true, nil
	}

	existing, err := t.aliases.FindByAlias(ctx, aliasText)
	if err != nil {
		if errors.Is(err, repository.ErrAliasNotFound) {
			return false, nil
		}
		return false, err
	}
	if existing.SkillID != s.ID {
		t.logger.Warn("alias already owned by another skill",
			zap.String("alias", aliasText),
			zap.String("skill", s.Name),
			zap.String("owner_skill_id", existing.SkillID.String()),
		)
	}
	return false, nil
}

// CategoryFor classifies a raw skill name without touching storage.
func (t *Taxonomy) CategoryFor(name string) skill.Category {
	return Classify(name)
}

func resolveCacheKey(name string) string {
	return "taxonomy:resolve:" + strings.ToLower(strings.TrimSpace(name))
}
