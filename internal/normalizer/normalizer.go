package normalizer

import (
	"context"
	"strings"

	"profile-sync/internal/domain/skill"
	"profile-sync/internal/taxonomy"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NormalizedSkill is the result of resolving one raw skill string against
// the canonical taxonomy.
type NormalizedSkill struct {
	BaseSkillID   uuid.UUID
	BaseSkillName string
	DetailVariant string
	Category      skill.Category
	Confidence    float64
	IsNewBase     bool
	IsNewVariant  bool
}

// Normalizer parses raw skill strings and resolves them to canonical taxonomy
// entries, creating base skills and detail-variant aliases lazily.
type Normalizer struct {
	taxonomy *taxonomy.Taxonomy
	logger   *zap.Logger
}

func New(tax *taxonomy.Taxonomy, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{taxonomy: tax, logger: logger}
}

// Normalize resolves one raw skill string. It never fails on malformed
// input: at worst the raw string becomes its own base skill.
func (n *Normalizer) Normalize(ctx context.Context, rawName string, defaultCategory skill.Category) (NormalizedSkill, error) {
	results, err := n.NormalizeMany(ctx, []string{rawName}, defaultCategory)
	if err != nil {
		return NormalizedSkill{}, err
	}
	return results[0], nil
}

// NormalizeMany resolves a batch. Raw strings are grouped by parsed base
// before touching storage, so N variants of one base incur exactly one
// taxonomy read/create plus up to N alias writes. Results are returned in
// input order; blank entries are skipped (zero-value result).
func (n *Normalizer) NormalizeMany(ctx context.Context, rawNames []string, defaultCategory skill.Category) ([]NormalizedSkill, error) {
	results := make([]NormalizedSkill, len(rawNames))

	type baseGroup struct {
		resolved  skill.Skill
		isNewBase bool
		done      bool
	}
	groups := make(map[string]*baseGroup)

	for i, raw := range rawNames {
		parsed := parse(raw)
		base := strings.TrimSpace(parsed.base)
		if base == "" {
			continue
		}

		key := strings.ToLower(base)
		group, ok := groups[key]
		if !ok {
			group = &baseGroup{}
			groups[key] = group
		}

		if !group.done {
			resolved, isNew, err := n.resolveBase(ctx, base, parsed.category, defaultCategory)
			if err != nil {
				return nil, err
			}
			group.resolved = resolved
			group.isNewBase = isNew
			group.done = true
		}

		result := NormalizedSkill{
			BaseSkillID:   group.resolved.ID,
			BaseSkillName: group.resolved.Name,
			DetailVariant: parsed.detail,
			Category:      group.resolved.Category,
			Confidence:    parsed.confidence,
			IsNewBase:     group.isNewBase,
		}

		if parsed.detail != "" {
			variant := strings.TrimSpace(raw)
			created, err := n.taxonomy.AddAlias(ctx, group.resolved, variant)
			if err != nil {
				n.logger.Warn("detail variant alias not registered",
					zap.String("skill", group.resolved.Name),
					zap.String("variant", variant),
					zap.Error(err),
				)
			}
			result.IsNewVariant = created
		}

		results[i] = result
	}

	return results, nil
}

func (n *Normalizer) resolveBase(ctx context.Context, base string, patternCategory, defaultCategory skill.Category) (skill.Skill, bool, error) {
	existing, found, err := n.taxonomy.ResolveExisting(ctx, base)
	if err != nil {
		return skill.Skill{}, false, err
	}
	if found {
		return existing, false, nil
	}

	category := patternCategory
	if category == "" {
		category = n.taxonomy.CategoryFor(base)
	}
	if category == skill.CategoryOther && defaultCategory != "" {
		category = defaultCategory
	}

	created, err := n.taxonomy.CreateCanonical(ctx, base, category, nil)
	if err != nil {
		return skill.Skill{}, false, err
	}
	return created, true, nil
}
