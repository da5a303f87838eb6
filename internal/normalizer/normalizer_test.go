package normalizer

import (
	"context"
	"testing"

	"profile-sync/internal/domain/skill"

	"go.uber.org/zap"
)

func TestParse_Tiers(t *testing.T) {
	tests := []struct {
		raw        string
		wantBase   string
		wantDetail string
		wantConf   float64
	}{
		{"React (Native)", "React", "Native", confidenceTable},
		{"React.js (Hooks)", "React", "Hooks", confidenceTable},
		{"AWS (Lambda)", "AWS", "Lambda", confidenceTable},
		{"Photoshop (Retouching)", "Photoshop", "Retouching", confidenceTable},
		{"Terraform (Modules)", "Terraform", "Modules", confidenceParenthetical},
		{"Spanish - Conversational", "Spanish", "Conversational", confidenceSeparator},
		{"Public Speaking, Keynotes", "Public Speaking", "Keynotes", confidenceSeparator},
		{"Go", "Go", "", confidenceExact},
		{"  Kubernetes  ", "Kubernetes", "", confidenceExact},
	}
	for _, tt := range tests {
		got := parse(tt.raw)
		if got.base != tt.wantBase || got.detail != tt.wantDetail || got.confidence != tt.wantConf {
			t.Errorf("parse(%q) = {base: %q, detail: %q, conf: %v}, want {%q, %q, %v}",
				tt.raw, got.base, got.detail, got.confidence, tt.wantBase, tt.wantDetail, tt.wantConf)
		}
	}
}

func TestParse_HyphenatedNameIsNotSplit(t *testing.T) {
	got := parse("Intra-day Trading")
	if got.detail != "" {
		t.Fatalf("hyphen without surrounding spaces should not split, got detail %q", got.detail)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer()
	ctx := context.Background()

	first, err := n.Normalize(ctx, "Rust", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !first.IsNewBase {
		t.Fatalf("expected first normalization to create the base skill")
	}

	second, err := n.Normalize(ctx, "Rust", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.IsNewBase {
		t.Fatalf("expected second normalization to reuse the base skill")
	}
	if first.BaseSkillID != second.BaseSkillID {
		t.Fatalf("expected stable base skill id across normalizations")
	}
}

func TestNormalize_AliasResolvesToExistingSkill(t *testing.T) {
	n := newTestNormalizer()
	ctx := context.Background()

	created, err := n.Normalize(ctx, "Kubernetes", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// "K8s" is seeded as an alias of Kubernetes.
	viaAlias, err := n.Normalize(ctx, "K8s", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if viaAlias.IsNewBase {
		t.Fatalf("alias must not create a new canonical skill")
	}
	if viaAlias.BaseSkillID != created.BaseSkillID {
		t.Fatalf("alias resolved to a different skill")
	}
	if viaAlias.BaseSkillName != "Kubernetes" {
		t.Fatalf("expected canonical name, got %q", viaAlias.BaseSkillName)
	}
}

func TestNormalize_DetailVariantRegisteredAsAlias(t *testing.T) {
	n := newTestNormalizer()
	ctx := context.Background()

	result, err := n.Normalize(ctx, "React (Native)", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.BaseSkillName != "React" {
		t.Fatalf("expected base React, got %q", result.BaseSkillName)
	}
	if result.DetailVariant != "Native" {
		t.Fatalf("expected detail Native, got %q", result.DetailVariant)
	}
	if !result.IsNewVariant {
		t.Fatalf("expected the variant alias to be newly registered")
	}

	// The full variant string now resolves to the same base.
	again, err := n.Normalize(ctx, "React (Native)", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if again.IsNewVariant {
		t.Fatalf("expected variant alias registration to be idempotent")
	}
	if again.BaseSkillID != result.BaseSkillID {
		t.Fatalf("variant resolved to a different skill")
	}
}

func TestNormalize_CategoryPrecedence(t *testing.T) {
	n := newTestNormalizer()
	ctx := context.Background()

	// Pattern table category wins.
	fromPattern, err := n.Normalize(ctx, "AWS (EC2)", skill.CategoryOther)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fromPattern.Category != skill.CategoryCloud {
		t.Fatalf("expected pattern category Cloud, got %q", fromPattern.Category)
	}

	// Classifier result when no pattern applies.
	classified, err := n.Normalize(ctx, "Selenium", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if classified.Category != skill.CategoryQATesting {
		t.Fatalf("expected classifier category, got %q", classified.Category)
	}

	// Caller default when the classifier has nothing.
	defaulted, err := n.Normalize(ctx, "Juggling", skill.CategoryOperations)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if defaulted.Category != skill.CategoryOperations {
		t.Fatalf("expected caller default category, got %q", defaulted.Category)
	}
}

func TestNormalizeMany_DedupsByBaseWithinBatch(t *testing.T) {
	n, skills := newTestNormalizerWithRepo()
	ctx := context.Background()

	results, err := n.NormalizeMany(ctx, []string{"React", "React (Native)", "react.js (Hooks)"}, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].BaseSkillID != results[0].BaseSkillID {
			t.Fatalf("result %d resolved to a different base", i)
		}
	}
	if len(skills.skills) != 1 {
		t.Fatalf("expected exactly one canonical skill, got %d", len(skills.skills))
	}
}

func TestNormalize_MalformedInputFallsBack(t *testing.T) {
	n := newTestNormalizer()

	result, err := n.Normalize(context.Background(), "   weird )( input", "")
	if err != nil {
		t.Fatalf("malformed input must not fail: %v", err)
	}
	if result.BaseSkillName == "" {
		t.Fatalf("expected the raw string to become its own base skill")
	}
	if result.Confidence != confidenceExact {
		t.Fatalf("fallback parse should carry exact confidence")
	}
}

func newTestNormalizer() *Normalizer {
	n, _ := newTestNormalizerWithRepo()
	return n
}

func newTestNormalizerWithRepo() (*Normalizer, *memSkillRepo) {
	aliases := &memAliasRepo{}
	skills := newMemSkillRepo(aliases)
	tax := newTestTaxonomy(skills, aliases)
	return New(tax, zap.NewNop()), skills
}
