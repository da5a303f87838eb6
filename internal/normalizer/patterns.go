package normalizer

import (
	"regexp"
	"strings"

	"profile-sync/internal/domain/skill"
)

// Parse confidence per tier. A table hit fixes the base name; the generic
// tiers only guess at the split.
const (
	confidenceExact         = 1.0
	confidenceTable         = 0.95
	confidenceParenthetical = 0.8
	confidenceSeparator     = 0.6
)

type parsePattern struct {
	re       *regexp.Regexp
	baseName string
	category skill.Category
}

func pattern(expr, baseName string, category skill.Category) parsePattern {
	return parsePattern{re: regexp.MustCompile(`(?i)` + expr), baseName: baseName, category: category}
}

// parsePatterns pin known detailed-variant shapes to a fixed base skill. The
// first capture group, when present, is the detail text.
var parsePatterns = []parsePattern{
	pattern(`^react(?:\.js|js)?\s*\((.+)\)$`, "React", skill.CategoryFrontend),
	pattern(`^node(?:\.js|js)?\s*\((.+)\)$`, "Node.js", skill.CategoryBackend),
	pattern(`^vue(?:\.js|js)?\s*\((.+)\)$`, "Vue", skill.CategoryFrontend),
	pattern(`^angular(?:js)?\s*\((.+)\)$`, "Angular", skill.CategoryFrontend),
	pattern(`^python\s*\((.+)\)$`, "Python", skill.CategoryProgrammingLanguage),
	pattern(`^java\s*\((.+)\)$`, "Java", skill.CategoryProgrammingLanguage),
	pattern(`^c#\s*\((.+)\)$`, "C#", skill.CategoryProgrammingLanguage),
	pattern(`^sql\s*\((.+)\)$`, "SQL", skill.CategoryDatabase),
	pattern(`^aws\s*\((.+)\)$`, "AWS", skill.CategoryCloud),
	pattern(`^azure\s*\((.+)\)$`, "Azure", skill.CategoryCloud),
	pattern(`^google cloud(?: platform)?\s*\((.+)\)$`, "GCP", skill.CategoryCloud),
	pattern(`^excel\s*\((.+)\)$`, "Microsoft Excel", skill.CategoryAdministration),
	pattern(`^photoshop\s*\((.+)\)$`, "Photoshop", skill.CategoryGraphicDesign),
}

var (
	reParenthetical = regexp.MustCompile(`^(.+?)\s*\((.+)\)$`)
	reDashSplit     = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)
)

type parsedSkill struct {
	base       string
	detail     string
	category   skill.Category
	confidence float64
}

// parse splits a raw skill string into base + optional detail. Ordered,
// first match wins; malformed input degrades to "the whole string is the
// base" rather than failing.
func parse(raw string) parsedSkill {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return parsedSkill{base: raw, confidence: confidenceExact}
	}

	for _, p := range parsePatterns {
		m := p.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		detail := ""
		if len(m) > 1 {
			detail = strings.TrimSpace(m[1])
		}
		return parsedSkill{base: p.baseName, detail: detail, category: p.category, confidence: confidenceTable}
	}

	if m := reParenthetical.FindStringSubmatch(trimmed); m != nil {
		base := strings.TrimSpace(m[1])
		detail := strings.TrimSpace(m[2])
		if base != "" && detail != "" {
			return parsedSkill{base: base, detail: detail, confidence: confidenceParenthetical}
		}
	}

	if m := reDashSplit.FindStringSubmatch(trimmed); m != nil {
		return parsedSkill{base: strings.TrimSpace(m[1]), detail: strings.TrimSpace(m[2]), confidence: confidenceSeparator}
	}

	if base, detail, ok := strings.Cut(trimmed, ","); ok {
		base = strings.TrimSpace(base)
		detail = strings.TrimSpace(detail)
		if base != "" && detail != "" {
			return parsedSkill{base: base, detail: detail, confidence: confidenceSeparator}
		}
	}

	return parsedSkill{base: trimmed, confidence: confidenceExact}
}
