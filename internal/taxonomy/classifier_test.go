package taxonomy

import (
	"testing"

	"profile-sync/internal/domain/skill"
)

func TestClassify_PatternTable(t *testing.T) {
	tests := []struct {
		name string
		want skill.Category
	}{
		{"Go", skill.CategoryProgrammingLanguage},
		{"golang", skill.CategoryProgrammingLanguage},
		{"C++", skill.CategoryProgrammingLanguage},
		{"React", skill.CategoryFrontend},
		{"PostgreSQL", skill.CategoryDatabase},
		{"Kubernetes", skill.CategoryDevOps},
		{"AWS", skill.CategoryCloud},
		{"TensorFlow", skill.CategoryMachineLearning},
		{"Selenium", skill.CategoryQATesting},
		{"Figma", skill.CategoryGraphicDesign},
		{"QuickBooks", skill.CategoryAccounting},
		{"Litigation Support", skill.CategoryLegal},
		{"Phlebotomy", skill.CategoryNursing},
		{"AutoCAD", skill.CategoryMechanicalEngineering},
		{"Spanish", skill.CategoryLanguage},
	}
	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClassify_KeywordBuckets(t *testing.T) {
	tests := []struct {
		name string
		want skill.Category
	}{
		{"Patient Advocacy", skill.CategoryNursing},
		{"Financial Planning for Startups", skill.CategoryFinance},
		{"Brand Strategy", skill.CategoryMarketing},
	}
	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClassify_FallsBackToOther(t *testing.T) {
	for _, name := range []string{"", "   ", "Juggling"} {
		if got := Classify(name); got != skill.CategoryOther {
			t.Errorf("Classify(%q) = %q, want Other", name, got)
		}
	}
}
