package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"profile-sync/internal/ai"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestMergerMerge(t *testing.T) {
	stub := &stubGenerator{response: `{"statements": [
		{"text": "Led a team of 5 engineers", "original_indices": [1, 2], "action": "merged"},
		{"text": "Shipped the billing service", "original_indices": [3], "action": "optimized"}
	]}`}
	merger := NewMerger(stub, zap.NewNop(), 0)

	result, err := merger.Merge(context.Background(), []string{
		"Led a team of 5",
		"Managed five engineers",
		"Shipped billing service",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(result.Statements))
	}
	if result.Statements[0].Action != ai.MergeActionMerged {
		t.Fatalf("expected first statement to be merged")
	}
	if len(result.Statements[0].OriginalIndices) != 2 {
		t.Fatalf("expected merged statement to carry both indices")
	}

	if !strings.Contains(stub.lastPrompt, "1. Led a team of 5") {
		t.Fatalf("expected numbered list in prompt, got: %s", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, "3. Shipped billing service") {
		t.Fatalf("expected all statements numbered in prompt")
	}
}

func TestMergerMerge_FencedResponse(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"statements\": [{\"text\": \"Built API\", \"original_indices\": [1], \"action\": \"optimized\"}]}\n```"}
	merger := NewMerger(stub, zap.NewNop(), 0)

	result, err := merger.Merge(context.Background(), []string{"Built API"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Statements[0].Text != "Built API" {
		t.Fatalf("unexpected text: %q", result.Statements[0].Text)
	}
}

func TestMergerMerge_SchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "these statements look fine to me"},
		{"empty statements", `{"statements": []}`},
		{"empty text", `{"statements": [{"text": "", "original_indices": [1]}]}`},
		{"missing indices", `{"statements": [{"text": "Built API", "original_indices": []}]}`},
		{"index out of range", `{"statements": [{"text": "Built API", "original_indices": [4]}]}`},
		{"zero index", `{"statements": [{"text": "Built API", "original_indices": [0]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merger := NewMerger(&stubGenerator{response: tt.response}, zap.NewNop(), 0)
			if _, err := merger.Merge(context.Background(), []string{"Built API", "Shipped Y"}); err == nil {
				t.Fatalf("expected schema validation error")
			}
		})
	}
}

func TestMergerMerge_UnknownActionDefaultsToOptimized(t *testing.T) {
	stub := &stubGenerator{response: `{"statements": [{"text": "Built API", "original_indices": [1], "action": "rewritten"}]}`}
	merger := NewMerger(stub, zap.NewNop(), 0)

	result, err := merger.Merge(context.Background(), []string{"Built API"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Statements[0].Action != ai.MergeActionOptimized {
		t.Fatalf("expected unknown action to default to optimized")
	}
}

func TestMergerMerge_GeneratorError(t *testing.T) {
	merger := NewMerger(&stubGenerator{err: errors.New("timeout")}, zap.NewNop(), 0)
	if _, err := merger.Merge(context.Background(), []string{"A", "B"}); err == nil {
		t.Fatalf("expected generator error to surface")
	}
}
