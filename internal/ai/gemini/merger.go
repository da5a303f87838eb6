package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"profile-sync/internal/ai"
	"profile-sync/internal/pkg/logger"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Merger implements ai.Merger on top of a Gemini content generator. Every
// response is parsed against a fixed schema; unstructured text is never
// trusted.
type Merger struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewMerger(generator contentGenerator, log *zap.Logger, maxLogLength int) *Merger {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Merger{generator: generator, logger: log, maxLogLen: maxLogLength}
}

func (m *Merger) Merge(ctx context.Context, statements []string) (*ai.MergeResult, error) {
	if len(statements) == 0 {
		return &ai.MergeResult{}, nil
	}

	prompt := buildPrompt(statements)

	m.logger.Debug("merge request",
		zap.Int("statement_count", len(statements)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := m.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("merge response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, m.maxLogLen)),
	)

	return parseResponse(raw, len(statements))
}

func buildPrompt(statements []string) string {
	var list strings.Builder
	for i, s := range statements {
		fmt.Fprintf(&list, "%d. %s\n", i+1, strings.TrimSpace(s))
	}
	return strings.ReplaceAll(promptTemplate, "{{STATEMENTS}}", strings.TrimSpace(list.String()))
}

type mergeResponse struct {
	Statements []struct {
		Text            string `json:"text"`
		OriginalIndices []int  `json:"original_indices"`
		Action          string `json:"action"`
	} `json:"statements"`
}

// parseResponse validates the oracle's output shape: non-empty statement
// texts, every index within 1..inputCount. The {1..N} completeness union is
// enforced by the deduplicator on top of this.
func parseResponse(raw string, inputCount int) (*ai.MergeResult, error) {
	cleaned := extractJSON(raw)

	var data mergeResponse
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse merge response: %w", err)
	}
	if len(data.Statements) == 0 {
		return nil, fmt.Errorf("merge response contains no statements")
	}

	result := &ai.MergeResult{Statements: make([]ai.MergedStatement, 0, len(data.Statements))}
	for i, s := range data.Statements {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			return nil, fmt.Errorf("merge response statement %d has empty text", i+1)
		}
		if len(s.OriginalIndices) == 0 {
			return nil, fmt.Errorf("merge response statement %d has no original indices", i+1)
		}
		for _, idx := range s.OriginalIndices {
			if idx < 1 || idx > inputCount {
				return nil, fmt.Errorf("merge response statement %d references index %d outside 1..%d", i+1, idx, inputCount)
			}
		}

		action := ai.MergeAction(strings.ToLower(strings.TrimSpace(s.Action)))
		switch action {
		case ai.MergeActionMerged, ai.MergeActionOptimized:
		default:
			action = ai.MergeActionOptimized
		}

		result.Statements = append(result.Statements, ai.MergedStatement{
			Text:            text,
			OriginalIndices: s.OriginalIndices,
			Action:          action,
		})
	}

	return result, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
