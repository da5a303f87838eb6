package dedup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"profile-sync/internal/ai"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Statement is one free-text achievement scoped to a single owner (a work
// history record or a user's standalone list), in creation order.
type Statement struct {
	ID        uuid.UUID
	Text      string
	CreatedAt time.Time
}

// Result describes one deduplication run. Final always holds the complete
// output set: when the oracle merge was rejected or unavailable, Final is
// the post-exact-dedup list unchanged.
type Result struct {
	OriginalCount          int
	Final                  []string
	ExactDuplicatesRemoved int
	BlankStatementsDropped int
	SimilarGroupsMerged    int
	MergeApplied           bool
}

func (r Result) FinalCount() int {
	return len(r.Final)
}

// Changed reports whether Final differs from the stored input set. An applied
// oracle merge counts even at equal length: the oracle may keep every
// statement but reword it.
func (r Result) Changed() bool {
	return r.MergeApplied || r.ExactDuplicatesRemoved > 0 || r.BlankStatementsDropped > 0
}

// Deduplicator removes exact duplicates and then asks the merge oracle to
// collapse near-duplicates. The oracle is untrusted: its output only
// replaces the list when every input index is provably accounted for.
type Deduplicator struct {
	merger ai.Merger
	logger *zap.Logger
}

func New(merger ai.Merger, logger *zap.Logger) *Deduplicator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deduplicator{merger: merger, logger: logger}
}

// RemoveExactDuplicates drops statements whose trimmed, lowercased text was
// already seen, keeping the first occurrence in order. Blank statements are
// dropped too but counted apart from duplicates.
func RemoveExactDuplicates(statements []Statement) (unique []Statement, removed, blanks int) {
	seen := make(map[string]struct{}, len(statements))
	unique = make([]Statement, 0, len(statements))

	for _, s := range statements {
		key := strings.ToLower(strings.TrimSpace(s.Text))
		if key == "" {
			blanks++
			continue
		}
		if _, ok := seen[key]; ok {
			removed++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, s)
	}
	return unique, removed, blanks
}

// Deduplicate runs the full pipeline without writing anywhere: exact dedup,
// then a semantic merge when two or more unique statements remain. Storage
// application is the caller's single atomic full-replace.
func (d *Deduplicator) Deduplicate(ctx context.Context, statements []Statement) Result {
	unique, removed, blanks := RemoveExactDuplicates(statements)

	result := Result{
		OriginalCount:          len(statements),
		Final:                  texts(unique),
		ExactDuplicatesRemoved: removed,
		BlankStatementsDropped: blanks,
	}

	if len(unique) <= 1 || d.merger == nil {
		return result
	}

	merged, err := d.merger.Merge(ctx, result.Final)
	if err != nil {
		d.logger.Warn("achievement merge failed, keeping exact-dedup list",
			zap.Int("unique_count", len(unique)),
			zap.Error(err),
		)
		return result
	}

	if err := validateCompleteness(merged, len(unique)); err != nil {
		d.logger.Warn("achievement merge rejected by completeness check",
			zap.Int("unique_count", len(unique)),
			zap.Error(err),
		)
		return result
	}

	final := make([]string, 0, len(merged.Statements))
	groupsMerged := 0
	for _, s := range merged.Statements {
		final = append(final, s.Text)
		if len(s.OriginalIndices) > 1 {
			groupsMerged++
		}
	}

	result.Final = final
	result.SimilarGroupsMerged = groupsMerged
	result.MergeApplied = true
	return result
}

// validateCompleteness enforces the pipeline's core guarantee: the union of
// all returned index sets must equal exactly {1..n}. A merge that cannot
// account for an input statement is discarded wholesale.
func validateCompleteness(result *ai.MergeResult, n int) error {
	covered := make(map[int]bool, n)
	for _, s := range result.Statements {
		for _, idx := range s.OriginalIndices {
			if idx < 1 || idx > n {
				return &CompletenessError{Index: idx, InputCount: n, OutOfRange: true}
			}
			covered[idx] = true
		}
	}
	for i := 1; i <= n; i++ {
		if !covered[i] {
			return &CompletenessError{Index: i, InputCount: n}
		}
	}
	return nil
}

// CompletenessError reports the first input index a merge result failed to
// account for, or an index outside the input range.
type CompletenessError struct {
	Index      int
	InputCount int
	OutOfRange bool
}

func (e *CompletenessError) Error() string {
	if e.OutOfRange {
		return fmt.Sprintf("merge result references index %d outside 1..%d", e.Index, e.InputCount)
	}
	return fmt.Sprintf("merge result does not account for input statement %d", e.Index)
}

func texts(statements []Statement) []string {
	out := make([]string, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.Text)
	}
	return out
}
