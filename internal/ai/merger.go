package ai

import "context"

// MergeAction tags how an output statement relates to its inputs.
type MergeAction string

const (
	// MergeActionMerged marks a statement collapsed from several inputs.
	MergeActionMerged MergeAction = "merged"
	// MergeActionOptimized marks a single input kept with improved wording.
	MergeActionOptimized MergeAction = "optimized"
)

// MergedStatement is one output statement together with the 1-indexed input
// statements it was derived from.
type MergedStatement struct {
	Text            string
	OriginalIndices []int
	Action          MergeAction
}

type MergeResult struct {
	Statements []MergedStatement
}

// Merger collapses near-duplicate achievement statements. Output is not
// deterministic; callers gate correctness on the completeness check (every
// input index accounted for), never on the oracle itself.
type Merger interface {
	Merge(ctx context.Context, statements []string) (*MergeResult, error)
}
