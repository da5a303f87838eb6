package usecase

import (
	"context"
	"errors"

	"profile-sync/internal/dedup"
	"profile-sync/internal/domain/profile"
	"profile-sync/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeduplicationResult is what callers see after one dedup run. Preview holds
// the would-be final list; on a dry run nothing was written.
type DeduplicationResult struct {
	OriginalCount          int      `json:"original_count"`
	FinalCount             int      `json:"final_count"`
	ExactDuplicatesRemoved int      `json:"exact_duplicates_removed"`
	BlankStatementsDropped int      `json:"blank_statements_dropped"`
	SimilarGroupsMerged    int      `json:"similar_groups_merged"`
	MergeApplied           bool     `json:"merge_applied"`
	DryRun                 bool     `json:"dry_run"`
	Preview                []string `json:"preview"`
}

type AchievementUsecase interface {
	DeduplicateKeyAchievements(ctx context.Context, userID uuid.UUID, dryRun bool) (DeduplicationResult, error)
	DeduplicateWorkAchievements(ctx context.Context, userID, recordID uuid.UUID, dryRun bool) (DeduplicationResult, error)
}

// Achievement runs the dedup pipeline over stored achievement sets, either
// profile-level key achievements or one work record's achievements.
type Achievement struct {
	keyAchievements repository.KeyAchievementRepository
	records         repository.WorkHistoryRepository
	dedup           *dedup.Deduplicator
	logger          *zap.Logger
}

func NewAchievementUsecase(
	keyAchievements repository.KeyAchievementRepository,
	records repository.WorkHistoryRepository,
	dd *dedup.Deduplicator,
	logger *zap.Logger,
) *Achievement {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Achievement{
		keyAchievements: keyAchievements,
		records:         records,
		dedup:           dd,
		logger:          logger,
	}
}

func (u *Achievement) DeduplicateKeyAchievements(ctx context.Context, userID uuid.UUID, dryRun bool) (DeduplicationResult, error) {
	if userID == uuid.Nil {
		return DeduplicationResult{}, ErrInvalidInput
	}

	stored, err := u.keyAchievements.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Error("load key achievements failed", zap.String("user_id", userID.String()), zap.Error(err))
		return DeduplicationResult{}, ErrInternal
	}

	statements := make([]dedup.Statement, 0, len(stored))
	for _, a := range stored {
		statements = append(statements, dedup.Statement{ID: a.ID, Text: a.Content, CreatedAt: a.CreatedAt})
	}

	result := u.dedup.Deduplicate(ctx, statements)
	if !dryRun && result.Changed() {
		if err := u.keyAchievements.Replace(ctx, userID, result.Final); err != nil {
			u.logger.Error("replace key achievements failed", zap.String("user_id", userID.String()), zap.Error(err))
			return DeduplicationResult{}, ErrInternal
		}
	}

	return toDeduplicationResult(result, dryRun), nil
}

func (u *Achievement) DeduplicateWorkAchievements(ctx context.Context, userID, recordID uuid.UUID, dryRun bool) (DeduplicationResult, error) {
	if userID == uuid.Nil || recordID == uuid.Nil {
		return DeduplicationResult{}, ErrInvalidInput
	}

	rec, err := u.records.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrWorkHistoryNotFound) {
			return DeduplicationResult{}, ErrRecordNotFound
		}
		u.logger.Error("load work history record failed", zap.String("record_id", recordID.String()), zap.Error(err))
		return DeduplicationResult{}, ErrInternal
	}
	if rec.UserID != userID {
		return DeduplicationResult{}, ErrForbidden
	}

	stored, err := u.records.ListAchievements(ctx, recordID)
	if err != nil {
		u.logger.Error("load work achievements failed", zap.String("record_id", recordID.String()), zap.Error(err))
		return DeduplicationResult{}, ErrInternal
	}

	result := u.dedup.Deduplicate(ctx, toStatements(stored))
	if !dryRun && result.Changed() {
		if err := u.records.ReplaceAchievements(ctx, recordID, result.Final); err != nil {
			u.logger.Error("replace work achievements failed", zap.String("record_id", recordID.String()), zap.Error(err))
			return DeduplicationResult{}, ErrInternal
		}
	}

	return toDeduplicationResult(result, dryRun), nil
}

func toStatements(stored []profile.WorkAchievement) []dedup.Statement {
	statements := make([]dedup.Statement, 0, len(stored))
	for _, a := range stored {
		statements = append(statements, dedup.Statement{ID: a.ID, Text: a.Description, CreatedAt: a.CreatedAt})
	}
	return statements
}

func toDeduplicationResult(r dedup.Result, dryRun bool) DeduplicationResult {
	return DeduplicationResult{
		OriginalCount:          r.OriginalCount,
		FinalCount:             r.FinalCount(),
		ExactDuplicatesRemoved: r.ExactDuplicatesRemoved,
		BlankStatementsDropped: r.BlankStatementsDropped,
		SimilarGroupsMerged:    r.SimilarGroupsMerged,
		MergeApplied:           r.MergeApplied,
		DryRun:                 dryRun,
		Preview:                r.Final,
	}
}
