package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"profile-sync/internal/dedup"
	"profile-sync/internal/domain/matching"
	"profile-sync/internal/domain/profile"
	"profile-sync/internal/domain/skill"
	"profile-sync/internal/normalizer"
	"profile-sync/internal/repository"
	"profile-sync/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconcileCounts summarizes one reconciliation batch. Counts are returned
// even when some facts failed.
type ReconcileCounts struct {
	WorkExperienceProcessed int `json:"work_experience_processed"`
	RecordsCreated          int `json:"records_created"`
	RecordsUpdated          int `json:"records_updated"`
	AchievementsMerged      int `json:"achievements_merged"`
	SkillsLinked            int `json:"skills_linked"`
	FactsFailed             int `json:"facts_failed"`
}

type ReconcileUsecase interface {
	ReconcileWorkExperience(ctx context.Context, userID uuid.UUID, facts []profile.WorkExperienceFact) (ReconcileCounts, error)
	ReconcileEducation(ctx context.Context, userID uuid.UUID, facts []profile.EducationFact) (int, error)
}

// Reconcile folds extracted profile facts into the user's canonical work
// history, achievements and skill assignments.
type Reconcile struct {
	records    repository.WorkHistoryRepository
	userSkills repository.UserSkillRepository
	normalizer *normalizer.Normalizer
	dedup      *dedup.Deduplicator
	logger     *zap.Logger
}

func NewReconcileUsecase(
	records repository.WorkHistoryRepository,
	userSkills repository.UserSkillRepository,
	norm *normalizer.Normalizer,
	dd *dedup.Deduplicator,
	logger *zap.Logger,
) *Reconcile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconcile{
		records:    records,
		userSkills: userSkills,
		normalizer: norm,
		dedup:      dd,
		logger:     logger,
	}
}

// ReconcileWorkExperience processes facts one by one. Each fact is matched
// against the user's records, including records created earlier in the same
// batch, then either merged into its match or inserted as a new record. A
// fact that fails only increments FactsFailed; the batch continues.
func (u *Reconcile) ReconcileWorkExperience(ctx context.Context, userID uuid.UUID, facts []profile.WorkExperienceFact) (ReconcileCounts, error) {
	counts := ReconcileCounts{}
	if userID == uuid.Nil {
		return counts, ErrInvalidInput
	}
	if len(facts) == 0 {
		return counts, nil
	}

	existing, err := u.records.FindByUserID(ctx, userID)
	if err != nil {
		u.logger.Error("load work history failed", zap.String("user_id", userID.String()), zap.Error(err))
		return counts, ErrInternal
	}

	for i, fact := range facts {
		counts.WorkExperienceProcessed++
		if err := u.reconcileFact(ctx, userID, fact, &existing, &counts); err != nil {
			counts.FactsFailed++
			u.logger.Warn("fact reconciliation failed",
				zap.String("user_id", userID.String()),
				zap.String("company", fact.Company),
				zap.Error(err),
			)
		}
		ws.NotifyReconcileProgress(userID, i+1, len(facts))
	}

	return counts, nil
}

func (u *Reconcile) reconcileFact(ctx context.Context, userID uuid.UUID, fact profile.WorkExperienceFact, existing *[]profile.WorkHistoryRecord, counts *ReconcileCounts) error {
	company := strings.TrimSpace(fact.Company)
	if company == "" {
		return errors.New("fact has no company name")
	}

	start := profile.ParseDate(fact.StartDate)
	end := profile.ParseDate(fact.EndDate)
	incoming := matching.IncomingKey{Company: company, StartDate: start, EndDate: end}

	matched := -1
	for idx := range *existing {
		rec := (*existing)[idx]
		key := matching.RecordKey{Company: rec.Company, StartDate: rec.StartDate, EndDate: rec.EndDate}
		if matching.Matches(key, incoming) {
			matched = idx
			break
		}
	}

	var rec profile.WorkHistoryRecord
	if matched >= 0 {
		rec = (*existing)[matched]
		if title := strings.TrimSpace(fact.JobTitle); title != "" {
			rec.JobTitle = title
		}
		// A known date is never replaced, only filled in.
		if rec.StartDate == nil {
			rec.StartDate = start
		}
		if rec.EndDate == nil {
			rec.EndDate = end
		}

		merged, err := u.mergeAchievements(ctx, rec.ID, fact.Achievements)
		if err != nil {
			return err
		}
		if err := u.records.UpdateAndReplaceAchievements(ctx, rec, merged.Final); err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		(*existing)[matched] = rec
		counts.RecordsUpdated++
		counts.AchievementsMerged += merged.OriginalCount - merged.FinalCount()
	} else {
		rec = profile.WorkHistoryRecord{
			ID:        uuid.New(),
			UserID:    userID,
			Company:   company,
			JobTitle:  strings.TrimSpace(fact.JobTitle),
			StartDate: start,
			EndDate:   end,
		}
		created, err := u.records.CreateWithAchievements(ctx, rec, uniqueTexts(fact.Achievements))
		if err != nil {
			return fmt.Errorf("create record: %w", err)
		}
		rec = created
		*existing = append(*existing, created)
		counts.RecordsCreated++
	}

	linked, err := u.linkSkills(ctx, userID, rec.ID, fact.Skills, skill.SourceWorkExperience)
	if err != nil {
		return err
	}
	counts.SkillsLinked += linked
	return nil
}

// mergeAchievements combines a record's stored achievements with the
// incoming ones and runs the full dedup pipeline over the union.
func (u *Reconcile) mergeAchievements(ctx context.Context, recordID uuid.UUID, incoming []string) (dedup.Result, error) {
	stored, err := u.records.ListAchievements(ctx, recordID)
	if err != nil {
		return dedup.Result{}, fmt.Errorf("list achievements: %w", err)
	}

	statements := make([]dedup.Statement, 0, len(stored)+len(incoming))
	for _, a := range stored {
		statements = append(statements, dedup.Statement{ID: a.ID, Text: a.Description, CreatedAt: a.CreatedAt})
	}
	now := time.Now().UTC()
	for _, text := range incoming {
		statements = append(statements, dedup.Statement{Text: text, CreatedAt: now})
	}

	return u.dedup.Deduplicate(ctx, statements), nil
}

// ReconcileEducation links skills observed in education facts. Education
// carries no work history reference; only skill assignments are touched.
func (u *Reconcile) ReconcileEducation(ctx context.Context, userID uuid.UUID, facts []profile.EducationFact) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrInvalidInput
	}

	linked := 0
	for _, fact := range facts {
		n, err := u.linkSkills(ctx, userID, uuid.Nil, fact.Skills, skill.SourceEducation)
		if err != nil {
			u.logger.Warn("education skill linking failed",
				zap.String("user_id", userID.String()),
				zap.String("institution", fact.Institution),
				zap.Error(err),
			)
			continue
		}
		linked += n
	}
	return linked, nil
}

// linkSkills normalizes raw skill strings and assigns the resulting canonical
// skills to the user. An existing assignment is never duplicated: at most its
// missing work-history reference is filled in.
func (u *Reconcile) linkSkills(ctx context.Context, userID, workHistoryID uuid.UUID, rawSkills []string, source skill.Source) (int, error) {
	if len(rawSkills) == 0 {
		return 0, nil
	}

	normalized, err := u.normalizer.NormalizeMany(ctx, rawSkills, skill.CategoryOther)
	if err != nil {
		return 0, fmt.Errorf("normalize skills: %w", err)
	}

	linked := 0
	seen := make(map[uuid.UUID]bool, len(normalized))
	for _, ns := range normalized {
		if ns.BaseSkillID == uuid.Nil || seen[ns.BaseSkillID] {
			continue
		}
		seen[ns.BaseSkillID] = true

		current, err := u.userSkills.FindByUserAndSkill(ctx, userID, ns.BaseSkillID)
		switch {
		case err == nil:
			if current.WorkHistoryID == nil && workHistoryID != uuid.Nil {
				if err := u.userSkills.AttachWorkHistory(ctx, current.ID, workHistoryID); err != nil {
					return linked, fmt.Errorf("attach work history: %w", err)
				}
			}
			continue
		case !errors.Is(err, repository.ErrAssignmentNotFound):
			return linked, fmt.Errorf("find assignment: %w", err)
		}

		assignment := skill.UserSkillAssignment{
			ID:      uuid.New(),
			UserID:  userID,
			SkillID: ns.BaseSkillID,
			Source:  source,
		}
		if workHistoryID != uuid.Nil {
			id := workHistoryID
			assignment.WorkHistoryID = &id
		}
		if _, err := u.userSkills.Create(ctx, assignment); err != nil {
			if errors.Is(err, repository.ErrAssignmentExists) {
				continue
			}
			return linked, fmt.Errorf("create assignment: %w", err)
		}
		linked++
	}
	return linked, nil
}

// uniqueTexts drops blanks and exact duplicates from incoming achievement
// strings, preserving first-seen order.
func uniqueTexts(items []string) []string {
	statements := make([]dedup.Statement, 0, len(items))
	for _, it := range items {
		statements = append(statements, dedup.Statement{Text: it})
	}
	unique, _, _ := dedup.RemoveExactDuplicates(statements)
	out := make([]string, 0, len(unique))
	for _, s := range unique {
		out = append(out, s.Text)
	}
	return out
}
