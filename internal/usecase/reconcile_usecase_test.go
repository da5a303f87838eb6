package usecase

import (
	"context"
	"testing"
	"time"

	"profile-sync/internal/dedup"
	"profile-sync/internal/domain/profile"
	"profile-sync/internal/domain/skill"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newReconcile(records *memWorkHistoryRepo, userSkills *memUserSkillRepo) *Reconcile {
	norm, _ := newTestNormalizer()
	return NewReconcileUsecase(records, userSkills, norm, dedup.New(nil, zap.NewNop()), zap.NewNop())
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestReconcileWorkExperience_UpdatesMatchingRecord(t *testing.T) {
	userID := uuid.New()
	recordID := uuid.New()

	records := newMemWorkHistoryRepo()
	records.records = []profile.WorkHistoryRecord{{
		ID:        recordID,
		UserID:    userID,
		Company:   "Acme Corp",
		JobTitle:  "Engineer",
		StartDate: datePtr(2020, time.January, 15),
		EndDate:   datePtr(2022, time.March, 1),
	}}
	records.setAchievements(recordID, []string{"Led team of 5", "Shipped billing"})

	userSkills := &memUserSkillRepo{}
	uc := newReconcile(records, userSkills)

	counts, err := uc.ReconcileWorkExperience(context.Background(), userID, []profile.WorkExperienceFact{{
		Company:      "AcmeCorp",
		JobTitle:     "Senior Engineer",
		StartDate:    "2020-01",
		EndDate:      "2022-03",
		Achievements: []string{"led team of 5 ", "Reduced infra costs"},
		Skills:       []string{"React (Hooks)", "Terraform"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counts.RecordsUpdated != 1 || counts.RecordsCreated != 0 {
		t.Fatalf("expected 1 update and 0 creates, got %+v", counts)
	}
	if counts.AchievementsMerged != 1 {
		t.Fatalf("expected 1 achievement merged, got %d", counts.AchievementsMerged)
	}
	if counts.SkillsLinked != 2 {
		t.Fatalf("expected 2 skills linked, got %d", counts.SkillsLinked)
	}

	rec, err := records.FindByID(context.Background(), recordID)
	if err != nil {
		t.Fatalf("record lookup: %v", err)
	}
	if rec.JobTitle != "Senior Engineer" {
		t.Fatalf("expected title overwrite, got %q", rec.JobTitle)
	}
	if rec.StartDate == nil || rec.StartDate.Day() != 15 {
		t.Fatalf("existing start date should be kept, got %v", rec.StartDate)
	}

	achievements := records.achievements[recordID]
	if len(achievements) != 3 {
		t.Fatalf("expected 3 achievements after merge, got %d", len(achievements))
	}
	if achievements[0].Description != "Led team of 5" {
		t.Fatalf("expected first occurrence kept, got %q", achievements[0].Description)
	}

	assignments, _ := userSkills.FindByUserID(context.Background(), userID)
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}
	for _, a := range assignments {
		if a.Source != skill.SourceWorkExperience {
			t.Fatalf("expected work_experience source, got %q", a.Source)
		}
		if a.WorkHistoryID == nil || *a.WorkHistoryID != recordID {
			t.Fatalf("expected assignment linked to record %s, got %v", recordID, a.WorkHistoryID)
		}
	}
}

func TestReconcileWorkExperience_CreatesNewRecord(t *testing.T) {
	userID := uuid.New()
	records := newMemWorkHistoryRepo()
	uc := newReconcile(records, &memUserSkillRepo{})

	counts, err := uc.ReconcileWorkExperience(context.Background(), userID, []profile.WorkExperienceFact{{
		Company:      "Globex",
		JobTitle:     "Engineer",
		StartDate:    "2019-05",
		EndDate:      "present",
		Achievements: []string{"Launched product", "", "launched product"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.RecordsCreated != 1 || counts.RecordsUpdated != 0 {
		t.Fatalf("expected 1 create, got %+v", counts)
	}

	stored, _ := records.FindByUserID(context.Background(), userID)
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(stored))
	}
	rec := stored[0]
	if rec.Company != "Globex" {
		t.Fatalf("unexpected company %q", rec.Company)
	}
	if rec.StartDate == nil || rec.StartDate.Year() != 2019 || rec.StartDate.Month() != time.May {
		t.Fatalf("unexpected start date %v", rec.StartDate)
	}
	if rec.EndDate != nil {
		t.Fatalf("current position should have nil end date, got %v", rec.EndDate)
	}
	if got := len(records.achievements[rec.ID]); got != 1 {
		t.Fatalf("expected exact-deduped achievements, got %d", got)
	}
}

func TestReconcileWorkExperience_MatchesRecordCreatedInSameBatch(t *testing.T) {
	userID := uuid.New()
	records := newMemWorkHistoryRepo()
	uc := newReconcile(records, &memUserSkillRepo{})

	counts, err := uc.ReconcileWorkExperience(context.Background(), userID, []profile.WorkExperienceFact{
		{Company: "Initech", StartDate: "2021-02", EndDate: "2023-06", Achievements: []string{"Built pipeline"}},
		{Company: "Initech Inc", StartDate: "2021-02", EndDate: "2023-06", Achievements: []string{"Cut runtime in half"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counts.RecordsCreated != 1 {
		t.Fatalf("expected second fact to match the record from the first, got %+v", counts)
	}
	if counts.RecordsUpdated != 1 {
		t.Fatalf("expected 1 update, got %+v", counts)
	}

	stored, _ := records.FindByUserID(context.Background(), userID)
	if len(stored) != 1 {
		t.Fatalf("expected a single record, got %d", len(stored))
	}
	if got := len(records.achievements[stored[0].ID]); got != 2 {
		t.Fatalf("expected both achievements on the merged record, got %d", got)
	}
}

func TestReconcileWorkExperience_FactFailureIsIsolated(t *testing.T) {
	userID := uuid.New()
	records := newMemWorkHistoryRepo()
	uc := newReconcile(records, &memUserSkillRepo{})

	counts, err := uc.ReconcileWorkExperience(context.Background(), userID, []profile.WorkExperienceFact{
		{Company: "   ", StartDate: "2020-01"},
		{Company: "Hooli", StartDate: "2020-01"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.FactsFailed != 1 {
		t.Fatalf("expected 1 failed fact, got %d", counts.FactsFailed)
	}
	if counts.RecordsCreated != 1 {
		t.Fatalf("expected the good fact to land, got %+v", counts)
	}
	if counts.WorkExperienceProcessed != 2 {
		t.Fatalf("expected both facts counted, got %d", counts.WorkExperienceProcessed)
	}
}

func TestReconcileWorkExperience_SkipsAlreadyLinkedSkill(t *testing.T) {
	userID := uuid.New()
	otherRecord := uuid.New()

	records := newMemWorkHistoryRepo()
	userSkills := &memUserSkillRepo{}
	norm, skillRepo := newTestNormalizer()
	uc := NewReconcileUsecase(records, userSkills, norm, dedup.New(nil, zap.NewNop()), zap.NewNop())

	existing, err := skillRepo.Create(context.Background(), skill.Skill{Name: "Go", Category: skill.CategoryProgrammingLanguage})
	if err != nil {
		t.Fatalf("seed skill: %v", err)
	}
	userSkills.assignments = append(userSkills.assignments, skill.UserSkillAssignment{
		ID:            uuid.New(),
		UserID:        userID,
		SkillID:       existing.ID,
		Source:        skill.SourceOther,
		WorkHistoryID: &otherRecord,
	})

	counts, err := uc.ReconcileWorkExperience(context.Background(), userID, []profile.WorkExperienceFact{{
		Company:   "Hooli",
		StartDate: "2022-01",
		Skills:    []string{"Go"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.SkillsLinked != 0 {
		t.Fatalf("already linked skill should be skipped, got %d", counts.SkillsLinked)
	}
	if len(userSkills.assignments) != 1 {
		t.Fatalf("expected no new assignment, got %d", len(userSkills.assignments))
	}
	if *userSkills.assignments[0].WorkHistoryID != otherRecord {
		t.Fatalf("existing work history link must not be rewritten")
	}
}

func TestReconcileWorkExperience_FillsMissingWorkHistoryLink(t *testing.T) {
	userID := uuid.New()

	records := newMemWorkHistoryRepo()
	userSkills := &memUserSkillRepo{}
	norm, skillRepo := newTestNormalizer()
	uc := NewReconcileUsecase(records, userSkills, norm, dedup.New(nil, zap.NewNop()), zap.NewNop())

	existing, err := skillRepo.Create(context.Background(), skill.Skill{Name: "Go", Category: skill.CategoryProgrammingLanguage})
	if err != nil {
		t.Fatalf("seed skill: %v", err)
	}
	userSkills.assignments = append(userSkills.assignments, skill.UserSkillAssignment{
		ID:      uuid.New(),
		UserID:  userID,
		SkillID: existing.ID,
		Source:  skill.SourceOther,
	})

	if _, err := uc.ReconcileWorkExperience(context.Background(), userID, []profile.WorkExperienceFact{{
		Company:   "Hooli",
		StartDate: "2022-01",
		Skills:    []string{"Go"},
	}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if userSkills.assignments[0].WorkHistoryID == nil {
		t.Fatalf("expected missing work history link to be filled")
	}
}

func TestReconcileEducation_LinksSkillsWithoutRecord(t *testing.T) {
	userID := uuid.New()
	records := newMemWorkHistoryRepo()
	userSkills := &memUserSkillRepo{}
	uc := newReconcile(records, userSkills)

	linked, err := uc.ReconcileEducation(context.Background(), userID, []profile.EducationFact{{
		Institution: "State University",
		Degree:      "BSc",
		Field:       "Computer Science",
		Skills:      []string{"Python", "SQL"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if linked != 2 {
		t.Fatalf("expected 2 linked skills, got %d", linked)
	}

	assignments, _ := userSkills.FindByUserID(context.Background(), userID)
	for _, a := range assignments {
		if a.Source != skill.SourceEducation {
			t.Fatalf("expected education source, got %q", a.Source)
		}
		if a.WorkHistoryID != nil {
			t.Fatalf("education assignments must not reference work history")
		}
	}
}

func TestReconcileWorkExperience_InvalidUser(t *testing.T) {
	uc := newReconcile(newMemWorkHistoryRepo(), &memUserSkillRepo{})
	if _, err := uc.ReconcileWorkExperience(context.Background(), uuid.Nil, nil); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
