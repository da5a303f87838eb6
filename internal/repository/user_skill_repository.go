package repository

import (
	"context"
	"errors"

	"profile-sync/internal/database"
	"profile-sync/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrAssignmentNotFound = errors.New("user skill assignment not found")
	ErrAssignmentExists   = errors.New("user skill assignment already exists")
)

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkillAssignment, error)
	FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (skill.UserSkillAssignment, error)
	Create(ctx context.Context, a skill.UserSkillAssignment) (skill.UserSkillAssignment, error)
	// AttachWorkHistory back-references the work record a skill was learned
	// in, only when the assignment has no reference yet.
	AttachWorkHistory(ctx context.Context, assignmentID, workHistoryID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillColumns = `id, user_id, skill_id, proficiency_level, years_experience, source, COALESCE(note, ''), work_history_id, created_at`

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkillAssignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userSkillColumns+` FROM user_skills WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkillAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (skill.UserSkillAssignment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userSkillColumns+` FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.UserSkillAssignment{}, ErrAssignmentNotFound
		}
		return skill.UserSkillAssignment{}, err
	}
	return a, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, a skill.UserSkillAssignment) (skill.UserSkillAssignment, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, proficiency_level, years_experience, source, note, work_history_id)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
		 RETURNING created_at`,
		a.ID, a.UserID, a.SkillID, a.ProficiencyLevel, a.YearsExperience, string(a.Source), a.Note, a.WorkHistoryID,
	)
	if err := row.Scan(&a.CreatedAt); err != nil {
		if IsUniqueViolation(err) {
			return skill.UserSkillAssignment{}, ErrAssignmentExists
		}
		return skill.UserSkillAssignment{}, err
	}
	return a, nil
}

func (r *PostgresUserSkillRepository) AttachWorkHistory(ctx context.Context, assignmentID, workHistoryID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_skills SET work_history_id = $2 WHERE id = $1 AND work_history_id IS NULL`,
		assignmentID, workHistoryID,
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssignment(s scanner) (skill.UserSkillAssignment, error) {
	var a skill.UserSkillAssignment
	var source string
	if err := s.Scan(&a.ID, &a.UserID, &a.SkillID, &a.ProficiencyLevel, &a.YearsExperience, &source, &a.Note, &a.WorkHistoryID, &a.CreatedAt); err != nil {
		return skill.UserSkillAssignment{}, err
	}
	a.Source = skill.Source(source)
	return a, nil
}
