package repository

import (
	"context"
	"errors"

	"profile-sync/internal/database"
	"profile-sync/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	// FindByNameOrAlias matches case-insensitively against canonical names
	// and the alias table.
	FindByNameOrAlias(ctx context.Context, name string) (skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
	List(ctx context.Context) ([]skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, COALESCE(description, ''), created_at
		 FROM skills WHERE id = $1`,
		id,
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) FindByNameOrAlias(ctx context.Context, name string) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT s.id, s.name, s.category, COALESCE(s.description, ''), s.created_at
		 FROM skills s
		 WHERE LOWER(s.name) = LOWER($1)
		 UNION
		 SELECT s.id, s.name, s.category, COALESCE(s.description, ''), s.created_at
		 FROM skills s
		 JOIN skill_aliases a ON a.skill_id = s.id
		 WHERE LOWER(a.alias) = LOWER($1)
		 LIMIT 1`,
		name,
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category, description)
		 VALUES ($1, $2, $3, NULLIF($4, ''))
		 RETURNING created_at`,
		s.ID, s.Name, string(s.Category), s.Description,
	)
	if err := row.Scan(&s.CreatedAt); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, COALESCE(description, ''), created_at
		 FROM skills ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		var category string
		if err := rows.Scan(&s.ID, &s.Name, &category, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Category = skill.Category(category)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSkill(row database.Row) (skill.Skill, error) {
	var s skill.Skill
	var category string
	if err := row.Scan(&s.ID, &s.Name, &category, &s.Description, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	s.Category = skill.Category(category)
	return s, nil
}
