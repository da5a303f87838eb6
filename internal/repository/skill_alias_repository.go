package repository

import (
	"context"
	"errors"

	"profile-sync/internal/database"
	"profile-sync/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAliasNotFound = errors.New("alias not found")

type SkillAliasRepository interface {
	// FindByAlias resolves an alias string (case-insensitively) to its entry.
	FindByAlias(ctx context.Context, alias string) (skill.Alias, error)
	// Insert adds an alias for a skill. It is a no-op when the alias string
	// already exists, regardless of owner; it reports whether a row was
	// written.
	Insert(ctx context.Context, skillID uuid.UUID, alias string) (bool, error)
	ListBySkill(ctx context.Context, skillID uuid.UUID) ([]skill.Alias, error)
}

type PostgresSkillAliasRepository struct {
	db database.DB
}

func NewPostgresSkillAliasRepository(db database.DB) *PostgresSkillAliasRepository {
	return &PostgresSkillAliasRepository{db: db}
}

func (r *PostgresSkillAliasRepository) FindByAlias(ctx context.Context, alias string) (skill.Alias, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, skill_id, alias FROM skill_aliases WHERE LOWER(alias) = LOWER($1)`,
		alias,
	)
	var a skill.Alias
	if err := row.Scan(&a.ID, &a.SkillID, &a.Alias); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Alias{}, ErrAliasNotFound
		}
		return skill.Alias{}, err
	}
	return a, nil
}

func (r *PostgresSkillAliasRepository) Insert(ctx context.Context, skillID uuid.UUID, alias string) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO skill_aliases (id, skill_id, alias)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (LOWER(alias)) DO NOTHING`,
		uuid.New(), skillID, alias,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresSkillAliasRepository) ListBySkill(ctx context.Context, skillID uuid.UUID) ([]skill.Alias, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, skill_id, alias FROM skill_aliases WHERE skill_id = $1 ORDER BY alias ASC`,
		skillID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Alias, 0)
	for rows.Next() {
		var a skill.Alias
		if err := rows.Scan(&a.ID, &a.SkillID, &a.Alias); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
