package repository

import (
	"context"
	"errors"
	"fmt"

	"profile-sync/internal/database"
	"profile-sync/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrWorkHistoryNotFound = errors.New("work history record not found")

type WorkHistoryRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]profile.WorkHistoryRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (profile.WorkHistoryRecord, error)
	ListAchievements(ctx context.Context, workHistoryID uuid.UUID) ([]profile.WorkAchievement, error)
	// CreateWithAchievements inserts a new record and its achievements in one
	// transaction.
	CreateWithAchievements(ctx context.Context, rec profile.WorkHistoryRecord, achievements []string) (profile.WorkHistoryRecord, error)
	// UpdateAndReplaceAchievements updates the record's mutable fields and
	// replaces its full achievement set (delete-all, re-insert) in one
	// transaction, so the pair can never be observed half-applied.
	UpdateAndReplaceAchievements(ctx context.Context, rec profile.WorkHistoryRecord, achievements []string) error
	// ReplaceAchievements swaps the achievement set without touching the
	// record itself. Used by the standalone deduplication entry point.
	ReplaceAchievements(ctx context.Context, workHistoryID uuid.UUID, achievements []string) error
}

type PostgresWorkHistoryRepository struct {
	db database.DB
}

func NewPostgresWorkHistoryRepository(db database.DB) *PostgresWorkHistoryRepository {
	return &PostgresWorkHistoryRepository{db: db}
}

const workHistoryColumns = `id, user_id, company, COALESCE(job_title, ''), start_date, end_date, created_at`

func (r *PostgresWorkHistoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]profile.WorkHistoryRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+workHistoryColumns+` FROM work_history WHERE user_id = $1 ORDER BY start_date ASC NULLS LAST, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.WorkHistoryRecord, 0)
	for rows.Next() {
		var rec profile.WorkHistoryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Company, &rec.JobTitle, &rec.StartDate, &rec.EndDate, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresWorkHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (profile.WorkHistoryRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+workHistoryColumns+` FROM work_history WHERE id = $1`,
		id,
	)
	var rec profile.WorkHistoryRecord
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Company, &rec.JobTitle, &rec.StartDate, &rec.EndDate, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.WorkHistoryRecord{}, ErrWorkHistoryNotFound
		}
		return profile.WorkHistoryRecord{}, err
	}
	return rec, nil
}

func (r *PostgresWorkHistoryRepository) ListAchievements(ctx context.Context, workHistoryID uuid.UUID) ([]profile.WorkAchievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, work_history_id, description, created_at
		 FROM work_achievements WHERE work_history_id = $1 ORDER BY created_at ASC, id ASC`,
		workHistoryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.WorkAchievement, 0)
	for rows.Next() {
		var a profile.WorkAchievement
		if err := rows.Scan(&a.ID, &a.WorkHistoryID, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresWorkHistoryRepository) CreateWithAchievements(ctx context.Context, rec profile.WorkHistoryRecord, achievements []string) (profile.WorkHistoryRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return profile.WorkHistoryRecord{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	row := tx.QueryRow(ctx,
		`INSERT INTO work_history (id, user_id, company, job_title, start_date, end_date)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		 RETURNING created_at`,
		rec.ID, rec.UserID, rec.Company, rec.JobTitle, rec.StartDate, rec.EndDate,
	)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return profile.WorkHistoryRecord{}, err
	}

	if err := insertAchievements(ctx, tx, rec.ID, achievements); err != nil {
		return profile.WorkHistoryRecord{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return profile.WorkHistoryRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

func (r *PostgresWorkHistoryRepository) UpdateAndReplaceAchievements(ctx context.Context, rec profile.WorkHistoryRecord, achievements []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE work_history SET job_title = NULLIF($2, ''), start_date = $3, end_date = $4 WHERE id = $1`,
		rec.ID, rec.JobTitle, rec.StartDate, rec.EndDate,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWorkHistoryNotFound
	}

	if err := replaceAchievements(ctx, tx, rec.ID, achievements); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresWorkHistoryRepository) ReplaceAchievements(ctx context.Context, workHistoryID uuid.UUID, achievements []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := replaceAchievements(ctx, tx, workHistoryID, achievements); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func replaceAchievements(ctx context.Context, tx database.Tx, workHistoryID uuid.UUID, achievements []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM work_achievements WHERE work_history_id = $1`, workHistoryID); err != nil {
		return err
	}
	return insertAchievements(ctx, tx, workHistoryID, achievements)
}

func insertAchievements(ctx context.Context, tx database.Tx, workHistoryID uuid.UUID, achievements []string) error {
	for _, text := range achievements {
		if _, err := tx.Exec(ctx,
			`INSERT INTO work_achievements (id, work_history_id, description) VALUES ($1, $2, $3)`,
			uuid.New(), workHistoryID, text,
		); err != nil {
			return err
		}
	}
	return nil
}
