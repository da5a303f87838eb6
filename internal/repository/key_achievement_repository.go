package repository

import (
	"context"
	"fmt"

	"profile-sync/internal/database"
	"profile-sync/internal/domain/profile"

	"github.com/google/uuid"
)

type KeyAchievementRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]profile.KeyAchievement, error)
	// Replace swaps the user's full key-achievement set in one transaction.
	Replace(ctx context.Context, userID uuid.UUID, contents []string) error
}

type PostgresKeyAchievementRepository struct {
	db database.DB
}

func NewPostgresKeyAchievementRepository(db database.DB) *PostgresKeyAchievementRepository {
	return &PostgresKeyAchievementRepository{db: db}
}

func (r *PostgresKeyAchievementRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]profile.KeyAchievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, content, created_at
		 FROM key_achievements WHERE user_id = $1 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.KeyAchievement, 0)
	for rows.Next() {
		var a profile.KeyAchievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresKeyAchievementRepository) Replace(ctx context.Context, userID uuid.UUID, contents []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM key_achievements WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, content := range contents {
		if _, err := tx.Exec(ctx,
			`INSERT INTO key_achievements (id, user_id, content) VALUES ($1, $2, $3)`,
			uuid.New(), userID, content,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
