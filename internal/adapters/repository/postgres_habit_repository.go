package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/realmquest/engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
		INSERT INTO habits (
			id, user_id, title, linked_area_id, xp_reward, target_minutes,
			streak, best_streak, last_completed_date,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :title, :linked_area_id, :xp_reward, :target_minutes,
			:streak, :best_streak, :last_completed_date,
			1, :created_at, :updated_at, NULL
		)`

	_, err := r.db.NamedExecContext(ctx, query, h)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	h.Version = 1
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit

	query := `SELECT * FROM habits WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &h, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}

	query := `
		SELECT * FROM habits
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &habits, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
		UPDATE habits SET
			title = $1, linked_area_id = $2, xp_reward = $3, target_minutes = $4,
			streak = $5, best_streak = $6, last_completed_date = $7,
			updated_at = NOW(), version = version + 1
		WHERE id = $8 AND version = $9 AND deleted_at IS NULL
		RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		h.Title, h.LinkedAreaID, h.XPReward, h.TargetMinutes,
		h.Streak, h.BestStreak, h.LastCompletedDate,
		h.ID, h.Version,
	)

	err := row.Scan(&h.Version, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var count int
			existsQuery := `SELECT count(*) FROM habits WHERE id = $1 AND deleted_at IS NULL`
			if checkErr := r.db.GetContext(ctx, &count, existsQuery, h.ID); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}

			if count == 0 {
				return domain.ErrHabitNotFound
			}
			return domain.ErrHabitConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE habits
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
