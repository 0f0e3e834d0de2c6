package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/realmquest/engine/internal/core/domain"
)

type PostgresAreaRepository struct {
	db *sqlx.DB
}

func NewPostgresAreaRepository(db *sqlx.DB) *PostgresAreaRepository {
	return &PostgresAreaRepository{db: db}
}

func (r *PostgresAreaRepository) Create(ctx context.Context, area *domain.Area) error {
	query := `
		INSERT INTO areas (id, user_id, title, associated_attribute, current_level, created_at)
		VALUES (:id, :user_id, :title, :associated_attribute, :current_level, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, area)
	if err != nil {
		return fmt.Errorf("repository: create area failed: %w", err)
	}

	return nil
}

func (r *PostgresAreaRepository) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	var area domain.Area

	err := r.db.GetContext(ctx, &area, `SELECT * FROM areas WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAreaNotFound
		}
		return nil, fmt.Errorf("repository: get area failed: %w", err)
	}

	return &area, nil
}

func (r *PostgresAreaRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Area, error) {
	areas := []*domain.Area{}

	query := `SELECT * FROM areas WHERE user_id = $1 ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &areas, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list areas failed: %w", err)
	}

	return areas, nil
}

func (r *PostgresAreaRepository) Update(ctx context.Context, area *domain.Area) error {
	query := `
		UPDATE areas
		SET title = :title, associated_attribute = :associated_attribute, current_level = :current_level
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, area)
	if err != nil {
		return fmt.Errorf("repository: update area failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAreaNotFound
	}

	return nil
}

func (r *PostgresAreaRepository) Delete(ctx context.Context, id string) error {
	// Habits and projects keep their linked_area_id pointing at nothing;
	// the services treat a missing area as "no attribute bonus".
	res, err := r.db.ExecContext(ctx, `DELETE FROM areas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete area failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAreaNotFound
	}

	return nil
}
