package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/realmquest/engine/internal/core/domain"
)

type PostgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, username, avatar_url,
			level, current_xp, xp_to_next_level,
			strength, intellect, charisma, wealth,
			created_at, updated_at
		) VALUES (
			:id, :username, :avatar_url,
			:level, :current_xp, :xp_to_next_level,
			:strength, :intellect, :charisma, :wealth,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// The self-healing read path can race with itself; the first
			// insert wins and the duplicate is harmless.
			return nil
		}
		return fmt.Errorf("repository: create profile failed: %w", err)
	}

	return nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile

	query := `SELECT * FROM profiles WHERE id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("repository: get profile failed: %w", err)
	}

	return &profile, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE profiles SET
			username = :username,
			avatar_url = :avatar_url,
			level = :level,
			current_xp = :current_xp,
			xp_to_next_level = :xp_to_next_level,
			strength = :strength,
			intellect = :intellect,
			charisma = :charisma,
			wealth = :wealth,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("repository: update profile failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}

	return nil
}

func (r *PostgresProfileRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Profile, error) {
	profiles := []*domain.Profile{}

	sqlQuery := `
		SELECT * FROM profiles
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username ASC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &profiles, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: profile search failed: %w", err)
	}

	return profiles, nil
}

func (r *PostgresProfileRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM profiles WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("repository: building profile batch query failed: %w", err)
	}

	profiles := []*domain.Profile{}

	err = r.db.SelectContext(ctx, &profiles, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("repository: profile batch load failed: %w", err)
	}

	return profiles, nil
}
