package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/realmquest/engine/internal/core/domain"
)

type PostgresFriendshipRepository struct {
	db *sqlx.DB
}

func NewPostgresFriendshipRepository(db *sqlx.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

func (r *PostgresFriendshipRepository) Create(ctx context.Context, friendship *domain.Friendship) error {
	query := `
		INSERT INTO friendships (id, user_id, friend_id, status, created_at)
		VALUES (:id, :user_id, :friend_id, :status, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, friendship)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrFriendshipExists
		}
		return fmt.Errorf("repository: create friendship failed: %w", err)
	}

	return nil
}

func (r *PostgresFriendshipRepository) GetByID(ctx context.Context, id string) (*domain.Friendship, error) {
	var friendship domain.Friendship

	err := r.db.GetContext(ctx, &friendship, `SELECT * FROM friendships WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("repository: get friendship failed: %w", err)
	}

	return &friendship, nil
}

func (r *PostgresFriendshipRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	friendships := []*domain.Friendship{}

	query := `
		SELECT * FROM friendships
		WHERE user_id = $1 OR friend_id = $1
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &friendships, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list friendships failed: %w", err)
	}

	return friendships, nil
}

func (r *PostgresFriendshipRepository) Update(ctx context.Context, friendship *domain.Friendship) error {
	query := `UPDATE friendships SET status = :status WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, friendship)
	if err != nil {
		return fmt.Errorf("repository: update friendship failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrFriendshipNotFound
	}

	return nil
}

func (r *PostgresFriendshipRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM friendships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete friendship failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrFriendshipNotFound
	}

	return nil
}
