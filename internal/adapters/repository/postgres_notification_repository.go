package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/realmquest/engine/internal/core/domain"
)

type PostgresNotificationRepository struct {
	db *sqlx.DB
}

func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, sender_id, type, title, data, created_at)
		VALUES (:id, :user_id, :sender_id, :type, :title, :data, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return fmt.Errorf("repository: create notification failed: %w", err)
	}

	return nil
}

func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	var notification domain.Notification

	err := r.db.GetContext(ctx, &notification, `SELECT * FROM notifications WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("repository: get notification failed: %w", err)
	}

	return &notification, nil
}

func (r *PostgresNotificationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	notifications := []*domain.Notification{}

	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &notifications, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list notifications failed: %w", err)
	}

	return notifications, nil
}

func (r *PostgresNotificationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete notification failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}
