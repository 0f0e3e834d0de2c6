package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/realmquest/engine/internal/core/domain"
)

// PostgresArchiveRepository is append-only; there is no update or delete
// path by design of the interface.
type PostgresArchiveRepository struct {
	db *sqlx.DB
}

func NewPostgresArchiveRepository(db *sqlx.DB) *PostgresArchiveRepository {
	return &PostgresArchiveRepository{db: db}
}

func (r *PostgresArchiveRepository) Append(ctx context.Context, entry *domain.ArchiveEntry) error {
	query := `
		INSERT INTO archive_entries (id, user_id, original_id, title, type, completed_date)
		VALUES (:id, :user_id, :original_id, :title, :type, :completed_date)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("repository: append archive entry failed: %w", err)
	}

	return nil
}

func (r *PostgresArchiveRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.ArchiveEntry, error) {
	entries := []*domain.ArchiveEntry{}

	query := `
		SELECT * FROM archive_entries
		WHERE user_id = $1
		ORDER BY completed_date DESC`

	err := r.db.SelectContext(ctx, &entries, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list archive failed: %w", err)
	}

	return entries, nil
}
