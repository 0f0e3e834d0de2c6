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

type PostgresResourceRepository struct {
	db *sqlx.DB
}

func NewPostgresResourceRepository(db *sqlx.DB) *PostgresResourceRepository {
	return &PostgresResourceRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresResourceRepository) scanRow(row scannable) (*domain.Resource, error) {
	var res domain.Resource

	err := row.Scan(
		&res.ID, &res.UserID, &res.Title, &res.Content,
		pq.Array(&res.Tags),
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *PostgresResourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	query := `
		INSERT INTO resources (id, user_id, title, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		resource.ID, resource.UserID, resource.Title, resource.Content,
		pq.Array(resource.Tags),
		resource.CreatedAt, resource.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: create resource failed: %w", err)
	}

	return nil
}

func (r *PostgresResourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM resources WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	resource, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("repository: get resource failed: %w", err)
	}

	return resource, nil
}

func (r *PostgresResourceRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Resource, error) {
	query := `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM resources
		WHERE user_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list resources failed: %w", err)
	}
	defer rows.Close()

	var resources []*domain.Resource

	for rows.Next() {
		resource, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: resource row scan failed: %w", err)
		}
		resources = append(resources, resource)
	}

	return resources, rows.Err()
}

func (r *PostgresResourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	query := `
		UPDATE resources
		SET title = $1, content = $2, tags = $3, updated_at = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		resource.Title, resource.Content, pq.Array(resource.Tags),
		resource.UpdatedAt, resource.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: update resource failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrResourceNotFound
	}

	return nil
}

func (r *PostgresResourceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete resource failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrResourceNotFound
	}

	return nil
}
