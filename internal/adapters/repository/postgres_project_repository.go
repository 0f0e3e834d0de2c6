package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/realmquest/engine/internal/core/domain"
)

type PostgresProjectRepository struct {
	db *sqlx.DB
}

func NewPostgresProjectRepository(db *sqlx.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

// Create inserts the project and its milestones in one transaction, so a
// half-created quest never becomes visible.
func (r *PostgresProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin tx failed: %w", err)
	}
	defer tx.Rollback()

	projectQuery := `
		INSERT INTO projects (
			id, user_id, title, linked_area_id, difficulty, xp_reward,
			deadline, is_completed, created_at
		) VALUES (
			:id, :user_id, :title, :linked_area_id, :difficulty, :xp_reward,
			:deadline, FALSE, :created_at
		)`

	if _, err := tx.NamedExecContext(ctx, projectQuery, p); err != nil {
		return fmt.Errorf("repository: insert project failed: %w", err)
	}

	milestoneQuery := `
		INSERT INTO milestones (id, project_id, text, is_done, position)
		VALUES (:id, :project_id, :text, :is_done, :position)`

	for i := range p.Milestones {
		if _, err := tx.NamedExecContext(ctx, milestoneQuery, p.Milestones[i]); err != nil {
			return fmt.Errorf("repository: insert milestone failed: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project

	query := `SELECT * FROM projects WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("repository: get project failed: %w", err)
	}

	if err := r.loadMilestones(ctx, []*domain.Project{&p}); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PostgresProjectRepository) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Project, error) {
	projects := []*domain.Project{}

	query := `
		SELECT * FROM projects
		WHERE user_id = $1 AND is_completed = FALSE
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &projects, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list projects failed: %w", err)
	}

	if err := r.loadMilestones(ctx, projects); err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *PostgresProjectRepository) loadMilestones(ctx context.Context, projects []*domain.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]string, 0, len(projects))
	byID := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	query, args, err := sqlx.In(`
		SELECT * FROM milestones
		WHERE project_id IN (?)
		ORDER BY position ASC`, ids)
	if err != nil {
		return fmt.Errorf("repository: building milestone query failed: %w", err)
	}

	milestones := []domain.Milestone{}
	if err := r.db.SelectContext(ctx, &milestones, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("repository: load milestones failed: %w", err)
	}

	for _, m := range milestones {
		p := byID[m.ProjectID]
		p.Milestones = append(p.Milestones, m)
	}

	return nil
}

// MarkCompleted flips the completion flag only when it is still unset, so
// the reward sequence runs at most once per quest.
func (r *PostgresProjectRepository) MarkCompleted(ctx context.Context, id string) error {
	query := `
		UPDATE projects
		SET is_completed = TRUE
		WHERE id = $1 AND is_completed = FALSE`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("repository: mark project completed failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var count int
		if checkErr := r.db.GetContext(ctx, &count, `SELECT count(*) FROM projects WHERE id = $1`, id); checkErr != nil {
			return fmt.Errorf("repository: existence check failed: %w", checkErr)
		}
		if count == 0 {
			return domain.ErrProjectNotFound
		}
		return domain.ErrProjectAlreadyCompleted
	}

	return nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	// Milestones go with the project via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete project failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProjectNotFound
	}

	return nil
}

func (r *PostgresProjectRepository) GetMilestone(ctx context.Context, milestoneID string) (*domain.Milestone, error) {
	var m domain.Milestone

	err := r.db.GetContext(ctx, &m, `SELECT * FROM milestones WHERE id = $1`, milestoneID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("repository: get milestone failed: %w", err)
	}

	return &m, nil
}

func (r *PostgresProjectRepository) SetMilestoneDone(ctx context.Context, milestoneID string, done bool) (*domain.Milestone, error) {
	var m domain.Milestone

	query := `
		UPDATE milestones
		SET is_done = $1
		WHERE id = $2
		RETURNING id, project_id, text, is_done, position`

	err := r.db.GetContext(ctx, &m, query, done, milestoneID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("repository: toggle milestone failed: %w", err)
	}

	return &m, nil
}
