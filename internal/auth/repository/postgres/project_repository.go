package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ejifeanyi/lintra/internal/auth/domain"
	apperrors "github.com/ejifeanyi/lintra/internal/errors"
)

type PostgresProjectRepository struct {
	db DB
}

func NewPostgresProjectRepository(db DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `
		SELECT id, name, admin_id, created_at, updated_at
		FROM projects
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var project domain.Project
	err := row.Scan(&project.ID, &project.Name, &project.AdminID,
		&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by id: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT user_id FROM project_members WHERE project_id = $1 ORDER BY added_at;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load project members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan project member: %w", err)
		}
		project.UserIDs = append(project.UserIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project members: %w", err)
	}

	return &project, nil
}

// AddMember is idempotent: inserting an existing member is a no-op.
func (r *PostgresProjectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING;
	`, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to add project member: %w", err)
	}
	return nil
}

// RemoveMember is idempotent: deleting an absent member is a no-op.
func (r *PostgresProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2;
	`, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}
	return nil
}
