package repositories

import (
	"context"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *models.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error)
	Update(ctx context.Context, workspace *models.Workspace) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Workspace, error)
}

type workspaceRepo struct {
	db DB
}

func NewWorkspaceRepo(db DB) WorkspaceRepository {
	return &workspaceRepo{db: db}
}

func (r *workspaceRepo) Create(ctx context.Context, workspace *models.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, contact_id, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, workspace.ID, workspace.Name, workspace.ContactID, workspace.Kind)
	return err
}

func (r *workspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	workspace := &models.Workspace{}
	query := `
		SELECT id, name, contact_id, kind, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&workspace.ID, &workspace.Name, &workspace.ContactID,
		&workspace.Kind, &workspace.CreatedAt, &workspace.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

func (r *workspaceRepo) Update(ctx context.Context, workspace *models.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $1, contact_id = $2, kind = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, workspace.Name, workspace.ContactID, workspace.Kind, workspace.ID)
	return err
}

func (r *workspaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM workspaces WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *workspaceRepo) List(ctx context.Context, limit, offset int) ([]*models.Workspace, error) {
	query := `
		SELECT id, name, contact_id, kind, created_at, updated_at
		FROM workspaces
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*models.Workspace
	for rows.Next() {
		workspace := &models.Workspace{}
		if err := rows.Scan(&workspace.ID, &workspace.Name, &workspace.ContactID,
			&workspace.Kind, &workspace.CreatedAt, &workspace.UpdatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, workspace)
	}
	return workspaces, rows.Err()
}
