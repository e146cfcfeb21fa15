package repositories

import (
	"context"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type CaseRepository interface {
	Create(ctx context.Context, kase *models.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	Update(ctx context.Context, kase *models.Case) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.Case, error)
}

type caseRepo struct {
	db DB
}

func NewCaseRepo(db DB) CaseRepository {
	return &caseRepo{db: db}
}

const caseColumns = `id, workspace_id, bike_id, contact_id, assigned_to, title, description, status, created_at, updated_at`

func scanCase(row interface{ Scan(dest ...any) error }) (*models.Case, error) {
	kase := &models.Case{}
	err := row.Scan(&kase.ID, &kase.WorkspaceID, &kase.BikeID, &kase.ContactID, &kase.AssignedTo,
		&kase.Title, &kase.Description, &kase.Status, &kase.CreatedAt, &kase.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return kase, nil
}

func (r *caseRepo) Create(ctx context.Context, kase *models.Case) error {
	query := `
		INSERT INTO cases (id, workspace_id, bike_id, contact_id, assigned_to, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, kase.ID, kase.WorkspaceID, kase.BikeID, kase.ContactID,
		kase.AssignedTo, kase.Title, kase.Description, kase.Status)
	return err
}

func (r *caseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`
	return scanCase(r.db.QueryRow(ctx, query, id))
}

func (r *caseRepo) Update(ctx context.Context, kase *models.Case) error {
	query := `
		UPDATE cases
		SET workspace_id = $1, bike_id = $2, contact_id = $3, assigned_to = $4,
		    title = $5, description = $6, status = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query, kase.WorkspaceID, kase.BikeID, kase.ContactID,
		kase.AssignedTo, kase.Title, kase.Description, kase.Status, kase.ID)
	return err
}

func (r *caseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cases WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// List returns cases visible to the given workspace. A nil workspaceID means
// no scoping (superuser "Main" view); otherwise rows from the workspace plus
// globally visible rows (workspace_id IS NULL) are returned.
func (r *caseRepo) List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.Case, error) {
	query := `
		SELECT ` + caseColumns + `
		FROM cases
		WHERE ($1::uuid IS NULL OR workspace_id = $1 OR workspace_id IS NULL)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.Case
	for rows.Next() {
		kase, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, kase)
	}
	return cases, rows.Err()
}
