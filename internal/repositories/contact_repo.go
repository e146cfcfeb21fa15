package repositories

import (
	"context"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.Contact, error)
}

type contactRepo struct {
	db DB
}

func NewContactRepo(db DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (id, workspace_id, name, email, phone, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, contact.ID, contact.WorkspaceID, contact.Name,
		contact.Email, contact.Phone, contact.Kind)
	return err
}

func (r *contactRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact := &models.Contact{}
	query := `
		SELECT id, workspace_id, name, email, phone, kind, created_at, updated_at
		FROM contacts
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&contact.ID, &contact.WorkspaceID, &contact.Name,
		&contact.Email, &contact.Phone, &contact.Kind, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *contactRepo) Update(ctx context.Context, contact *models.Contact) error {
	query := `
		UPDATE contacts
		SET workspace_id = $1, name = $2, email = $3, phone = $4, kind = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, contact.WorkspaceID, contact.Name, contact.Email,
		contact.Phone, contact.Kind, contact.ID)
	return err
}

func (r *contactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM contacts WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *contactRepo) List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.Contact, error) {
	query := `
		SELECT id, workspace_id, name, email, phone, kind, created_at, updated_at
		FROM contacts
		WHERE ($1::uuid IS NULL OR workspace_id = $1 OR workspace_id IS NULL)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact := &models.Contact{}
		if err := rows.Scan(&contact.ID, &contact.WorkspaceID, &contact.Name, &contact.Email,
			&contact.Phone, &contact.Kind, &contact.CreatedAt, &contact.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}
