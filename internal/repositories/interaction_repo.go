package repositories

import (
	"context"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *models.Interaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Interaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCase(ctx context.Context, caseID uuid.UUID, limit, offset int) ([]*models.Interaction, error)
}

type interactionRepo struct {
	db DB
}

func NewInteractionRepo(db DB) InteractionRepository {
	return &interactionRepo{db: db}
}

func (r *interactionRepo) Create(ctx context.Context, interaction *models.Interaction) error {
	query := `
		INSERT INTO interactions (id, case_id, workspace_id, author_id, kind, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, interaction.ID, interaction.CaseID, interaction.WorkspaceID,
		interaction.AuthorID, interaction.Kind, interaction.Body)
	return err
}

func (r *interactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Interaction, error) {
	interaction := &models.Interaction{}
	query := `
		SELECT id, case_id, workspace_id, author_id, kind, body, created_at
		FROM interactions
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&interaction.ID, &interaction.CaseID,
		&interaction.WorkspaceID, &interaction.AuthorID, &interaction.Kind,
		&interaction.Body, &interaction.CreatedAt)
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

func (r *interactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM interactions WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *interactionRepo) ListByCase(ctx context.Context, caseID uuid.UUID, limit, offset int) ([]*models.Interaction, error) {
	query := `
		SELECT id, case_id, workspace_id, author_id, kind, body, created_at
		FROM interactions
		WHERE case_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, caseID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []*models.Interaction
	for rows.Next() {
		interaction := &models.Interaction{}
		if err := rows.Scan(&interaction.ID, &interaction.CaseID, &interaction.WorkspaceID,
			&interaction.AuthorID, &interaction.Kind, &interaction.Body, &interaction.CreatedAt); err != nil {
			return nil, err
		}
		interactions = append(interactions, interaction)
	}
	return interactions, rows.Err()
}
