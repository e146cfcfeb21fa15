package services

import (
	"context"

	"github.com/google/uuid"

	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
)

type CreateInteractionRequest struct {
	CaseID uuid.UUID `json:"case_id"`
	Kind   string    `json:"kind"`
	Body   string    `json:"body"`
}

type InteractionService interface {
	Create(ctx context.Context, identity *models.Identity, req *CreateInteractionRequest) (*models.Interaction, error)
	Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error
	ListByCase(ctx context.Context, identity *models.Identity, caseID uuid.UUID, limit, offset int) ([]*models.Interaction, error)
}

type interactionService struct {
	interactionRepo repositories.InteractionRepository
	caseSvc         CaseService
}

func NewInteractionService(interactionRepo repositories.InteractionRepository, caseSvc CaseService) InteractionService {
	return &interactionService{interactionRepo: interactionRepo, caseSvc: caseSvc}
}

// Create logs an interaction on a case. Access follows the case: whoever can
// see the case can log against it, and the interaction inherits the case's
// workspace binding.
func (s *interactionService) Create(ctx context.Context, identity *models.Identity, req *CreateInteractionRequest) (*models.Interaction, error) {
	kase, err := s.caseSvc.GetByID(ctx, identity, req.CaseID)
	if err != nil {
		return nil, err
	}
	if err := common.ValidateInteractionKind(req.Kind); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Body, "body"); err != nil {
		return nil, err
	}

	interaction := &models.Interaction{
		ID:          uuid.New(),
		CaseID:      kase.ID,
		WorkspaceID: kase.WorkspaceID,
		AuthorID:    identity.UserID,
		Kind:        req.Kind,
		Body:        req.Body,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, err
	}
	return interaction, nil
}

func (s *interactionService) Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}
	interaction, err := s.interactionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireResourceAccess(identity, interaction.WorkspaceID); err != nil {
		return err
	}
	// Only the author or a superuser may remove an interaction.
	if interaction.AuthorID != identity.UserID && !identity.IsSuperuser() {
		return ErrForbidden
	}
	return s.interactionRepo.Delete(ctx, id)
}

func (s *interactionService) ListByCase(ctx context.Context, identity *models.Identity, caseID uuid.UUID, limit, offset int) ([]*models.Interaction, error) {
	if _, err := s.caseSvc.GetByID(ctx, identity, caseID); err != nil {
		return nil, err
	}
	return s.interactionRepo.ListByCase(ctx, caseID, limit, offset)
}
