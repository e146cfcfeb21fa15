package services

import (
	"context"

	"github.com/google/uuid"

	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
)

type CreateCaseRequest struct {
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	BikeID      *uuid.UUID `json:"bike_id"`
	ContactID   *uuid.UUID `json:"contact_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

type UpdateCaseRequest struct {
	ID          uuid.UUID
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	BikeID      *uuid.UUID `json:"bike_id"`
	ContactID   *uuid.UUID `json:"contact_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
}

type CaseService interface {
	Create(ctx context.Context, identity *models.Identity, req *CreateCaseRequest) (*models.Case, error)
	GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Case, error)
	Update(ctx context.Context, identity *models.Identity, req *UpdateCaseRequest) error
	Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error
	List(ctx context.Context, identity *models.Identity, workspaceID *uuid.UUID, limit, offset int) ([]*models.Case, error)
}

type caseService struct {
	caseRepo repositories.CaseRepository
}

func NewCaseService(caseRepo repositories.CaseRepository) CaseService {
	return &caseService{caseRepo: caseRepo}
}

func (s *caseService) Create(ctx context.Context, identity *models.Identity, req *CreateCaseRequest) (*models.Case, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return nil, err
	}

	workspaceID := req.WorkspaceID
	if !identity.IsSuperuser() {
		// Workspace users can only file cases into their own workspace.
		workspaceID = identity.WorkspaceID
	}

	kase := &models.Case{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		BikeID:      req.BikeID,
		ContactID:   req.ContactID,
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.CaseStatusOpen,
	}
	if err := s.caseRepo.Create(ctx, kase); err != nil {
		return nil, err
	}
	return kase, nil
}

func (s *caseService) GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Case, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	kase, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireResourceAccess(identity, kase.WorkspaceID); err != nil {
		return nil, err
	}
	return kase, nil
}

func (s *caseService) Update(ctx context.Context, identity *models.Identity, req *UpdateCaseRequest) error {
	kase, err := s.GetByID(ctx, identity, req.ID)
	if err != nil {
		return err
	}
	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return err
	}
	if req.Status != "" {
		if err := common.ValidateCaseStatus(req.Status); err != nil {
			return err
		}
		kase.Status = req.Status
	}

	// Reassigning a case to another workspace is a superuser operation.
	if !workspaceIDsEqual(kase.WorkspaceID, req.WorkspaceID) {
		if err := RequireSuperuser(identity); err != nil {
			return err
		}
		kase.WorkspaceID = req.WorkspaceID
	}

	kase.BikeID = req.BikeID
	kase.ContactID = req.ContactID
	kase.AssignedTo = req.AssignedTo
	kase.Title = req.Title
	kase.Description = req.Description

	return s.caseRepo.Update(ctx, kase)
}

func (s *caseService) Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, identity, id); err != nil {
		return err
	}
	return s.caseRepo.Delete(ctx, id)
}

func (s *caseService) List(ctx context.Context, identity *models.Identity, workspaceID *uuid.UUID, limit, offset int) ([]*models.Case, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	return s.caseRepo.List(ctx, ScopeWorkspace(identity, workspaceID), limit, offset)
}

func workspaceIDsEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
