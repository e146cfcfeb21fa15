package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"motocase/internal/caching"
	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
)

const workspaceCacheTTL = 10 * time.Minute

type CreateWorkspaceRequest struct {
	Name      string     `json:"name"`
	ContactID *uuid.UUID `json:"contact_id"`
	Kind      string     `json:"kind"`
}

type UpdateWorkspaceRequest struct {
	ID        uuid.UUID
	Name      string     `json:"name"`
	ContactID *uuid.UUID `json:"contact_id"`
	Kind      string     `json:"kind"`
}

type WorkspaceService interface {
	Create(ctx context.Context, identity *models.Identity, req *CreateWorkspaceRequest) (*models.Workspace, error)
	GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Workspace, error)
	Update(ctx context.Context, identity *models.Identity, req *UpdateWorkspaceRequest) error
	Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error
	List(ctx context.Context, identity *models.Identity, limit, offset int) ([]*models.Workspace, error)
}

type workspaceService struct {
	workspaceRepo repositories.WorkspaceRepository
	cacheSvc      caching.CacheService
}

func NewWorkspaceService(workspaceRepo repositories.WorkspaceRepository, cacheSvc caching.CacheService) WorkspaceService {
	return &workspaceService{workspaceRepo: workspaceRepo, cacheSvc: cacheSvc}
}

func (s *workspaceService) Create(ctx context.Context, identity *models.Identity, req *CreateWorkspaceRequest) (*models.Workspace, error) {
	if err := RequireSuperuser(identity); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}

	workspace := &models.Workspace{
		ID:        uuid.New(),
		Name:      req.Name,
		ContactID: req.ContactID,
		Kind:      req.Kind,
	}
	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *workspaceService) GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Workspace, error) {
	if err := RequireResourceAccess(identity, &id); err != nil {
		return nil, err
	}

	if cached, err := s.cacheSvc.GetWorkspace(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetWorkspace(ctx, workspace, workspaceCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache workspace")
	}
	return workspace, nil
}

func (s *workspaceService) Update(ctx context.Context, identity *models.Identity, req *UpdateWorkspaceRequest) error {
	if err := RequireResourceAccess(identity, &req.ID); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return err
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	workspace.Name = req.Name
	workspace.ContactID = req.ContactID
	workspace.Kind = req.Kind

	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return err
	}
	if err := s.cacheSvc.DeleteWorkspace(ctx, req.ID); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate workspace cache")
	}
	return nil
}

func (s *workspaceService) Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error {
	if err := RequireSuperuser(identity); err != nil {
		return err
	}
	if err := s.workspaceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cacheSvc.DeleteWorkspace(ctx, id); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate workspace cache")
	}
	return nil
}

// List returns all workspaces for superusers (the "Main" view) and only the
// caller's own workspace for everyone else.
func (s *workspaceService) List(ctx context.Context, identity *models.Identity, limit, offset int) ([]*models.Workspace, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}

	if identity.IsSuperuser() {
		return s.workspaceRepo.List(ctx, limit, offset)
	}

	if identity.WorkspaceID == nil {
		return nil, nil
	}
	workspace, err := s.GetByID(ctx, identity, *identity.WorkspaceID)
	if err != nil {
		return nil, err
	}
	return []*models.Workspace{workspace}, nil
}
