package services

import (
	"context"

	"github.com/google/uuid"

	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
)

type CreateBikeRequest struct {
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	Plate       string     `json:"plate"`
	Model       string     `json:"model"`
	VIN         string     `json:"vin"`
	Status      string     `json:"status"`
}

type UpdateBikeRequest struct {
	ID          uuid.UUID
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	Plate       string     `json:"plate"`
	Model       string     `json:"model"`
	VIN         string     `json:"vin"`
	Status      string     `json:"status"`
}

type BikeService interface {
	Create(ctx context.Context, identity *models.Identity, req *CreateBikeRequest) (*models.Bike, error)
	GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Bike, error)
	Update(ctx context.Context, identity *models.Identity, req *UpdateBikeRequest) error
	Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error
	List(ctx context.Context, identity *models.Identity, workspaceID *uuid.UUID, limit, offset int) ([]*models.Bike, error)
}

type bikeService struct {
	bikeRepo repositories.BikeRepository
}

func NewBikeService(bikeRepo repositories.BikeRepository) BikeService {
	return &bikeService{bikeRepo: bikeRepo}
}

func (s *bikeService) Create(ctx context.Context, identity *models.Identity, req *CreateBikeRequest) (*models.Bike, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Plate, "plate"); err != nil {
		return nil, err
	}

	workspaceID := req.WorkspaceID
	if !identity.IsSuperuser() {
		workspaceID = identity.WorkspaceID
	}

	status := req.Status
	if status == "" {
		status = "available"
	}

	bike := &models.Bike{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Plate:       req.Plate,
		Model:       req.Model,
		VIN:         req.VIN,
		Status:      status,
	}
	if err := s.bikeRepo.Create(ctx, bike); err != nil {
		return nil, err
	}
	return bike, nil
}

func (s *bikeService) GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Bike, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	bike, err := s.bikeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireResourceAccess(identity, bike.WorkspaceID); err != nil {
		return nil, err
	}
	return bike, nil
}

func (s *bikeService) Update(ctx context.Context, identity *models.Identity, req *UpdateBikeRequest) error {
	bike, err := s.GetByID(ctx, identity, req.ID)
	if err != nil {
		return err
	}
	if err := common.ValidateRequiredString(req.Plate, "plate"); err != nil {
		return err
	}

	if !workspaceIDsEqual(bike.WorkspaceID, req.WorkspaceID) {
		if err := RequireSuperuser(identity); err != nil {
			return err
		}
		bike.WorkspaceID = req.WorkspaceID
	}

	bike.Plate = req.Plate
	bike.Model = req.Model
	bike.VIN = req.VIN
	if req.Status != "" {
		bike.Status = req.Status
	}
	return s.bikeRepo.Update(ctx, bike)
}

func (s *bikeService) Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, identity, id); err != nil {
		return err
	}
	return s.bikeRepo.Delete(ctx, id)
}

func (s *bikeService) List(ctx context.Context, identity *models.Identity, workspaceID *uuid.UUID, limit, offset int) ([]*models.Bike, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	return s.bikeRepo.List(ctx, ScopeWorkspace(identity, workspaceID), limit, offset)
}
