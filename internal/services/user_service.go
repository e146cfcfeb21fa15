package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
)

const temporaryPasswordLength = 12

// CreateUserRequest is the admin-side account-provisioning payload.
type CreateUserRequest struct {
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	WorkspaceID        *uuid.UUID `json:"workspace_id"`
	DistributionMethod string     `json:"distribution_method"` // email, phone, in_person
}

// CreateUserResult carries the generated temporary password back to the
// admin exactly once; it is never persisted in plaintext.
type CreateUserResult struct {
	User              *models.User                   `json:"user"`
	TemporaryPassword string                         `json:"temporary_password"`
	Distribution      *models.CredentialDistribution `json:"distribution"`
}

type UpdateUserRequest struct {
	ID          uuid.UUID
	Role        string     `json:"role"`
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	Status      string     `json:"status"`
}

// UserService handles account administration: provisioning with temporary
// passwords, role/status changes, and credential-distribution tracking.
type UserService interface {
	Create(ctx context.Context, identity *models.Identity, req *CreateUserRequest) (*CreateUserResult, error)
	GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, identity *models.Identity, req *UpdateUserRequest) error
	Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error
	List(ctx context.Context, identity *models.Identity, workspaceID *uuid.UUID, limit, offset int) ([]*models.User, error)
	ConfirmDistribution(ctx context.Context, identity *models.Identity, userID, distributionID uuid.UUID) error
	ListDistributions(ctx context.Context, identity *models.Identity, userID uuid.UUID) ([]*models.CredentialDistribution, error)
}

type userService struct {
	userRepo         repositories.UserRepository
	distributionRepo repositories.CredentialDistributionRepository
	credentialSvc    CredentialService
	mailer           Mailer
	appBaseURL       string
}

func NewUserService(
	userRepo repositories.UserRepository,
	distributionRepo repositories.CredentialDistributionRepository,
	credentialSvc CredentialService,
	mailer Mailer,
	appBaseURL string,
) UserService {
	return &userService{
		userRepo:         userRepo,
		distributionRepo: distributionRepo,
		credentialSvc:    credentialSvc,
		mailer:           mailer,
		appBaseURL:       appBaseURL,
	}
}

// Create provisions an account with a generated temporary password. The
// account starts in the pending-first-login state: first_login stays true
// until the owner sets their own password.
func (s *userService) Create(ctx context.Context, identity *models.Identity, req *CreateUserRequest) (*CreateUserResult, error) {
	if err := RequireSuperuser(identity); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return nil, err
	}
	if err := common.ValidateRole(req.Role); err != nil {
		return nil, err
	}
	role := models.Role(req.Role)
	if role != models.RoleAdmin && role != models.RoleDeveloper && req.WorkspaceID == nil {
		return nil, common.Rulef("workspace_id is required for workspace-bound roles")
	}

	temporaryPassword, err := s.credentialSvc.GenerateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := s.credentialSvc.HashPassword(temporaryPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		WorkspaceID:  req.WorkspaceID,
		Status:       models.UserStatusActive,
		FirstLogin:   true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	method := req.DistributionMethod
	if method == "" {
		method = "email"
	}
	distribution := &models.CredentialDistribution{
		ID:        uuid.New(),
		UserID:    user.ID,
		Method:    method,
		Recipient: req.Email,
		CreatedAt: time.Now(),
	}
	if err := s.distributionRepo.Create(ctx, distribution); err != nil {
		return nil, fmt.Errorf("failed to record credential distribution: %w", err)
	}

	if method == "email" {
		loginURL := s.appBaseURL + "/login"
		if err := s.mailer.SendTemporaryPassword(ctx, req.Email, temporaryPassword, loginURL); err != nil {
			// Mail failure is not fatal: the admin still sees the password
			// once and the distribution record stays unconfirmed.
			log.Warn().Err(err).Str("recipient", req.Email).Msg("failed to send temporary password mail")
		}
	}

	return &CreateUserResult{
		User:              user,
		TemporaryPassword: temporaryPassword,
		Distribution:      distribution,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.User, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Workspace users may only look at accounts in their own workspace.
	if err := RequireResourceAccess(identity, user.WorkspaceID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, identity *models.Identity, req *UpdateUserRequest) error {
	if err := RequireSuperuser(identity); err != nil {
		return err
	}
	if err := common.ValidateRole(req.Role); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	user.Role = models.Role(req.Role)
	user.WorkspaceID = req.WorkspaceID
	if req.Status != "" {
		user.Status = req.Status
	}
	return s.userRepo.Update(ctx, user)
}

func (s *userService) Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error {
	if err := RequireSuperuser(identity); err != nil {
		return err
	}
	return s.userRepo.SoftDelete(ctx, id)
}

func (s *userService) List(ctx context.Context, identity *models.Identity, workspaceID *uuid.UUID, limit, offset int) ([]*models.User, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, ScopeWorkspace(identity, workspaceID), limit, offset)
}

func (s *userService) ConfirmDistribution(ctx context.Context, identity *models.Identity, userID, distributionID uuid.UUID) error {
	if err := RequireSuperuser(identity); err != nil {
		return err
	}
	record, err := s.distributionRepo.GetByID(ctx, distributionID)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return common.Rulef("distribution record does not belong to user")
	}
	return s.distributionRepo.MarkDistributed(ctx, distributionID)
}

func (s *userService) ListDistributions(ctx context.Context, identity *models.Identity, userID uuid.UUID) ([]*models.CredentialDistribution, error) {
	if err := RequireSuperuser(identity); err != nil {
		return nil, err
	}
	return s.distributionRepo.ListByUser(ctx, userID)
}
