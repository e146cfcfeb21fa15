package services

import (
	"context"

	"github.com/google/uuid"

	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
)

type CreateContactRequest struct {
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Kind        string     `json:"kind"`
}

type UpdateContactRequest struct {
	ID          uuid.UUID
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Kind        string     `json:"kind"`
}

type ContactService interface {
	Create(ctx context.Context, identity *models.Identity, req *CreateContactRequest) (*models.Contact, error)
	GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Contact, error)
	Update(ctx context.Context, identity *models.Identity, req *UpdateContactRequest) error
	Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error
	List(ctx context.Context, identity *models.Identity, workspaceID *uuid.UUID, limit, offset int) ([]*models.Contact, error)
}

type contactService struct {
	contactRepo repositories.ContactRepository
}

func NewContactService(contactRepo repositories.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Create(ctx context.Context, identity *models.Identity, req *CreateContactRequest) (*models.Contact, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}

	workspaceID := req.WorkspaceID
	if !identity.IsSuperuser() {
		workspaceID = identity.WorkspaceID
	}

	contact := &models.Contact{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Kind:        req.Kind,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Contact, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireResourceAccess(identity, contact.WorkspaceID); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, identity *models.Identity, req *UpdateContactRequest) error {
	contact, err := s.GetByID(ctx, identity, req.ID)
	if err != nil {
		return err
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return err
	}

	if !workspaceIDsEqual(contact.WorkspaceID, req.WorkspaceID) {
		if err := RequireSuperuser(identity); err != nil {
			return err
		}
		contact.WorkspaceID = req.WorkspaceID
	}

	contact.Name = req.Name
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.Kind = req.Kind
	return s.contactRepo.Update(ctx, contact)
}

func (s *contactService) Delete(ctx context.Context, identity *models.Identity, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, identity, id); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, id)
}

func (s *contactService) List(ctx context.Context, identity *models.Identity, workspaceID *uuid.UUID, limit, offset int) ([]*models.Contact, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	return s.contactRepo.List(ctx, ScopeWorkspace(identity, workspaceID), limit, offset)
}
