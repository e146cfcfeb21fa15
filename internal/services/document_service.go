package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"motocase/internal/models"
	"motocase/internal/repositories"
)

const documentURLExpiry = 15 * time.Minute

// DocumentService attaches files to cases. Access is derived from case
// access: whoever can read the case can read its documents.
type DocumentService interface {
	Upload(ctx context.Context, identity *models.Identity, caseID uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (*models.CaseDocument, error)
	DownloadURL(ctx context.Context, identity *models.Identity, documentID uuid.UUID) (string, error)
	Delete(ctx context.Context, identity *models.Identity, documentID uuid.UUID) error
	ListByCase(ctx context.Context, identity *models.Identity, caseID uuid.UUID) ([]*models.CaseDocument, error)
}

type documentService struct {
	documentRepo repositories.CaseDocumentRepository
	caseService  CaseService
	storage      StorageService
}

func NewDocumentService(documentRepo repositories.CaseDocumentRepository, caseService CaseService, storage StorageService) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		caseService:  caseService,
		storage:      storage,
	}
}

func (s *documentService) Upload(ctx context.Context, identity *models.Identity, caseID uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (*models.CaseDocument, error) {
	if _, err := s.caseService.GetByID(ctx, identity, caseID); err != nil {
		return nil, err
	}

	doc := &models.CaseDocument{
		ID:         uuid.New(),
		CaseID:     caseID,
		ObjectKey:  fmt.Sprintf("cases/%s/%s-%s", caseID, uuid.New(), fileName),
		FileName:   fileName,
		UploadedBy: identity.UserID,
	}

	if err := s.storage.Upload(ctx, doc.ObjectKey, reader, size, contentType); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		// best effort: don't leave an orphan object behind
		if delErr := s.storage.Delete(ctx, doc.ObjectKey); delErr != nil {
			log.Warn().Err(delErr).Str("object_key", doc.ObjectKey).Msg("failed to clean up orphaned document object")
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) DownloadURL(ctx context.Context, identity *models.Identity, documentID uuid.UUID) (string, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if _, err := s.caseService.GetByID(ctx, identity, doc.CaseID); err != nil {
		return "", err
	}
	return s.storage.PresignedURL(ctx, doc.ObjectKey, documentURLExpiry)
}

func (s *documentService) Delete(ctx context.Context, identity *models.Identity, documentID uuid.UUID) error {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if _, err := s.caseService.GetByID(ctx, identity, doc.CaseID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, doc.ObjectKey); err != nil {
		log.Warn().Err(err).Str("object_key", doc.ObjectKey).Msg("failed to delete document object")
	}
	return s.documentRepo.Delete(ctx, documentID)
}

func (s *documentService) ListByCase(ctx context.Context, identity *models.Identity, caseID uuid.UUID) ([]*models.CaseDocument, error) {
	if _, err := s.caseService.GetByID(ctx, identity, caseID); err != nil {
		return nil, err
	}
	return s.documentRepo.ListByCase(ctx, caseID)
}
