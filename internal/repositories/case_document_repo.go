package repositories

import (
	"context"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type CaseDocumentRepository interface {
	Create(ctx context.Context, doc *models.CaseDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CaseDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*models.CaseDocument, error)
}

type caseDocumentRepo struct {
	db DB
}

func NewCaseDocumentRepo(db DB) CaseDocumentRepository {
	return &caseDocumentRepo{db: db}
}

func (r *caseDocumentRepo) Create(ctx context.Context, doc *models.CaseDocument) error {
	query := `
		INSERT INTO case_documents (id, case_id, object_key, file_name, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, doc.ID, doc.CaseID, doc.ObjectKey, doc.FileName, doc.UploadedBy)
	return err
}

func (r *caseDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CaseDocument, error) {
	doc := &models.CaseDocument{}
	query := `
		SELECT id, case_id, object_key, file_name, uploaded_by, created_at
		FROM case_documents
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&doc.ID, &doc.CaseID, &doc.ObjectKey,
		&doc.FileName, &doc.UploadedBy, &doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *caseDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM case_documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *caseDocumentRepo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*models.CaseDocument, error) {
	query := `
		SELECT id, case_id, object_key, file_name, uploaded_by, created_at
		FROM case_documents
		WHERE case_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.CaseDocument
	for rows.Next() {
		doc := &models.CaseDocument{}
		if err := rows.Scan(&doc.ID, &doc.CaseID, &doc.ObjectKey, &doc.FileName,
			&doc.UploadedBy, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
