package repositories

import (
	"context"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type CredentialDistributionRepository interface {
	Create(ctx context.Context, record *models.CredentialDistribution) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CredentialDistribution, error)
	MarkDistributed(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CredentialDistribution, error)
}

type credentialDistributionRepo struct {
	db DB
}

func NewCredentialDistributionRepo(db DB) CredentialDistributionRepository {
	return &credentialDistributionRepo{db: db}
}

func (r *credentialDistributionRepo) Create(ctx context.Context, record *models.CredentialDistribution) error {
	query := `
		INSERT INTO credential_distributions (id, user_id, method, recipient, distributed, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.UserID, record.Method,
		record.Recipient, record.Distributed)
	return err
}

func (r *credentialDistributionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CredentialDistribution, error) {
	record := &models.CredentialDistribution{}
	query := `
		SELECT id, user_id, method, recipient, distributed, distributed_at, created_at
		FROM credential_distributions
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&record.ID, &record.UserID, &record.Method,
		&record.Recipient, &record.Distributed, &record.DistributedAt, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *credentialDistributionRepo) MarkDistributed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE credential_distributions
		SET distributed = TRUE, distributed_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *credentialDistributionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CredentialDistribution, error) {
	query := `
		SELECT id, user_id, method, recipient, distributed, distributed_at, created_at
		FROM credential_distributions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.CredentialDistribution
	for rows.Next() {
		record := &models.CredentialDistribution{}
		if err := rows.Scan(&record.ID, &record.UserID, &record.Method, &record.Recipient,
			&record.Distributed, &record.DistributedAt, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
