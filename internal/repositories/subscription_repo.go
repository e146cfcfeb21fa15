package repositories

import (
	"context"

	"motocase/internal/models"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	GetByProviderID(ctx context.Context, providerSubscriptionID string) (*models.Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, workspaceID *uuid.UUID) ([]*models.Subscription, error)
	ListActive(ctx context.Context) ([]*models.Subscription, error)
}

type subscriptionRepo struct {
	db DB
}

func NewSubscriptionRepo(db DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

const subscriptionColumns = `id, workspace_id, provider_subscription_id, plan_id, status, created_at, updated_at`

func scanSubscription(row interface{ Scan(dest ...any) error }) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := row.Scan(&sub.ID, &sub.WorkspaceID, &sub.ProviderSubscriptionID, &sub.PlanID,
		&sub.Status, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, workspace_id, provider_subscription_id, plan_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, subscription.ID, subscription.WorkspaceID,
		subscription.ProviderSubscriptionID, subscription.PlanID, subscription.Status)
	return err
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	return scanSubscription(r.db.QueryRow(ctx, query, id))
}

func (r *subscriptionRepo) GetByProviderID(ctx context.Context, providerSubscriptionID string) (*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE provider_subscription_id = $1`
	return scanSubscription(r.db.QueryRow(ctx, query, providerSubscriptionID))
}

func (r *subscriptionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *subscriptionRepo) List(ctx context.Context, workspaceID *uuid.UUID) ([]*models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE ($1::uuid IS NULL OR workspace_id = $1)
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *subscriptionRepo) ListActive(ctx context.Context) ([]*models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE status = 'active'
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
