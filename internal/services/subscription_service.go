package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
)

// Plan describes a purchasable subscription tier.
type Plan struct {
	ID          string
	Name        string
	Description string
	Amount      int64
	Currency    string
	Interval    string
}

var availablePlans = map[string]Plan{
	"plan_workspace_monthly": {
		ID:          "plan_workspace_monthly",
		Name:        "Workspace Monthly",
		Description: "Monthly workspace subscription",
		Amount:      4900,
		Currency:    "EUR",
		Interval:    "monthly",
	},
	"plan_workspace_yearly": {
		ID:          "plan_workspace_yearly",
		Name:        "Workspace Yearly",
		Description: "Yearly workspace subscription",
		Amount:      49900,
		Currency:    "EUR",
		Interval:    "yearly",
	},
}

type SubscriptionService interface {
	Create(ctx context.Context, identity *models.Identity, workspaceID uuid.UUID, planID string) (*models.Subscription, error)
	GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context, identity *models.Identity) ([]*models.Subscription, error)
	Cancel(ctx context.Context, identity *models.Identity, id uuid.UUID) error
	HandleWebhookEvent(ctx context.Context, event *BillingWebhookEvent) error
	SyncStatuses(ctx context.Context) error
	ListPlans() []Plan
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	workspaceRepo    repositories.WorkspaceRepository
	billing          BillingService
}

func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepository, workspaceRepo repositories.WorkspaceRepository, billing BillingService) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		workspaceRepo:    workspaceRepo,
		billing:          billing,
	}
}

func (s *subscriptionService) ListPlans() []Plan {
	plans := make([]Plan, 0, len(availablePlans))
	for _, p := range availablePlans {
		plans = append(plans, p)
	}
	return plans
}

// Create starts a subscription for a workspace. Superusers may subscribe any
// workspace; everyone else only their own.
func (s *subscriptionService) Create(ctx context.Context, identity *models.Identity, workspaceID uuid.UUID, planID string) (*models.Subscription, error) {
	if err := RequireResourceAccess(identity, &workspaceID); err != nil {
		return nil, err
	}
	plan, ok := availablePlans[planID]
	if !ok {
		return nil, common.Rulef("unknown plan: %s", planID)
	}
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID); err != nil {
		return nil, fmt.Errorf("workspace not found: %w", err)
	}

	providerSub, err := s.billing.CreateSubscription(ctx, plan.ID, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription with provider: %w", err)
	}

	sub := &models.Subscription{
		ID:                     uuid.New(),
		WorkspaceID:            workspaceID,
		PlanID:                 plan.ID,
		ProviderSubscriptionID: providerSub.ID,
		Status:                 models.SubscriptionStatusActive,
	}
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) GetByID(ctx context.Context, identity *models.Identity, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireResourceAccess(identity, &sub.WorkspaceID); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) List(ctx context.Context, identity *models.Identity) ([]*models.Subscription, error) {
	return s.subscriptionRepo.List(ctx, ScopeWorkspace(identity, nil))
}

func (s *subscriptionService) Cancel(ctx context.Context, identity *models.Identity, id uuid.UUID) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireResourceAccess(identity, &sub.WorkspaceID); err != nil {
		return err
	}
	if sub.Status == models.SubscriptionStatusCancelled {
		return common.Rulef("subscription already cancelled")
	}
	if _, err := s.billing.CancelSubscription(ctx, sub.ProviderSubscriptionID); err != nil {
		return fmt.Errorf("failed to cancel subscription with provider: %w", err)
	}
	return s.subscriptionRepo.UpdateStatus(ctx, sub.ID, models.SubscriptionStatusCancelled)
}

// HandleWebhookEvent applies a provider status change to the local record.
// Unknown subscriptions are logged and skipped so replayed or out-of-order
// events do not fail the webhook endpoint.
func (s *subscriptionService) HandleWebhookEvent(ctx context.Context, event *BillingWebhookEvent) error {
	sub, err := s.subscriptionRepo.GetByProviderID(ctx, event.SubscriptionID)
	if err != nil {
		log.Warn().Str("provider_subscription_id", event.SubscriptionID).Str("event", event.Event).Msg("webhook for unknown subscription")
		return nil
	}

	var status string
	switch event.Event {
	case "subscription.cancelled":
		status = models.SubscriptionStatusCancelled
	case "subscription.past_due":
		status = models.SubscriptionStatusPastDue
	case "subscription.activated":
		status = models.SubscriptionStatusActive
	default:
		log.Debug().Str("event", event.Event).Msg("ignoring unhandled webhook event")
		return nil
	}
	if sub.Status == status {
		return nil
	}
	return s.subscriptionRepo.UpdateStatus(ctx, sub.ID, status)
}

// SyncStatuses reconciles active local subscriptions against the provider.
// Runs from the background scheduler.
func (s *subscriptionService) SyncStatuses(ctx context.Context) error {
	subs, err := s.subscriptionRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		providerSub, err := s.billing.GetSubscription(ctx, sub.ProviderSubscriptionID)
		if err != nil {
			log.Warn().Err(err).Str("subscription_id", sub.ID.String()).Msg("failed to fetch subscription from provider")
			continue
		}
		var status string
		switch providerSub.Status {
		case "cancelled", "expired":
			status = models.SubscriptionStatusCancelled
		case "past_due", "halted":
			status = models.SubscriptionStatusPastDue
		default:
			continue
		}
		if err := s.subscriptionRepo.UpdateStatus(ctx, sub.ID, status); err != nil {
			log.Error().Err(err).Str("subscription_id", sub.ID.String()).Msg("failed to update subscription status")
		}
	}
	return nil
}
