package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses mirror the billing provider's lifecycle.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusPastDue   = "past_due"
)

// Subscription is the local record of a workspace's billing subscription.
// The billing provider owns the authoritative state; this row tracks the
// provider's subscription id and the last status we observed.
type Subscription struct {
	ID                     uuid.UUID `json:"id" db:"id"`
	WorkspaceID            uuid.UUID `json:"workspace_id" db:"workspace_id"`
	ProviderSubscriptionID string    `json:"provider_subscription_id" db:"provider_subscription_id"`
	PlanID                 string    `json:"plan_id" db:"plan_id"`
	Status                 string    `json:"status" db:"status"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}
