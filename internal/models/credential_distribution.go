package models

import (
	"time"

	"github.com/google/uuid"
)

// CredentialDistribution records when and how a generated temporary password
// was communicated to a recipient. Purely an audit trail; it never takes
// part in access-control decisions.
type CredentialDistribution struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	Method        string     `json:"method" db:"method"`
	Recipient     string     `json:"recipient" db:"recipient"`
	Distributed   bool       `json:"distributed" db:"distributed"`
	DistributedAt *time.Time `json:"distributed_at" db:"distributed_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
