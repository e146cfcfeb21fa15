package models

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates user roles. Admin and developer are equivalent superuser
// roles; the remaining roles are workspace-bound.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleDeveloper     Role = "developer"
	RoleWorkspaceUser Role = "workspace_user"
	RoleRentalCompany Role = "rental_company"
	RoleLawyer        Role = "lawyer"
)

// User statuses. Users are never physically deleted; deletion sets the
// status to "deleted".
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusDeleted  = "deleted"
)

type User struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	Email               string     `json:"email" db:"email"`
	PasswordHash        string     `json:"-" db:"password_hash"` // Never serialize in JSON
	Role                Role       `json:"role" db:"role"`
	WorkspaceID         *uuid.UUID `json:"workspace_id" db:"workspace_id"`
	Status              string     `json:"status" db:"status"`
	FirstLogin          bool       `json:"first_login" db:"first_login"`
	OnboardingCompleted bool       `json:"onboarding_completed" db:"onboarding_completed"`
	LastLoginAt         *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// Identity is the resolved caller of a request: the subset of the user row
// that authorization decisions need.
type Identity struct {
	UserID      uuid.UUID  `json:"user_id"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	FirstLogin  bool       `json:"first_login"`
}

// IsSuperuser reports whether the identity has unrestricted access to all
// workspaces. Admin and developer are deliberately equivalent.
func (i *Identity) IsSuperuser() bool {
	return i.Role == RoleAdmin || i.Role == RoleDeveloper
}
