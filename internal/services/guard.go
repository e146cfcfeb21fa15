package services

import (
	"errors"

	"github.com/google/uuid"

	"motocase/internal/models"
)

// Authorization denial reasons. The two sentinels are distinguishable so the
// HTTP layer can map them to 401 vs 403. The guard itself is a pure decision
// function; it never logs or touches storage.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
)

// RequireAuthenticated denies when no identity was resolved for the request.
func RequireAuthenticated(identity *models.Identity) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	return nil
}

// RequireSuperuser denies unless the identity holds one of the superuser
// roles (admin, developer).
func RequireSuperuser(identity *models.Identity) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if !identity.IsSuperuser() {
		return ErrForbidden
	}
	return nil
}

// CanAccessResource reports whether the identity may touch a resource bound
// to the given workspace. Superusers see everything; a nil resource
// workspace means the resource is globally visible; otherwise the resource
// workspace must equal the identity's bound workspace.
func CanAccessResource(identity *models.Identity, resourceWorkspaceID *uuid.UUID) bool {
	if identity == nil {
		return false
	}
	if identity.IsSuperuser() {
		return true
	}
	if resourceWorkspaceID == nil {
		return true
	}
	return identity.WorkspaceID != nil && *identity.WorkspaceID == *resourceWorkspaceID
}

// RequireResourceAccess is CanAccessResource expressed as a denial.
func RequireResourceAccess(identity *models.Identity, resourceWorkspaceID *uuid.UUID) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if !CanAccessResource(identity, resourceWorkspaceID) {
		return ErrForbidden
	}
	return nil
}

// ScopeWorkspace resolves the workspace filter for list queries: superusers
// get the unscoped "Main" view unless they explicitly request a workspace;
// everyone else is pinned to their bound workspace regardless of what they
// asked for.
func ScopeWorkspace(identity *models.Identity, requested *uuid.UUID) *uuid.UUID {
	if identity.IsSuperuser() {
		return requested
	}
	return identity.WorkspaceID
}
