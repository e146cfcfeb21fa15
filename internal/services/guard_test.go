package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"motocase/internal/models"
)

func identityWithRole(role models.Role, workspaceID *uuid.UUID) *models.Identity {
	return &models.Identity{
		UserID:      uuid.New(),
		Email:       "someone@example.com",
		Role:        role,
		WorkspaceID: workspaceID,
	}
}

func TestRequireAuthenticated(t *testing.T) {
	assert.ErrorIs(t, RequireAuthenticated(nil), ErrUnauthenticated)
	assert.NoError(t, RequireAuthenticated(identityWithRole(models.RoleWorkspaceUser, nil)))
}

func TestRequireSuperuser(t *testing.T) {
	assert.ErrorIs(t, RequireSuperuser(nil), ErrUnauthenticated)
	assert.NoError(t, RequireSuperuser(identityWithRole(models.RoleAdmin, nil)))
	assert.NoError(t, RequireSuperuser(identityWithRole(models.RoleDeveloper, nil)))
	assert.ErrorIs(t, RequireSuperuser(identityWithRole(models.RoleWorkspaceUser, nil)), ErrForbidden)
	assert.ErrorIs(t, RequireSuperuser(identityWithRole(models.RoleLawyer, nil)), ErrForbidden)
}

func TestCanAccessResource(t *testing.T) {
	wsA := uuid.New()
	wsB := uuid.New()

	tests := []struct {
		name       string
		identity   *models.Identity
		resourceWS *uuid.UUID
		want       bool
	}{
		{"nil identity", nil, &wsA, false},
		{"superuser sees any workspace", identityWithRole(models.RoleAdmin, nil), &wsA, true},
		{"superuser sees global", identityWithRole(models.RoleDeveloper, nil), nil, true},
		{"global resource visible to everyone", identityWithRole(models.RoleWorkspaceUser, &wsA), nil, true},
		{"matching workspace", identityWithRole(models.RoleWorkspaceUser, &wsA), &wsA, true},
		{"foreign workspace", identityWithRole(models.RoleWorkspaceUser, &wsA), &wsB, false},
		{"unbound user, scoped resource", identityWithRole(models.RoleWorkspaceUser, nil), &wsA, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessResource(tt.identity, tt.resourceWS))
		})
	}
}

func TestRequireResourceAccess(t *testing.T) {
	wsA := uuid.New()
	wsB := uuid.New()

	assert.ErrorIs(t, RequireResourceAccess(nil, &wsA), ErrUnauthenticated)
	assert.ErrorIs(t, RequireResourceAccess(identityWithRole(models.RoleWorkspaceUser, &wsA), &wsB), ErrForbidden)
	assert.NoError(t, RequireResourceAccess(identityWithRole(models.RoleWorkspaceUser, &wsA), &wsA))
}

func TestScopeWorkspace(t *testing.T) {
	wsA := uuid.New()
	wsB := uuid.New()

	// Superusers get whatever view they ask for, including the all-workspace
	// view when they ask for nothing.
	assert.Nil(t, ScopeWorkspace(identityWithRole(models.RoleAdmin, nil), nil))
	assert.Equal(t, &wsB, ScopeWorkspace(identityWithRole(models.RoleAdmin, nil), &wsB))

	// Everyone else is pinned to their own workspace regardless of request.
	user := identityWithRole(models.RoleWorkspaceUser, &wsA)
	assert.Equal(t, &wsA, ScopeWorkspace(user, nil))
	assert.Equal(t, &wsA, ScopeWorkspace(user, &wsB))
}
