package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motocase/internal/models"
)

func testIdentity() *models.Identity {
	wsID := uuid.New()
	return &models.Identity{
		UserID:      uuid.New(),
		Email:       "rider@example.com",
		Role:        models.RoleWorkspaceUser,
		WorkspaceID: &wsID,
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")
	identity := testIdentity()

	token, err := svc.Issue(identity, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, ok := svc.Verify(token)
	require.True(t, ok)

	got, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, got.UserID)
	assert.Equal(t, identity.Email, got.Email)
	assert.Equal(t, identity.Role, got.Role)
	require.NotNil(t, got.WorkspaceID)
	assert.Equal(t, *identity.WorkspaceID, *got.WorkspaceID)
}

func TestIssueWithoutWorkspace(t *testing.T) {
	svc := NewTokenService("test-secret")
	identity := &models.Identity{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Role:   models.RoleAdmin,
	}

	token, err := svc.Issue(identity, time.Hour)
	require.NoError(t, err)

	claims, ok := svc.Verify(token)
	require.True(t, ok)

	got, err := claims.Identity()
	require.NoError(t, err)
	assert.Nil(t, got.WorkspaceID)
	assert.True(t, got.IsSuperuser())
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(testIdentity(), -time.Minute)
	require.NoError(t, err)

	_, ok := svc.Verify(token)
	assert.False(t, ok)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.Issue(testIdentity(), time.Hour)
	require.NoError(t, err)

	_, ok := verifier.Verify(token)
	assert.False(t, ok)
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, ok := svc.Verify("")
	assert.False(t, ok)

	_, ok = svc.Verify("not.a.token")
	assert.False(t, ok)
}
