package common

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motocase/internal/models"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid with digit", "Valid1Pass", false},
		{"valid with symbol", "ValidPass!", false},
		{"too short", "short1", true},
		{"too short with uppercase", "Sh0rt!", true},
		{"no uppercase", "alllowercase1", true},
		{"no lowercase", "ALLUPPERCASE1", true},
		{"no digit or symbol", "NoDigitsHere", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	id, err := ValidateUUID(uuid.NewString(), "user ID")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	_, err = ValidateUUID("not-a-uuid", "user ID")
	assert.Error(t, err)

	_, err = ValidateUUID("", "user ID")
	assert.Error(t, err)
}

func TestValidateCaseStatus(t *testing.T) {
	for _, status := range []string{"open", "in_progress", "closed"} {
		assert.NoError(t, ValidateCaseStatus(status))
	}
	assert.Error(t, ValidateCaseStatus("resolved"))
	assert.Error(t, ValidateCaseStatus(""))
}

func TestValidateRole(t *testing.T) {
	for _, role := range []string{"admin", "developer", "workspace_user", "rental_company", "lawyer"} {
		assert.NoError(t, ValidateRole(role))
	}
	assert.Error(t, ValidateRole("root"))
}

func TestIdentityContextRoundTrip(t *testing.T) {
	identity := &models.Identity{
		UserID: uuid.New(),
		Email:  "rider@example.com",
		Role:   models.RoleWorkspaceUser,
	}

	ctx := WithIdentity(t.Context(), identity)
	got, ok := GetIdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, identity, got)

	_, ok = GetIdentityFromContext(t.Context())
	assert.False(t, ok)
}
