package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motocase/internal/models"
)

// memCaseRepo is an in-memory case store for exercising the service rules.
type memCaseRepo struct {
	cases map[uuid.UUID]*models.Case
}

func newMemCaseRepo() *memCaseRepo {
	return &memCaseRepo{cases: make(map[uuid.UUID]*models.Case)}
}

func (r *memCaseRepo) Create(_ context.Context, kase *models.Case) error {
	stored := *kase
	r.cases[kase.ID] = &stored
	return nil
}

func (r *memCaseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Case, error) {
	kase, ok := r.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *kase
	return &copied, nil
}

func (r *memCaseRepo) Update(_ context.Context, kase *models.Case) error {
	if _, ok := r.cases[kase.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *kase
	r.cases[kase.ID] = &stored
	return nil
}

func (r *memCaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.cases, id)
	return nil
}

func (r *memCaseRepo) List(_ context.Context, workspaceID *uuid.UUID, _, _ int) ([]*models.Case, error) {
	var out []*models.Case
	for _, kase := range r.cases {
		if workspaceID == nil || kase.WorkspaceID == nil || *kase.WorkspaceID == *workspaceID {
			copied := *kase
			out = append(out, &copied)
		}
	}
	return out, nil
}

func TestCaseCreatePinsWorkspaceForNonSuperusers(t *testing.T) {
	ctx := context.Background()
	repo := newMemCaseRepo()
	svc := NewCaseService(repo)

	wsA := uuid.New()
	wsB := uuid.New()
	user := identityWithRole(models.RoleWorkspaceUser, &wsA)

	// a workspace user cannot file into another workspace
	kase, err := svc.Create(ctx, user, &CreateCaseRequest{Title: "Damaged fairing", WorkspaceID: &wsB})
	require.NoError(t, err)
	require.NotNil(t, kase.WorkspaceID)
	assert.Equal(t, wsA, *kase.WorkspaceID)
	assert.Equal(t, models.CaseStatusOpen, kase.Status)

	// a superuser can file anywhere
	admin := identityWithRole(models.RoleAdmin, nil)
	kase, err = svc.Create(ctx, admin, &CreateCaseRequest{Title: "Stolen bike", WorkspaceID: &wsB})
	require.NoError(t, err)
	assert.Equal(t, wsB, *kase.WorkspaceID)
}

func TestCaseGetEnforcesWorkspace(t *testing.T) {
	ctx := context.Background()
	repo := newMemCaseRepo()
	svc := NewCaseService(repo)

	wsA := uuid.New()
	wsB := uuid.New()
	owner := identityWithRole(models.RoleWorkspaceUser, &wsA)

	kase, err := svc.Create(ctx, owner, &CreateCaseRequest{Title: "Flat tyre dispute"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, owner, kase.ID)
	assert.NoError(t, err)

	outsider := identityWithRole(models.RoleWorkspaceUser, &wsB)
	_, err = svc.GetByID(ctx, outsider, kase.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(ctx, identityWithRole(models.RoleAdmin, nil), kase.ID)
	assert.NoError(t, err)
}

func TestCaseGlobalVisibility(t *testing.T) {
	ctx := context.Background()
	repo := newMemCaseRepo()
	svc := NewCaseService(repo)

	admin := identityWithRole(models.RoleAdmin, nil)
	kase, err := svc.Create(ctx, admin, &CreateCaseRequest{Title: "Fleet-wide recall"})
	require.NoError(t, err)
	assert.Nil(t, kase.WorkspaceID)

	// a null-workspace case is visible to any workspace user
	wsA := uuid.New()
	_, err = svc.GetByID(ctx, identityWithRole(models.RoleWorkspaceUser, &wsA), kase.ID)
	assert.NoError(t, err)
}

func TestCaseWorkspaceReassignmentRequiresSuperuser(t *testing.T) {
	ctx := context.Background()
	repo := newMemCaseRepo()
	svc := NewCaseService(repo)

	wsA := uuid.New()
	wsB := uuid.New()
	user := identityWithRole(models.RoleWorkspaceUser, &wsA)

	kase, err := svc.Create(ctx, user, &CreateCaseRequest{Title: "Scratched tank"})
	require.NoError(t, err)

	err = svc.Update(ctx, user, &UpdateCaseRequest{ID: kase.ID, Title: "Scratched tank", WorkspaceID: &wsB})
	assert.ErrorIs(t, err, ErrForbidden)

	// same workspace update is fine
	err = svc.Update(ctx, user, &UpdateCaseRequest{ID: kase.ID, Title: "Scratched tank and mirror", WorkspaceID: &wsA, Status: models.CaseStatusInProgress})
	require.NoError(t, err)

	updated, err := svc.GetByID(ctx, user, kase.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scratched tank and mirror", updated.Title)
	assert.Equal(t, models.CaseStatusInProgress, updated.Status)

	// superuser may move it
	admin := identityWithRole(models.RoleAdmin, nil)
	err = svc.Update(ctx, admin, &UpdateCaseRequest{ID: kase.ID, Title: "Scratched tank and mirror", WorkspaceID: &wsB})
	require.NoError(t, err)

	moved, err := svc.GetByID(ctx, admin, kase.ID)
	require.NoError(t, err)
	assert.Equal(t, wsB, *moved.WorkspaceID)
}

func TestCaseUpdateRejectsBadStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemCaseRepo()
	svc := NewCaseService(repo)

	wsA := uuid.New()
	user := identityWithRole(models.RoleWorkspaceUser, &wsA)
	kase, err := svc.Create(ctx, user, &CreateCaseRequest{Title: "Broken mirror"})
	require.NoError(t, err)

	err = svc.Update(ctx, user, &UpdateCaseRequest{ID: kase.ID, Title: "Broken mirror", WorkspaceID: &wsA, Status: "resolved"})
	assert.Error(t, err)
}
