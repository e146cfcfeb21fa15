package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"motocase/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, firstLogin bool) error {
	args := m.Called(ctx, id, passwordHash, firstLogin)
	return args.Error(0)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, workspaceID *uuid.UUID, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, workspaceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) ListStaleFirstLogin(ctx context.Context, olderThanDays int) ([]*models.User, error) {
	args := m.Called(ctx, olderThanDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// fakeCache is an in-memory cache for exercising the first-login session
// lifecycle without redis.
type fakeCache struct {
	mu                 sync.Mutex
	firstLoginSessions map[string]uuid.UUID
	strings            map[string]string
	rateLimited        bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		firstLoginSessions: make(map[string]uuid.UUID),
		strings:            make(map[string]string),
	}
}

func (f *fakeCache) SetFirstLoginSession(_ context.Context, token string, userID uuid.UUID, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.firstLoginSessions[token] = userID
	return nil
}

func (f *fakeCache) GetFirstLoginSession(_ context.Context, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.firstLoginSessions[token], nil
}

func (f *fakeCache) DeleteFirstLoginSession(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.firstLoginSessions, token)
	return nil
}

func (f *fakeCache) GetWorkspace(_ context.Context, _ uuid.UUID) (*models.Workspace, error) {
	return nil, nil
}

func (f *fakeCache) SetWorkspace(_ context.Context, _ *models.Workspace, _ time.Duration) error {
	return nil
}

func (f *fakeCache) DeleteWorkspace(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeCache) IsRateLimited(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rateLimited, nil
}

func (f *fakeCache) SetString(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strings[key] = value
	return nil
}

func (f *fakeCache) GetString(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.strings[key], nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.strings, key)
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error {
	return nil
}
