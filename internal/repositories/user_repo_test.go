package repositories

import (
	"context"
	"testing"
	"time"

	"motocase/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	repo        UserRepository
	userID      uuid.UUID
	workspaceID uuid.UUID
	context     context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepo(mock)
	suite.userID = uuid.New()
	suite.workspaceID = uuid.New()
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) userRow(user *models.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "password_hash", "role", "workspace_id", "status",
		"first_login", "onboarding_completed", "last_login_at", "created_at", "updated_at",
	}).AddRow(user.ID, user.Email, user.PasswordHash, user.Role, user.WorkspaceID,
		user.Status, user.FirstLogin, user.OnboardingCompleted, user.LastLoginAt,
		user.CreatedAt, user.UpdatedAt)
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	user := &models.User{
		ID:           suite.userID,
		Email:        "rider@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleWorkspaceUser,
		WorkspaceID:  &suite.workspaceID,
		Status:       models.UserStatusActive,
		FirstLogin:   true,
	}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE LOWER\(email\) = LOWER\(\$1\) AND status != 'deleted'`).
		WithArgs(user.Email).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Role, user.WorkspaceID,
			user.Status, user.FirstLogin, user.OnboardingCompleted).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestCreate_DuplicateEmail() {
	user := &models.User{
		ID:     suite.userID,
		Email:  "taken@example.com",
		Role:   models.RoleWorkspaceUser,
		Status: models.UserStatusActive,
	}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE LOWER\(email\) = LOWER\(\$1\) AND status != 'deleted'`).
		WithArgs(user.Email).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	err := suite.repo.Create(suite.context, user)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already exists")
}

func (suite *UserRepoTestSuite) TestGetByEmail_Success() {
	now := time.Now()
	user := &models.User{
		ID:           suite.userID,
		Email:        "rider@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleRentalCompany,
		WorkspaceID:  &suite.workspaceID,
		Status:       models.UserStatusActive,
		FirstLogin:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs(user.Email).
		WillReturnRows(suite.userRow(user))

	got, err := suite.repo.GetByEmail(suite.context, user.Email)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, got.ID)
	assert.Equal(suite.T(), models.RoleRentalCompany, got.Role)
	assert.Equal(suite.T(), &suite.workspaceID, got.WorkspaceID)
}

func (suite *UserRepoTestSuite) TestUpdatePassword_ClearsFirstLogin() {
	suite.mock.ExpectExec(`UPDATE users`).
		WithArgs("$2a$10$newhash", false, suite.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdatePassword(suite.context, suite.userID, "$2a$10$newhash", false)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestSoftDelete_NeverRemovesRow() {
	suite.mock.ExpectExec(`UPDATE users SET status = 'deleted'`).
		WithArgs(suite.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SoftDelete(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestList_ScopedToWorkspace() {
	now := time.Now()
	user := &models.User{
		ID:          suite.userID,
		Email:       "rider@example.com",
		Role:        models.RoleWorkspaceUser,
		WorkspaceID: &suite.workspaceID,
		Status:      models.UserStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs(&suite.workspaceID, 10, 0).
		WillReturnRows(suite.userRow(user))

	users, err := suite.repo.List(suite.context, &suite.workspaceID, 10, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), user.Email, users[0].Email)
}
