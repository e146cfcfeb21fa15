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

type CaseRepoTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	repo        CaseRepository
	workspaceID uuid.UUID
	caseID      uuid.UUID
	context     context.Context
}

func (suite *CaseRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCaseRepo(mock)
	suite.workspaceID = uuid.New()
	suite.caseID = uuid.New()
	suite.context = context.Background()
}

func (suite *CaseRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestCaseRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CaseRepoTestSuite))
}

func (suite *CaseRepoTestSuite) caseRow(kase *models.Case) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "workspace_id", "bike_id", "contact_id", "assigned_to",
		"title", "description", "status", "created_at", "updated_at",
	}).AddRow(kase.ID, kase.WorkspaceID, kase.BikeID, kase.ContactID, kase.AssignedTo,
		kase.Title, kase.Description, kase.Status, kase.CreatedAt, kase.UpdatedAt)
}

func (suite *CaseRepoTestSuite) TestCreate_Success() {
	kase := &models.Case{
		ID:          suite.caseID,
		WorkspaceID: &suite.workspaceID,
		Title:       "Scratched fairing on return",
		Description: "Front fairing scratched, renter disputes",
		Status:      models.CaseStatusOpen,
	}

	suite.mock.ExpectExec(`INSERT INTO cases`).
		WithArgs(kase.ID, kase.WorkspaceID, kase.BikeID, kase.ContactID, kase.AssignedTo,
			kase.Title, kase.Description, kase.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, kase)
	assert.NoError(suite.T(), err)
}

func (suite *CaseRepoTestSuite) TestGetByID_Success() {
	now := time.Now()
	kase := &models.Case{
		ID:          suite.caseID,
		WorkspaceID: &suite.workspaceID,
		Title:       "Stolen bike",
		Description: "Reported stolen from parking garage",
		Status:      models.CaseStatusInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM cases WHERE id = \$1`).
		WithArgs(suite.caseID).
		WillReturnRows(suite.caseRow(kase))

	got, err := suite.repo.GetByID(suite.context, suite.caseID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), kase.Title, got.Title)
	assert.Equal(suite.T(), &suite.workspaceID, got.WorkspaceID)
}

func (suite *CaseRepoTestSuite) TestList_WorkspaceScopeIncludesGlobalRows() {
	now := time.Now()
	scoped := &models.Case{
		ID:          suite.caseID,
		WorkspaceID: &suite.workspaceID,
		Title:       "Workspace case",
		Status:      models.CaseStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	global := &models.Case{
		ID:        uuid.New(),
		Title:     "Global case",
		Status:    models.CaseStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	rows := suite.caseRow(scoped)
	rows.AddRow(global.ID, global.WorkspaceID, global.BikeID, global.ContactID, global.AssignedTo,
		global.Title, global.Description, global.Status, global.CreatedAt, global.UpdatedAt)

	suite.mock.ExpectQuery(`SELECT .+ FROM cases`).
		WithArgs(&suite.workspaceID, 20, 0).
		WillReturnRows(rows)

	cases, err := suite.repo.List(suite.context, &suite.workspaceID, 20, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), cases, 2)
	assert.Nil(suite.T(), cases[1].WorkspaceID)
}

func (suite *CaseRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM cases WHERE id = \$1`).
		WithArgs(suite.caseID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.caseID)
	assert.NoError(suite.T(), err)
}
