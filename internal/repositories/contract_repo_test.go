package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"maintdesk/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func stringPtr(s string) *string {
	return &s
}

type ContractRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ContractRepository
	context context.Context
	now     time.Time
}

func (suite *ContractRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewContractRepo(mock)
	suite.context = context.Background()
	suite.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (suite *ContractRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestContractRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ContractRepoTestSuite))
}

func (suite *ContractRepoTestSuite) newContract() *models.Contract {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return &models.Contract{
		CustomerName: "Acme",
		ProjectTitle: "Storage upkeep",
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      &end,
		CreatedBy:    stringPtr("admin"),
		Assets: []*models.Asset{
			{
				Category:        models.AssetCategoryHW,
				Item:            "Server",
				Qty:             2,
				InspectionCycle: "quarter",
				Details: []*models.AssetDetail{
					{Name: "PSU", Qty: 2},
				},
			},
		},
	}
}

func (suite *ContractRepoTestSuite) expectAssetInsert(contractID, assetID int64) {
	suite.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO assets")).
		WithArgs(contractID, models.AssetCategoryHW, "Server", pgxmock.AnyArg(), 2, "quarter",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(assetID, suite.now))
	suite.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO asset_details")).
		WithArgs(assetID, "PSU", pgxmock.AnyArg(), pgxmock.AnyArg(), 2, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
}

func (suite *ContractRepoTestSuite) TestCreateWithAssets_Commits() {
	contract := suite.newContract()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contracts")).
		WithArgs(contract.CustomerName, contract.ProjectTitle, contract.StartDate, contract.EndDate,
			contract.ContractAmount, contract.Notes, contract.CreatedBy).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), suite.now, suite.now))
	suite.expectAssetInsert(7, 70)
	suite.mock.ExpectCommit()

	err := suite.repo.CreateWithAssets(suite.context, contract)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), contract.ID)
	assert.Equal(suite.T(), int64(7), contract.Assets[0].ContractID)
	assert.Equal(suite.T(), int64(70), contract.Assets[0].ID)
	assert.Equal(suite.T(), int64(70), contract.Assets[0].Details[0].AssetID)
	assert.Equal(suite.T(), int64(100), contract.Assets[0].Details[0].ID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContractRepoTestSuite) TestCreateWithAssets_RollsBackOnAssetFailure() {
	contract := suite.newContract()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contracts")).
		WithArgs(contract.CustomerName, contract.ProjectTitle, contract.StartDate, contract.EndDate,
			contract.ContractAmount, contract.Notes, contract.CreatedBy).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), suite.now, suite.now))
	suite.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO assets")).
		WillReturnError(errors.New("value too long"))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithAssets(suite.context, contract)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "insert asset")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContractRepoTestSuite) expectContractUpdate(contract *models.Contract) {
	suite.mock.ExpectQuery(regexp.QuoteMeta("UPDATE contracts")).
		WithArgs(contract.CustomerName, contract.ProjectTitle, contract.StartDate, contract.EndDate,
			contract.ContractAmount, contract.Notes, contract.ID).
		WillReturnRows(pgxmock.NewRows([]string{"created_by", "created_at", "updated_at"}).AddRow(stringPtr("admin"), suite.now, suite.now))
}

func (suite *ContractRepoTestSuite) TestUpdateWithAssets_ReplacesAssets() {
	contract := suite.newContract()
	contract.ID = 7

	suite.mock.ExpectBegin()
	suite.expectContractUpdate(contract)
	suite.mock.ExpectQuery(regexp.QuoteMeta("SELECT id, item FROM assets WHERE contract_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "item"}).AddRow(int64(61), "Server").AddRow(int64(62), "Switch"))
	suite.expectAssetInsert(7, 71)
	suite.mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET asset_id = $1, updated_at = NOW() WHERE asset_id = $2")).
		WithArgs(int64(71), int64(61)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))
	suite.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assets WHERE id = ANY($1)")).
		WithArgs([]int64{61, 62}).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(regexp.QuoteMeta("asset_id IS NULL AND status = 'scheduled'")).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	suite.mock.ExpectCommit()

	err := suite.repo.UpdateWithAssets(suite.context, contract)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(71), contract.Assets[0].ID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContractRepoTestSuite) TestUpdateWithAssets_RelinkFailureRollsBack() {
	contract := suite.newContract()
	contract.ID = 7

	suite.mock.ExpectBegin()
	suite.expectContractUpdate(contract)
	suite.mock.ExpectQuery(regexp.QuoteMeta("SELECT id, item FROM assets WHERE contract_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "item"}).AddRow(int64(61), "Server"))
	suite.expectAssetInsert(7, 71)
	suite.mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET asset_id")).
		WithArgs(int64(71), int64(61)).
		WillReturnError(errors.New("connection reset"))
	suite.mock.ExpectRollback()

	err := suite.repo.UpdateWithAssets(suite.context, contract)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "relink events of asset 61")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContractRepoTestSuite) TestUpdateWithAssets_NotFoundRollsBack() {
	contract := suite.newContract()
	contract.ID = 404

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta("UPDATE contracts")).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	err := suite.repo.UpdateWithAssets(suite.context, contract)
	assert.True(suite.T(), errors.Is(err, pgx.ErrNoRows))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContractRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contracts WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contracts WHERE id = $1")).
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := suite.repo.Delete(suite.context, 7)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), deleted)

	deleted, err = suite.repo.Delete(suite.context, 8)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContractRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta("FROM contracts WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	contract, err := suite.repo.GetByID(suite.context, 9)
	assert.Nil(suite.T(), contract)
	assert.True(suite.T(), errors.Is(err, pgx.ErrNoRows))
}
