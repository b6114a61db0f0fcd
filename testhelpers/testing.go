package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
	"maintdesk/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. The test is skipped when no database is configured.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString, 4)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to apply schema: %v", err)
	}

	const truncate = `TRUNCATE users, contracts, assets, asset_details, events, project_members,
		holidays, notices, notice_files, contract_files, notifications,
		client_support_reports, version_history RESTART IDENTITY CASCADE`
	if _, err := pool.Exec(ctx, truncate); err != nil {
		pool.Close()
		t.Fatalf("Failed to reset test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestContract stores a contract with one quarterly HW asset
func SetupTestContract(t *testing.T, db *TestDB, customer string, start time.Time, end *time.Time) *models.Contract {
	t.Helper()

	engineer := "Park"
	contract := &models.Contract{
		CustomerName: customer,
		ProjectTitle: "Maintenance " + start.Format("2006"),
		StartDate:    start,
		EndDate:      end,
		Assets: []*models.Asset{{
			Category:        models.AssetCategoryHW,
			Item:            "Storage array",
			Qty:             1,
			InspectionCycle: "quarterly",
			MainEngineer:    models.Contact{Name: &engineer},
			Details: []*models.AssetDetail{{
				Name: "Controller",
				Qty:  2,
			}},
		}},
	}

	if err := repositories.NewContractRepo(db.Pool).CreateWithAssets(context.Background(), contract); err != nil {
		t.Fatalf("Failed to create test contract: %v", err)
	}
	return contract
}

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
