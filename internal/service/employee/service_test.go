package employee

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
)

var testDB *database.DB

// employeeTestDB connects and migrates once per run. Tests are skipped
// entirely when TEST_DATABASE_URL is not set.
func employeeTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testDB == nil {
		db, err := database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		require.NoError(t, database.Migrate(context.Background(), db, logger))
		testDB = db
	}
	return testDB
}

func resetEmployeeTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	_, err := db.Exec(ctx, "TRUNCATE TABLE sales, goals, employees CASCADE")
	require.NoError(t, err)
}

func newTestEmployeeService(db *database.DB) employee.EmployeeService {
	return NewEmployeeService(db, postgresql.NewEmployeeRepository(db), postgresql.NewSaleRepository(db), postgresql.NewSettingsRepository(db))
}

func insertTestSale(t *testing.T, ctx context.Context, db *database.DB, employeeID, date, revenue, commission, draw string) string {
	t.Helper()

	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO sales (id, employee_id, date, revenue_amount, number_of_deals, commission_earned, draw_payment, period_type)
		VALUES (gen_random_uuid(), $1, $2, $3, 1, $4, $5, 'month')
		RETURNING id
	`, employeeID, date, revenue, commission, draw).Scan(&id)
	require.NoError(t, err)
	return id
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestEmployeeService_CreateEmployee(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	resetEmployeeTables(t, ctx, db)

	svc := newTestEmployeeService(db)

	resp, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:           "  Alice Moreau  ",
		HireDate:       "2023-04-15",
		CommissionRate: mustDecimal(t, "0.10"),
		DrawAmount:     mustDecimal(t, "500"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Alice Moreau", resp.Name)
	assert.Equal(t, "2023-04-15", resp.HireDate)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.CommissionRate.Equal(mustDecimal(t, "0.10")))
}

func TestEmployeeService_CreateEmployee_DuplicateName(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	resetEmployeeTables(t, ctx, db)

	svc := newTestEmployeeService(db)

	_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:           "Alice Moreau",
		HireDate:       "2023-04-15",
		CommissionRate: mustDecimal(t, "0.10"),
	})
	require.NoError(t, err)

	// Names collide case-insensitively.
	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:           "alice moreau",
		HireDate:       "2024-01-01",
		CommissionRate: mustDecimal(t, "0.05"),
	})

	assert.ErrorIs(t, err, employee.ErrNameExists)
}

func TestEmployeeService_UpdateEmployee_RateLeavesHistory(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	resetEmployeeTables(t, ctx, db)

	svc := newTestEmployeeService(db)

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:           "Bob Tanaka",
		HireDate:       "2022-09-01",
		CommissionRate: mustDecimal(t, "0.10"),
	})
	require.NoError(t, err)

	saleID := insertTestSale(t, ctx, db, created.ID, "2024-03-01", "1000", "100.00", "0")

	newRate := mustDecimal(t, "0.25")
	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:             created.ID,
		CommissionRate: &newRate,
	})
	require.NoError(t, err)
	assert.True(t, updated.CommissionRate.Equal(newRate))

	// The committed commission snapshot is untouched by the new rate.
	var stored decimal.Decimal
	err = db.QueryRow(ctx, "SELECT commission_earned FROM sales WHERE id = $1", saleID).Scan(&stored)
	require.NoError(t, err)
	assert.True(t, stored.Equal(mustDecimal(t, "100.00")))
}

func TestEmployeeService_DeleteEmployee_SoftWhenReferenced(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	resetEmployeeTables(t, ctx, db)

	svc := newTestEmployeeService(db)

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:           "Carol Ng",
		HireDate:       "2021-01-15",
		CommissionRate: mustDecimal(t, "0.08"),
	})
	require.NoError(t, err)
	insertTestSale(t, ctx, db, created.ID, "2024-02-20", "800", "64.00", "0")

	resp, err := svc.DeleteEmployee(ctx, created.ID)

	require.NoError(t, err)
	assert.True(t, resp.Deactivated)
	assert.False(t, resp.Deleted)

	got, err := svc.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestEmployeeService_DeleteEmployee_HardWhenUnreferenced(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	resetEmployeeTables(t, ctx, db)

	svc := newTestEmployeeService(db)

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:           "Dave Okafor",
		HireDate:       "2024-05-01",
		CommissionRate: mustDecimal(t, "0.12"),
	})
	require.NoError(t, err)

	resp, err := svc.DeleteEmployee(ctx, created.ID)

	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.False(t, resp.Deactivated)

	_, err = svc.GetEmployee(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_Balance(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	resetEmployeeTables(t, ctx, db)

	svc := newTestEmployeeService(db)

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:           "Erin Walsh",
		HireDate:       "2020-06-01",
		CommissionRate: mustDecimal(t, "0.10"),
	})
	require.NoError(t, err)

	// Before the window: 300 earned, 100 drawn.
	insertTestSale(t, ctx, db, created.ID, "2024-01-20", "3000", "300.00", "100.00")
	// Inside the window, in date order.
	insertTestSale(t, ctx, db, created.ID, "2024-02-15", "1000", "100.00", "0")
	insertTestSale(t, ctx, db, created.ID, "2024-03-10", "2000", "200.00", "600.00")

	resp, err := svc.Balance(ctx, created.ID, period.Query{
		Period: "custom",
		Start:  "2024-02-01",
		End:    "2024-03-31",
	})

	require.NoError(t, err)
	assert.Equal(t, "custom", resp.Window.Type)
	assert.Equal(t, "2024-02-01", resp.Window.Start)
	// The exclusive bound is the day after the requested end.
	assert.Equal(t, "2024-04-01", resp.Window.End)

	assert.True(t, resp.OpeningBalance.Equal(mustDecimal(t, "200.00")))

	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "2024-02-15", resp.Entries[0].Date)
	assert.True(t, resp.Entries[0].Balance.Equal(mustDecimal(t, "300.00")))
	assert.Equal(t, "2024-03-10", resp.Entries[1].Date)
	assert.True(t, resp.Entries[1].Balance.Equal(mustDecimal(t, "-100.00")))

	// Closing matches the last ledger line, negative means owed back.
	assert.True(t, resp.ClosingBalance.Equal(mustDecimal(t, "-100.00")))
}

func TestEmployeeService_Balance_EmptyWindow(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	resetEmployeeTables(t, ctx, db)

	svc := newTestEmployeeService(db)

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:           "Frank Ivanov",
		HireDate:       "2020-06-01",
		CommissionRate: mustDecimal(t, "0.10"),
	})
	require.NoError(t, err)

	insertTestSale(t, ctx, db, created.ID, "2023-11-05", "1500", "150.00", "50.00")

	resp, err := svc.Balance(ctx, created.ID, period.Query{
		Period: "custom",
		Start:  "2024-06-01",
		End:    "2024-06-30",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Entries)
	// With no activity inside the window the closing balance is the
	// opening balance.
	assert.True(t, resp.OpeningBalance.Equal(mustDecimal(t, "100.00")))
	assert.True(t, resp.ClosingBalance.Equal(mustDecimal(t, "100.00")))
}
