package sale

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/pkg/validator"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
)

var testDB *database.DB

func saleTestDB(t *testing.T) *database.DB {
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

func resetSaleTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	_, err := db.Exec(ctx, "TRUNCATE TABLE sales, goals, employees CASCADE")
	require.NoError(t, err)
}

func newTestSaleService(db *database.DB) sale.SaleService {
	return NewSaleService(postgresql.NewSaleRepository(db), postgresql.NewEmployeeRepository(db))
}

func seedEmployee(t *testing.T, ctx context.Context, db *database.DB, name, rate string) string {
	t.Helper()

	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (id, name, hire_date, commission_rate, draw_amount)
		VALUES (gen_random_uuid(), $1, '2022-01-01', $2, 0)
		RETURNING id
	`, name, rate).Scan(&id)
	require.NoError(t, err)
	return id
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestSaleService_CreateSale(t *testing.T) {
	ctx := context.Background()
	db := saleTestDB(t)
	resetSaleTables(t, ctx, db)

	empID := seedEmployee(t, ctx, db, "Alice Moreau", "0.10")
	svc := newTestSaleService(db)

	resp, err := svc.CreateSale(ctx, sale.CreateSaleRequest{
		EmployeeID:    empID,
		Date:          "2024-03-05",
		RevenueAmount: mustDecimal(t, "2000"),
		DealCount:     3,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, empID, resp.EmployeeID)
	assert.Equal(t, "Alice Moreau", resp.EmployeeName)
	assert.Equal(t, "2024-03-05", resp.Date)
	assert.True(t, resp.CommissionEarned.Equal(mustDecimal(t, "200.00")))
	assert.True(t, resp.DrawPayment.IsZero())
	assert.Equal(t, "month", resp.PeriodType)
}

func TestSaleService_CreateSale_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	db := saleTestDB(t)
	resetSaleTables(t, ctx, db)

	svc := newTestSaleService(db)

	_, err := svc.CreateSale(ctx, sale.CreateSaleRequest{
		EmployeeID:    uuid.NewString(),
		Date:          "2024-03-05",
		RevenueAmount: mustDecimal(t, "500"),
		DealCount:     1,
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSaleService_CreateSale_Invalid(t *testing.T) {
	ctx := context.Background()
	db := saleTestDB(t)
	resetSaleTables(t, ctx, db)

	svc := newTestSaleService(db)

	_, err := svc.CreateSale(ctx, sale.CreateSaleRequest{
		EmployeeID:    uuid.NewString(),
		Date:          "03/05/2024",
		RevenueAmount: mustDecimal(t, "-10"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, ve.Field)
	}
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "revenue_amount")
}

func TestSaleService_UpdateSale_RecomputesCommission(t *testing.T) {
	ctx := context.Background()
	db := saleTestDB(t)
	resetSaleTables(t, ctx, db)

	empID := seedEmployee(t, ctx, db, "Bob Tanaka", "0.10")
	svc := newTestSaleService(db)

	created, err := svc.CreateSale(ctx, sale.CreateSaleRequest{
		EmployeeID:    empID,
		Date:          "2024-03-05",
		RevenueAmount: mustDecimal(t, "1000"),
		DealCount:     1,
	})
	require.NoError(t, err)
	require.True(t, created.CommissionEarned.Equal(mustDecimal(t, "100.00")))

	// The employee's rate changed since the record was entered. Any
	// edit recomputes the snapshot at the current rate.
	_, err = db.Exec(ctx, "UPDATE employees SET commission_rate = 0.20 WHERE id = $1", empID)
	require.NoError(t, err)

	deals := int64(2)
	updated, err := svc.UpdateSale(ctx, sale.UpdateSaleRequest{
		ID:        created.ID,
		DealCount: &deals,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.DealCount)
	assert.True(t, updated.CommissionEarned.Equal(mustDecimal(t, "200.00")))
}

func TestSaleService_UpdateSale_ReassignEmployee(t *testing.T) {
	ctx := context.Background()
	db := saleTestDB(t)
	resetSaleTables(t, ctx, db)

	firstID := seedEmployee(t, ctx, db, "Carol Ng", "0.10")
	secondID := seedEmployee(t, ctx, db, "Dave Okafor", "0.50")
	svc := newTestSaleService(db)

	created, err := svc.CreateSale(ctx, sale.CreateSaleRequest{
		EmployeeID:    firstID,
		Date:          "2024-04-10",
		RevenueAmount: mustDecimal(t, "1000"),
		DealCount:     1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateSale(ctx, sale.UpdateSaleRequest{
		ID:         created.ID,
		EmployeeID: &secondID,
	})

	require.NoError(t, err)
	assert.Equal(t, secondID, updated.EmployeeID)
	assert.Equal(t, "Dave Okafor", updated.EmployeeName)
	// Commission follows the new owner's rate.
	assert.True(t, updated.CommissionEarned.Equal(mustDecimal(t, "500.00")))
}

func TestSaleService_DeleteSale(t *testing.T) {
	ctx := context.Background()
	db := saleTestDB(t)
	resetSaleTables(t, ctx, db)

	empID := seedEmployee(t, ctx, db, "Erin Walsh", "0.10")
	svc := newTestSaleService(db)

	created, err := svc.CreateSale(ctx, sale.CreateSaleRequest{
		EmployeeID:    empID,
		Date:          "2024-05-01",
		RevenueAmount: mustDecimal(t, "750"),
		DealCount:     1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSale(ctx, created.ID))

	_, err = svc.GetSale(ctx, created.ID)
	assert.ErrorIs(t, err, sale.ErrSaleNotFound)

	err = svc.DeleteSale(ctx, created.ID)
	assert.ErrorIs(t, err, sale.ErrSaleNotFound)
}

func TestSaleService_ListSales_FilterByEmployee(t *testing.T) {
	ctx := context.Background()
	db := saleTestDB(t)
	resetSaleTables(t, ctx, db)

	aliceID := seedEmployee(t, ctx, db, "Alice Moreau", "0.10")
	bobID := seedEmployee(t, ctx, db, "Bob Tanaka", "0.10")
	svc := newTestSaleService(db)

	for _, fixture := range []struct {
		employeeID string
		date       string
	}{
		{aliceID, "2024-03-01"},
		{aliceID, "2024-03-02"},
		{bobID, "2024-03-03"},
	} {
		_, err := svc.CreateSale(ctx, sale.CreateSaleRequest{
			EmployeeID:    fixture.employeeID,
			Date:          fixture.date,
			RevenueAmount: mustDecimal(t, "100"),
			DealCount:     1,
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListSales(ctx, sale.SaleFilter{EmployeeID: &aliceID})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalItems)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Sales, 2)
	for _, s := range resp.Sales {
		assert.Equal(t, aliceID, s.EmployeeID)
		assert.Equal(t, "Alice Moreau", s.EmployeeName)
	}
}

func TestSaleService_RecentSales(t *testing.T) {
	ctx := context.Background()
	db := saleTestDB(t)
	resetSaleTables(t, ctx, db)

	empID := seedEmployee(t, ctx, db, "Frank Ivanov", "0.10")
	svc := newTestSaleService(db)

	// Entry order decides recency, not the sale date.
	for _, fixture := range []struct {
		date      string
		createdAt string
	}{
		{"2024-06-10", "2024-06-11 09:00:00+00"},
		{"2024-06-01", "2024-06-12 09:00:00+00"},
		{"2024-06-05", "2024-06-13 09:00:00+00"},
	} {
		_, err := db.Exec(ctx, `
			INSERT INTO sales (id, employee_id, date, revenue_amount, number_of_deals, commission_earned, draw_payment, period_type, created_at, updated_at)
			VALUES (gen_random_uuid(), $1, $2, 100, 1, 10, 0, 'month', $3, $3)
		`, empID, fixture.date, fixture.createdAt)
		require.NoError(t, err)
	}

	recent, err := svc.RecentSales(ctx, 2)

	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-06-05", recent[0].Date)
	assert.Equal(t, "2024-06-01", recent[1].Date)
}
