package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
)

func TestSaleRepository_CreateAndGet(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)
	empID := createTestEmployee(t, ctx, "Alice Moreau", "0.10")

	created, err := repo.Create(ctx, sale.SaleRecord{
		EmployeeID:       empID,
		Date:             mustDate(t, "2024-03-05"),
		RevenueAmount:    mustDecimal(t, "2000"),
		DealCount:        3,
		CommissionEarned: mustDecimal(t, "200.00"),
		DrawPayment:      mustDecimal(t, "500.00"),
		PeriodType:       period.TypeMonth,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.CommissionEarned.Equal(mustDecimal(t, "200.00")))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, int64(3), got.DealCount)
	assert.Equal(t, period.TypeMonth, got.PeriodType)

	withEmp, err := repo.GetWithEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Moreau", withEmp.EmployeeName)
}

func TestSaleRepository_GetByID_NotFound(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)

	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, sale.ErrSaleNotFound)
}

func TestSaleRepository_Update_Success(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)
	empID := createTestEmployee(t, ctx, "Alice Moreau", "0.10")
	id := createTestSale(t, ctx, empID, "2024-03-05", "2000", 3)

	rec, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	rec.RevenueAmount = mustDecimal(t, "2500")
	rec.CommissionEarned = mustDecimal(t, "250.00")

	updated, err := repo.Update(ctx, rec)
	require.NoError(t, err)
	assert.True(t, updated.RevenueAmount.Equal(mustDecimal(t, "2500")))
	assert.True(t, updated.CommissionEarned.Equal(mustDecimal(t, "250.00")))
}

func TestSaleRepository_List_DateRangeInclusive(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)
	empID := createTestEmployee(t, ctx, "Alice Moreau", "0.10")
	createTestSale(t, ctx, empID, "2024-02-29", "100", 1)
	createTestSale(t, ctx, empID, "2024-03-01", "200", 1)
	createTestSale(t, ctx, empID, "2024-03-31", "300", 1)
	createTestSale(t, ctx, empID, "2024-04-01", "400", 1)

	// Filter bounds include both endpoints.
	list, total, err := repo.List(ctx, sale.SaleFilter{
		StartDate: strPtr("2024-03-01"),
		EndDate:   strPtr("2024-03-31"),
		Page:      1,
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	for _, rec := range list {
		assert.Equal(t, "Alice Moreau", rec.EmployeeName)
	}
}

func TestSaleRepository_List_FilterByEmployeeAndSort(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)
	aliceID := createTestEmployee(t, ctx, "Alice Moreau", "0.10")
	bobID := createTestEmployee(t, ctx, "Bob Tanaka", "0.05")
	createTestSale(t, ctx, aliceID, "2024-03-05", "100", 1)
	createTestSale(t, ctx, bobID, "2024-03-06", "900", 1)
	createTestSale(t, ctx, aliceID, "2024-03-07", "500", 1)

	list, total, err := repo.List(ctx, sale.SaleFilter{EmployeeID: &aliceID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	// Default sort is date descending.
	assert.Equal(t, "2024-03-07", list[0].Date.Format("2006-01-02"))

	list, _, err = repo.List(ctx, sale.SaleFilter{Page: 1, Limit: 10, SortBy: "revenue_amount", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].RevenueAmount.Equal(mustDecimal(t, "900")))
}

func TestSaleRepository_ListRecent(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)
	empID := createTestEmployee(t, ctx, "Alice Moreau", "0.10")
	createTestSale(t, ctx, empID, "2024-03-05", "100", 1)
	createTestSale(t, ctx, empID, "2024-01-02", "200", 1)
	createTestSale(t, ctx, empID, "2024-02-10", "300", 1)

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Recency follows insertion order, not the sale date.
	assert.True(t, recent[0].RevenueAmount.Equal(mustDecimal(t, "300")))
	assert.True(t, recent[1].RevenueAmount.Equal(mustDecimal(t, "200")))
}

func TestSaleRepository_ListByEmployee_HalfOpenWindow(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)
	empID := createTestEmployee(t, ctx, "Alice Moreau", "0.10")
	createTestSale(t, ctx, empID, "2024-02-29", "100", 1)
	createTestSale(t, ctx, empID, "2024-03-01", "200", 1)
	createTestSale(t, ctx, empID, "2024-03-31", "300", 1)
	createTestSale(t, ctx, empID, "2024-04-01", "400", 1)

	records, err := repo.ListByEmployee(ctx, empID, mustDate(t, "2024-03-01"), mustDate(t, "2024-04-01"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-01", records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-03-31", records[1].Date.Format("2006-01-02"))
}

func TestSaleRepository_PriorTotals(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)
	empID := createTestEmployee(t, ctx, "Alice Moreau", "0.10")

	_, err := testDB.Exec(ctx, `
		INSERT INTO sales (id, employee_id, date, revenue_amount, number_of_deals, commission_earned, draw_payment, period_type)
		VALUES
			(gen_random_uuid(), $1, '2024-01-15', 1000, 1, 100.00, 500.00, 'month'),
			(gen_random_uuid(), $1, '2024-02-15', 2000, 1, 200.00, 500.00, 'month'),
			(gen_random_uuid(), $1, '2024-03-15', 3000, 1, 300.00, 500.00, 'month')
	`, empID)
	require.NoError(t, err)

	commission, draw, err := repo.PriorTotals(ctx, empID, mustDate(t, "2024-03-01"))
	require.NoError(t, err)
	assert.True(t, commission.Equal(mustDecimal(t, "300.00")), "got %s", commission)
	assert.True(t, draw.Equal(mustDecimal(t, "1000.00")), "got %s", draw)

	// No history at all still yields zeros, not an error.
	commission, draw, err = repo.PriorTotals(ctx, empID, mustDate(t, "2024-01-01"))
	require.NoError(t, err)
	assert.True(t, commission.IsZero())
	assert.True(t, draw.IsZero())
}

func TestSaleRepository_BatchCreate_RollsBackWithTransaction(t *testing.T) {
	requireDB(t)
	defer resetTables(t)
	resetTables(t)

	ctx := context.Background()
	repo := postgresql.NewSaleRepository(testDB)
	empID := createTestEmployee(t, ctx, "Alice Moreau", "0.10")

	records := []sale.SaleRecord{
		{EmployeeID: empID, Date: mustDate(t, "2024-03-01"), RevenueAmount: mustDecimal(t, "100"), DealCount: 1, PeriodType: period.TypeMonth},
		{EmployeeID: empID, Date: mustDate(t, "2024-03-02"), RevenueAmount: mustDecimal(t, "200"), DealCount: 1, PeriodType: period.TypeMonth},
	}

	boom := errors.New("boom")
	err := postgresql.WithTransaction(ctx, testDB, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		if err := repo.BatchCreate(txCtx, records); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := repo.CountByEmployee(ctx, empID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	err = postgresql.WithTransaction(ctx, testDB, func(tx pgx.Tx) error {
		return repo.BatchCreate(postgresql.ContextWithTx(ctx, tx), records)
	})
	require.NoError(t, err)

	count, err = repo.CountByEmployee(ctx, empID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
