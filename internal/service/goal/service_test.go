package goal

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

	"github.com/salescope/salestracker-backend-go/internal/domain/goal"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
)

var testDB *database.DB

func goalTestDB(t *testing.T) *database.DB {
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

func resetGoalTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	_, err := db.Exec(ctx, "TRUNCATE TABLE sales, goals, employees CASCADE")
	require.NoError(t, err)
}

func newTestGoalService(db *database.DB) goal.GoalService {
	return NewGoalService(
		postgresql.NewGoalRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewSaleRepository(db),
	)
}

func seedGoalEmployee(t *testing.T, ctx context.Context, db *database.DB, name string) string {
	t.Helper()

	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (id, name, hire_date, commission_rate, draw_amount)
		VALUES (gen_random_uuid(), $1, '2022-01-01', 0.10, 0)
		RETURNING id
	`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedGoalSale(t *testing.T, ctx context.Context, db *database.DB, employeeID, date, revenue string, deals int64) {
	t.Helper()

	_, err := db.Exec(ctx, `
		INSERT INTO sales (id, employee_id, date, revenue_amount, number_of_deals, commission_earned, draw_payment, period_type)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, 0, 0, 'month')
	`, employeeID, date, revenue, deals)
	require.NoError(t, err)
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestGoalService_CreateGoal(t *testing.T) {
	ctx := context.Background()
	db := goalTestDB(t)
	resetGoalTables(t, ctx, db)

	empID := seedGoalEmployee(t, ctx, db, "Alice Moreau")
	svc := newTestGoalService(db)

	resp, err := svc.CreateGoal(ctx, goal.CreateGoalRequest{
		EmployeeID:  empID,
		PeriodType:  "month",
		PeriodStart: "2024-03-01",
		PeriodEnd:   "2024-03-31",
		RevenueGoal: mustDecimal(t, "10000"),
		DealsGoal:   20,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Alice Moreau", resp.EmployeeName)
	assert.Equal(t, "month", resp.PeriodType)
	assert.Equal(t, "2024-03-01", resp.PeriodStart)
	assert.Equal(t, "2024-03-31", resp.PeriodEnd)
	assert.True(t, resp.RevenueGoal.Equal(mustDecimal(t, "10000")))
	assert.Equal(t, int64(20), resp.DealsGoal)
}

func TestGoalService_CreateGoal_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	db := goalTestDB(t)
	resetGoalTables(t, ctx, db)

	svc := newTestGoalService(db)

	_, err := svc.CreateGoal(ctx, goal.CreateGoalRequest{
		EmployeeID:  uuid.NewString(),
		PeriodStart: "2024-03-01",
		PeriodEnd:   "2024-03-31",
		RevenueGoal: mustDecimal(t, "10000"),
	})

	assert.ErrorIs(t, err, goal.ErrEmployeeMissing)
}

func TestGoalService_UpdateGoal_RangeAndTargetGuards(t *testing.T) {
	ctx := context.Background()
	db := goalTestDB(t)
	resetGoalTables(t, ctx, db)

	empID := seedGoalEmployee(t, ctx, db, "Bob Tanaka")
	svc := newTestGoalService(db)

	created, err := svc.CreateGoal(ctx, goal.CreateGoalRequest{
		EmployeeID:  empID,
		PeriodStart: "2024-03-01",
		PeriodEnd:   "2024-03-31",
		RevenueGoal: mustDecimal(t, "5000"),
	})
	require.NoError(t, err)

	// The combined range must stay valid even when only one bound moves.
	badEnd := "2024-02-15"
	_, err = svc.UpdateGoal(ctx, goal.UpdateGoalRequest{ID: created.ID, PeriodEnd: &badEnd})
	assert.ErrorIs(t, err, goal.ErrInvalidRange)

	// Zeroing the revenue target with no deals target leaves nothing to track.
	zero := decimal.Zero
	_, err = svc.UpdateGoal(ctx, goal.UpdateGoalRequest{ID: created.ID, RevenueGoal: &zero})
	assert.ErrorIs(t, err, goal.ErrNoTarget)

	// Moving to a deals target at the same time is fine.
	deals := int64(15)
	updated, err := svc.UpdateGoal(ctx, goal.UpdateGoalRequest{
		ID:          created.ID,
		RevenueGoal: &zero,
		DealsGoal:   &deals,
	})
	require.NoError(t, err)
	assert.True(t, updated.RevenueGoal.IsZero())
	assert.Equal(t, int64(15), updated.DealsGoal)
}

func TestGoalService_DeleteGoal(t *testing.T) {
	ctx := context.Background()
	db := goalTestDB(t)
	resetGoalTables(t, ctx, db)

	empID := seedGoalEmployee(t, ctx, db, "Carol Ng")
	svc := newTestGoalService(db)

	created, err := svc.CreateGoal(ctx, goal.CreateGoalRequest{
		EmployeeID:  empID,
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-12-31",
		DealsGoal:   100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGoal(ctx, created.ID))

	_, err = svc.GetGoal(ctx, created.ID)
	assert.ErrorIs(t, err, goal.ErrGoalNotFound)
}

func TestGoalService_ListGoals_ActiveOn(t *testing.T) {
	ctx := context.Background()
	db := goalTestDB(t)
	resetGoalTables(t, ctx, db)

	empID := seedGoalEmployee(t, ctx, db, "Dave Okafor")
	svc := newTestGoalService(db)

	for _, fixture := range []struct{ start, end string }{
		{"2024-01-01", "2024-03-31"},
		{"2024-04-01", "2024-06-30"},
	} {
		_, err := svc.CreateGoal(ctx, goal.CreateGoalRequest{
			EmployeeID:  empID,
			PeriodStart: fixture.start,
			PeriodEnd:   fixture.end,
			RevenueGoal: mustDecimal(t, "1000"),
		})
		require.NoError(t, err)
	}

	activeOn := "2024-05-15"
	resp, err := svc.ListGoals(ctx, goal.GoalFilter{ActiveOn: &activeOn})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalItems)
	require.Len(t, resp.Goals, 1)
	assert.Equal(t, "2024-04-01", resp.Goals[0].PeriodStart)
}

func TestGoalService_Progress(t *testing.T) {
	ctx := context.Background()
	db := goalTestDB(t)
	resetGoalTables(t, ctx, db)

	empID := seedGoalEmployee(t, ctx, db, "Erin Walsh")
	svc := newTestGoalService(db)

	created, err := svc.CreateGoal(ctx, goal.CreateGoalRequest{
		EmployeeID:  empID,
		PeriodStart: "2024-03-01",
		PeriodEnd:   "2024-03-31",
		RevenueGoal: mustDecimal(t, "10000"),
		DealsGoal:   8,
	})
	require.NoError(t, err)

	// Inside the range.
	seedGoalSale(t, ctx, db, empID, "2024-03-05", "3000", 2)
	seedGoalSale(t, ctx, db, empID, "2024-03-31", "4500", 4)
	// Outside the range, must not count.
	seedGoalSale(t, ctx, db, empID, "2024-04-01", "9999", 9)

	progress, err := svc.Progress(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, progress.Goal.ID)
	assert.True(t, progress.ActualRevenue.Equal(mustDecimal(t, "7500")))
	assert.Equal(t, int64(6), progress.ActualDeals)
	assert.True(t, progress.RevenuePercent.Equal(mustDecimal(t, "75.0")), "got %s", progress.RevenuePercent)
	assert.True(t, progress.DealsPercent.Equal(mustDecimal(t, "75.0")), "got %s", progress.DealsPercent)
}

func TestGoalService_Progress_ZeroTargetReportsZero(t *testing.T) {
	ctx := context.Background()
	db := goalTestDB(t)
	resetGoalTables(t, ctx, db)

	empID := seedGoalEmployee(t, ctx, db, "Frank Ivanov")
	svc := newTestGoalService(db)

	created, err := svc.CreateGoal(ctx, goal.CreateGoalRequest{
		EmployeeID:  empID,
		PeriodStart: "2024-03-01",
		PeriodEnd:   "2024-03-31",
		DealsGoal:   10,
	})
	require.NoError(t, err)

	seedGoalSale(t, ctx, db, empID, "2024-03-10", "2500", 5)

	progress, err := svc.Progress(ctx, created.ID)

	require.NoError(t, err)
	assert.True(t, progress.ActualRevenue.Equal(mustDecimal(t, "2500")))
	assert.True(t, progress.RevenuePercent.IsZero())
	assert.True(t, progress.DealsPercent.Equal(mustDecimal(t, "50.0")))
}
