package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/salescope/salestracker-backend-go/internal/domain/goal"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
)

const goalColumns = `id, employee_id, period_type, period_start, period_end, revenue_goal, deals_goal, created_at, updated_at`

type goalRepositoryImpl struct {
	db *database.DB
}

func NewGoalRepository(db *database.DB) goal.GoalRepository {
	return &goalRepositoryImpl{db: db}
}

func scanGoal(row pgx.Row) (goal.Goal, error) {
	var g goal.Goal
	err := row.Scan(
		&g.ID, &g.EmployeeID, &g.PeriodType, &g.PeriodStart, &g.PeriodEnd,
		&g.RevenueGoal, &g.DealsGoal, &g.CreatedAt, &g.UpdatedAt,
	)
	return g, err
}

// GetByID implements goal.GoalRepository.
func (g *goalRepositoryImpl) GetByID(ctx context.Context, id string) (goal.Goal, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`SELECT %s FROM goals WHERE id = $1`, goalColumns)

	found, err := scanGoal(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return goal.Goal{}, goal.ErrGoalNotFound
		}
		return goal.Goal{}, fmt.Errorf("failed to get goal %s: %w", id, err)
	}
	return found, nil
}

// GetWithEmployee implements goal.GoalRepository.
func (g *goalRepositoryImpl) GetWithEmployee(ctx context.Context, id string) (goal.GoalWithEmployee, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		SELECT g.id, g.employee_id, g.period_type, g.period_start, g.period_end,
			g.revenue_goal, g.deals_goal, g.created_at, g.updated_at,
			e.name
		FROM goals g
		JOIN employees e ON e.id = g.employee_id
		WHERE g.id = $1
	`

	var found goal.GoalWithEmployee
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.EmployeeID, &found.PeriodType, &found.PeriodStart, &found.PeriodEnd,
		&found.RevenueGoal, &found.DealsGoal, &found.CreatedAt, &found.UpdatedAt,
		&found.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return goal.GoalWithEmployee{}, goal.ErrGoalNotFound
		}
		return goal.GoalWithEmployee{}, fmt.Errorf("failed to get goal %s: %w", id, err)
	}
	return found, nil
}

// Create implements goal.GoalRepository.
func (g *goalRepositoryImpl) Create(ctx context.Context, in goal.Goal) (goal.Goal, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`
		INSERT INTO goals (id, employee_id, period_type, period_start, period_end, revenue_goal, deals_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, goalColumns)

	created, err := scanGoal(q.QueryRow(ctx, query,
		uuid.NewString(), in.EmployeeID, in.PeriodType, in.PeriodStart, in.PeriodEnd,
		in.RevenueGoal, in.DealsGoal,
	))
	if err != nil {
		return goal.Goal{}, fmt.Errorf("failed to create goal: %w", err)
	}
	return created, nil
}

// Update implements goal.GoalRepository.
func (g *goalRepositoryImpl) Update(ctx context.Context, in goal.Goal) (goal.Goal, error) {
	q := GetQuerier(ctx, g.db)

	query := fmt.Sprintf(`
		UPDATE goals
		SET employee_id = $1, period_type = $2, period_start = $3, period_end = $4,
			revenue_goal = $5, deals_goal = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING %s
	`, goalColumns)

	updated, err := scanGoal(q.QueryRow(ctx, query,
		in.EmployeeID, in.PeriodType, in.PeriodStart, in.PeriodEnd,
		in.RevenueGoal, in.DealsGoal, in.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return goal.Goal{}, goal.ErrGoalNotFound
		}
		return goal.Goal{}, fmt.Errorf("failed to update goal %s: %w", in.ID, err)
	}
	return updated, nil
}

// Delete implements goal.GoalRepository.
func (g *goalRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, g.db)

	tag, err := q.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

// List implements goal.GoalRepository.
func (g *goalRepositoryImpl) List(ctx context.Context, filter goal.GoalFilter) ([]goal.GoalWithEmployee, int64, error) {
	q := GetQuerier(ctx, g.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("g.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ActiveOn != nil && *filter.ActiveOn != "" {
		conditions = append(conditions, fmt.Sprintf("g.period_start <= $%d AND g.period_end >= $%d", argIdx, argIdx))
		args = append(args, *filter.ActiveOn)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM goals g WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count goals: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT g.id, g.employee_id, g.period_type, g.period_start, g.period_end,
			g.revenue_goal, g.deals_goal, g.created_at, g.updated_at,
			e.name
		FROM goals g
		JOIN employees e ON e.id = g.employee_id
		WHERE %s
		ORDER BY g.period_start DESC, LOWER(e.name)
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals, err := collectGoalsWithEmployee(rows)
	if err != nil {
		return nil, 0, err
	}
	return goals, total, nil
}

// ListOverlapping implements goal.GoalRepository. Goal ranges are
// inclusive on both ends while the window is half-open, so a goal
// overlaps when it starts before the window ends and ends on or after
// the window start.
func (g *goalRepositoryImpl) ListOverlapping(ctx context.Context, start, end time.Time) ([]goal.GoalWithEmployee, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		SELECT g.id, g.employee_id, g.period_type, g.period_start, g.period_end,
			g.revenue_goal, g.deals_goal, g.created_at, g.updated_at,
			e.name
		FROM goals g
		JOIN employees e ON e.id = g.employee_id
		WHERE g.period_start < $2 AND g.period_end >= $1
		ORDER BY g.period_start, LOWER(e.name)
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping goals: %w", err)
	}
	defer rows.Close()

	return collectGoalsWithEmployee(rows)
}

func collectGoalsWithEmployee(rows pgx.Rows) ([]goal.GoalWithEmployee, error) {
	var goals []goal.GoalWithEmployee
	for rows.Next() {
		var found goal.GoalWithEmployee
		err := rows.Scan(
			&found.ID, &found.EmployeeID, &found.PeriodType, &found.PeriodStart, &found.PeriodEnd,
			&found.RevenueGoal, &found.DealsGoal, &found.CreatedAt, &found.UpdatedAt,
			&found.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		goals = append(goals, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}
