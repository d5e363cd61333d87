package goal

import "context"

// GoalService defines business logic for goal tracking
type GoalService interface {
	GetGoal(ctx context.Context, id string) (GoalResponse, error)
	CreateGoal(ctx context.Context, req CreateGoalRequest) (GoalResponse, error)
	UpdateGoal(ctx context.Context, req UpdateGoalRequest) (GoalResponse, error)
	DeleteGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context, filter GoalFilter) (ListGoalsResponse, error)

	// Progress aggregates the employee's sales over the goal's range
	// and reports attainment against both targets.
	Progress(ctx context.Context, id string) (ProgressResponse, error)
}
