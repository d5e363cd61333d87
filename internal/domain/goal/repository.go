package goal

import (
	"context"
	"time"
)

type GoalRepository interface {
	GetByID(ctx context.Context, id string) (Goal, error)
	GetWithEmployee(ctx context.Context, id string) (GoalWithEmployee, error)
	Create(ctx context.Context, g Goal) (Goal, error)
	Update(ctx context.Context, g Goal) (Goal, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter GoalFilter) ([]GoalWithEmployee, int64, error)

	// ListOverlapping returns goals whose inclusive date range
	// intersects [start, end).
	ListOverlapping(ctx context.Context, start, end time.Time) ([]GoalWithEmployee, error)
}
