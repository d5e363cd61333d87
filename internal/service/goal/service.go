package goal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/goal"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
)

type GoalServiceImpl struct {
	goalRepo     goal.GoalRepository
	employeeRepo employee.EmployeeRepository
	saleRepo     sale.SaleRepository
}

func NewGoalService(goalRepo goal.GoalRepository, employeeRepo employee.EmployeeRepository, saleRepo sale.SaleRepository) goal.GoalService {
	return &GoalServiceImpl{
		goalRepo:     goalRepo,
		employeeRepo: employeeRepo,
		saleRepo:     saleRepo,
	}
}

// GetGoal implements goal.GoalService.
func (s *GoalServiceImpl) GetGoal(ctx context.Context, id string) (goal.GoalResponse, error) {
	g, err := s.goalRepo.GetWithEmployee(ctx, id)
	if err != nil {
		return goal.GoalResponse{}, err
	}
	return goal.NewGoalWithEmployeeResponse(g), nil
}

// CreateGoal implements goal.GoalService.
func (s *GoalServiceImpl) CreateGoal(ctx context.Context, req goal.CreateGoalRequest) (goal.GoalResponse, error) {
	if err := req.Validate(); err != nil {
		return goal.GoalResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return goal.GoalResponse{}, goal.ErrEmployeeMissing
		}
		return goal.GoalResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start, err := time.Parse(period.DateLayout, req.PeriodStart)
	if err != nil {
		return goal.GoalResponse{}, goal.ErrInvalidRange
	}
	end, err := time.Parse(period.DateLayout, req.PeriodEnd)
	if err != nil {
		return goal.GoalResponse{}, goal.ErrInvalidRange
	}

	periodType := period.TypeCustom
	if req.PeriodType != "" {
		periodType = period.Type(req.PeriodType)
	}

	created, err := s.goalRepo.Create(ctx, goal.Goal{
		EmployeeID:  emp.ID,
		PeriodType:  periodType,
		PeriodStart: start,
		PeriodEnd:   end,
		RevenueGoal: req.RevenueGoal,
		DealsGoal:   req.DealsGoal,
	})
	if err != nil {
		return goal.GoalResponse{}, err
	}

	resp := goal.NewGoalResponse(created)
	resp.EmployeeName = emp.Name
	return resp, nil
}

// UpdateGoal implements goal.GoalService.
func (s *GoalServiceImpl) UpdateGoal(ctx context.Context, req goal.UpdateGoalRequest) (goal.GoalResponse, error) {
	if err := req.Validate(); err != nil {
		return goal.GoalResponse{}, err
	}

	g, err := s.goalRepo.GetByID(ctx, req.ID)
	if err != nil {
		return goal.GoalResponse{}, err
	}

	if req.PeriodType != nil {
		g.PeriodType = period.Type(*req.PeriodType)
	}
	if req.PeriodStart != nil {
		start, err := time.Parse(period.DateLayout, *req.PeriodStart)
		if err != nil {
			return goal.GoalResponse{}, goal.ErrInvalidRange
		}
		g.PeriodStart = start
	}
	if req.PeriodEnd != nil {
		end, err := time.Parse(period.DateLayout, *req.PeriodEnd)
		if err != nil {
			return goal.GoalResponse{}, goal.ErrInvalidRange
		}
		g.PeriodEnd = end
	}
	if req.RevenueGoal != nil {
		g.RevenueGoal = *req.RevenueGoal
	}
	if req.DealsGoal != nil {
		g.DealsGoal = *req.DealsGoal
	}

	if g.PeriodEnd.Before(g.PeriodStart) {
		return goal.GoalResponse{}, goal.ErrInvalidRange
	}
	if g.RevenueGoal.IsZero() && g.DealsGoal == 0 {
		return goal.GoalResponse{}, goal.ErrNoTarget
	}

	if _, err := s.goalRepo.Update(ctx, g); err != nil {
		return goal.GoalResponse{}, err
	}

	updated, err := s.goalRepo.GetWithEmployee(ctx, g.ID)
	if err != nil {
		return goal.GoalResponse{}, err
	}

	return goal.NewGoalWithEmployeeResponse(updated), nil
}

// DeleteGoal implements goal.GoalService.
func (s *GoalServiceImpl) DeleteGoal(ctx context.Context, id string) error {
	return s.goalRepo.Delete(ctx, id)
}

// ListGoals implements goal.GoalService.
func (s *GoalServiceImpl) ListGoals(ctx context.Context, filter goal.GoalFilter) (goal.ListGoalsResponse, error) {
	if err := filter.Validate(); err != nil {
		return goal.ListGoalsResponse{}, err
	}

	goals, total, err := s.goalRepo.List(ctx, filter)
	if err != nil {
		return goal.ListGoalsResponse{}, err
	}

	responses := make([]goal.GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, goal.NewGoalWithEmployeeResponse(g))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return goal.ListGoalsResponse{
		Goals:      responses,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Progress implements goal.GoalService.
func (s *GoalServiceImpl) Progress(ctx context.Context, id string) (goal.ProgressResponse, error) {
	g, err := s.goalRepo.GetWithEmployee(ctx, id)
	if err != nil {
		return goal.ProgressResponse{}, err
	}

	window, err := period.Custom(g.PeriodStart, g.PeriodEnd).Resolve()
	if err != nil {
		return goal.ProgressResponse{}, fmt.Errorf("failed to resolve goal range: %w", err)
	}

	records, err := s.saleRepo.ListByEmployee(ctx, g.EmployeeID, window.Start, window.End)
	if err != nil {
		return goal.ProgressResponse{}, err
	}

	return goal.NewProgressResponse(g, records), nil
}
