package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salescope/salestracker-backend-go/internal/domain/goal"
	"github.com/salescope/salestracker-backend-go/internal/handler/http/response"
)

type GoalHandler interface {
	GetGoal(w http.ResponseWriter, r *http.Request)
	CreateGoal(w http.ResponseWriter, r *http.Request)
	UpdateGoal(w http.ResponseWriter, r *http.Request)
	DeleteGoal(w http.ResponseWriter, r *http.Request)
	ListGoals(w http.ResponseWriter, r *http.Request)
	Progress(w http.ResponseWriter, r *http.Request)
}

type goalHandlerImpl struct {
	goalService goal.GoalService
}

func NewGoalHandler(goalService goal.GoalService) GoalHandler {
	return &goalHandlerImpl{
		goalService: goalService,
	}
}

// GetGoal implements GoalHandler
func (h *goalHandlerImpl) GetGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Goal ID is required", nil)
		return
	}

	result, err := h.goalService.GetGoal(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateGoal implements GoalHandler
func (h *goalHandlerImpl) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goal.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.goalService.CreateGoal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Goal created successfully", result)
}

// UpdateGoal implements GoalHandler
func (h *goalHandlerImpl) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Goal ID is required", nil)
		return
	}

	var req goal.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	// Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.goalService.UpdateGoal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Goal updated successfully", result)
}

// DeleteGoal implements GoalHandler
func (h *goalHandlerImpl) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Goal ID is required", nil)
		return
	}

	if err := h.goalService.DeleteGoal(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Goal deleted successfully", nil)
}

// ListGoals implements GoalHandler
func (h *goalHandlerImpl) ListGoals(w http.ResponseWriter, r *http.Request) {
	filter := goal.GoalFilter{}

	// Filters
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if activeOn := r.URL.Query().Get("active_on"); activeOn != "" {
		filter.ActiveOn = &activeOn
	}

	// Pagination
	filter.Page = getIntQueryParam(r, "page", 1)
	filter.Limit = getIntQueryParam(r, "limit", 20)

	// Validate filter
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.goalService.ListGoals(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Progress implements GoalHandler
func (h *goalHandlerImpl) Progress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Goal ID is required", nil)
		return
	}

	result, err := h.goalService.Progress(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
