package employee

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/salescope/salestracker-backend-go/internal/domain/commission"
	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/domain/settings"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	saleRepo     sale.SaleRepository
	settingsRepo settings.SettingsRepository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository, saleRepo sale.SaleRepository, settingsRepo settings.SettingsRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	name := strings.TrimSpace(req.Name)

	exists, err := s.employeeRepo.ExistsByName(ctx, name, "")
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee name: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrNameExists
	}

	hireDate, err := time.Parse(period.DateLayout, req.HireDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse hire date: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:           name,
		HireDate:       hireDate,
		IsActive:       isActive,
		CommissionRate: req.CommissionRate,
		DrawAmount:     req.DrawAmount,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		exists, err := s.employeeRepo.ExistsByName(ctx, name, emp.ID)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee name: %w", err)
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrNameExists
		}
		emp.Name = name
	}

	if req.HireDate != nil {
		hireDate, err := time.Parse(period.DateLayout, *req.HireDate)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to parse hire date: %w", err)
		}
		emp.HireDate = hireDate
	}

	// Rate changes apply to future entries only; committed commission
	// snapshots stay as written.
	if req.CommissionRate != nil {
		emp.CommissionRate = *req.CommissionRate
	}
	if req.DrawAmount != nil {
		emp.DrawAmount = *req.DrawAmount
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService. An employee with
// sale records on file is deactivated, not deleted, so reports keep
// their history. The count and the chosen action run in one
// transaction so they see the same state.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) (employee.DeleteEmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.DeleteEmployeeResponse{}, err
	}

	var resp employee.DeleteEmployeeResponse
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		count, err := s.saleRepo.CountByEmployee(txCtx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to count sales: %w", err)
		}

		if count > 0 {
			if err := s.employeeRepo.SetActive(txCtx, emp.ID, false); err != nil {
				return err
			}
			resp = employee.DeleteEmployeeResponse{ID: emp.ID, Deactivated: true}
			return nil
		}

		if err := s.employeeRepo.Delete(txCtx, emp.ID); err != nil {
			return err
		}
		resp = employee.DeleteEmployeeResponse{ID: emp.ID, Deleted: true}
		return nil
	})
	if err != nil {
		return employee.DeleteEmployeeResponse{}, err
	}
	return resp, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return employee.ListEmployeesResponse{
		Employees:  responses,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Balance implements employee.EmployeeService. The ledger covers the
// requested window; activity before it is folded into the opening
// balance so the closing number matches the all-time position.
func (s *EmployeeServiceImpl) Balance(ctx context.Context, id string, q period.Query) (employee.BalanceResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.BalanceResponse{}, err
	}

	// An explicit period wins; otherwise the stored default applies,
	// the same resolution the analytics endpoints use.
	var def period.Type
	if q.Period == "" {
		current, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return employee.BalanceResponse{}, err
		}
		def = current.DefaultPeriod
	}

	spec, err := period.ParseSpec(q, def, time.Now())
	if err != nil {
		return employee.BalanceResponse{}, err
	}
	window, err := spec.Resolve()
	if err != nil {
		return employee.BalanceResponse{}, err
	}

	priorCommission, priorDraw, err := s.saleRepo.PriorTotals(ctx, emp.ID, window.Start)
	if err != nil {
		return employee.BalanceResponse{}, err
	}
	opening := priorCommission.Sub(priorDraw)

	records, err := s.saleRepo.ListByEmployee(ctx, emp.ID, window.Start, window.End)
	if err != nil {
		return employee.BalanceResponse{}, err
	}

	entries := make([]employee.LedgerEntry, 0, len(records))
	balance := opening
	for _, rec := range records {
		balance, err = commission.RunningBalance(balance, rec.DrawPayment, rec.CommissionEarned)
		if err != nil {
			return employee.BalanceResponse{}, fmt.Errorf("failed to advance balance for sale %s: %w", rec.ID, err)
		}
		entries = append(entries, employee.LedgerEntry{
			SaleID:     rec.ID,
			Date:       rec.Date.Format(period.DateLayout),
			Revenue:    rec.RevenueAmount,
			Deals:      rec.DealCount,
			Commission: rec.CommissionEarned,
			Draw:       rec.DrawPayment,
			Balance:    balance,
		})
	}

	return employee.BalanceResponse{
		Employee: employee.NewEmployeeResponse(emp),
		Window: employee.BalanceWindow{
			Type:  string(spec.Type),
			Label: window.Label,
			Start: window.Start.Format(period.DateLayout),
			End:   window.End.Format(period.DateLayout),
		},
		OpeningBalance: opening,
		Entries:        entries,
		ClosingBalance: balance,
	}, nil
}
