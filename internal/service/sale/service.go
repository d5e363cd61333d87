package sale

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/commission"
	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
)

const defaultRecentLimit = 10

type SaleServiceImpl struct {
	saleRepo     sale.SaleRepository
	employeeRepo employee.EmployeeRepository
}

func NewSaleService(saleRepo sale.SaleRepository, employeeRepo employee.EmployeeRepository) sale.SaleService {
	return &SaleServiceImpl{
		saleRepo:     saleRepo,
		employeeRepo: employeeRepo,
	}
}

// GetSale implements sale.SaleService.
func (s *SaleServiceImpl) GetSale(ctx context.Context, id string) (sale.SaleResponse, error) {
	rec, err := s.saleRepo.GetWithEmployee(ctx, id)
	if err != nil {
		return sale.SaleResponse{}, err
	}
	return sale.NewSaleWithEmployeeResponse(rec), nil
}

// CreateSale implements sale.SaleService. Commission is computed with
// the employee's rate at entry time and stored on the record.
func (s *SaleServiceImpl) CreateSale(ctx context.Context, req sale.CreateSaleRequest) (sale.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return sale.SaleResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return sale.SaleResponse{}, err
	}

	date, err := time.Parse(period.DateLayout, req.Date)
	if err != nil {
		return sale.SaleResponse{}, sale.ErrInvalidDate
	}

	earned, err := commission.Compute(req.RevenueAmount, emp.CommissionRate)
	if err != nil {
		return sale.SaleResponse{}, fmt.Errorf("failed to compute commission: %w", err)
	}

	draw := decimal.Zero
	if req.DrawPayment != nil {
		draw = *req.DrawPayment
	}

	periodType := period.TypeMonth
	if req.PeriodType != "" {
		periodType = period.Type(req.PeriodType)
	}

	created, err := s.saleRepo.Create(ctx, sale.SaleRecord{
		EmployeeID:       emp.ID,
		Date:             date,
		RevenueAmount:    req.RevenueAmount,
		DealCount:        req.DealCount,
		CommissionEarned: earned,
		DrawPayment:      draw,
		PeriodType:       periodType,
	})
	if err != nil {
		return sale.SaleResponse{}, err
	}

	resp := sale.NewSaleResponse(created)
	resp.EmployeeName = emp.Name
	return resp, nil
}

// UpdateSale implements sale.SaleService. Any edit recomputes the
// commission snapshot with the owning employee's current rate.
func (s *SaleServiceImpl) UpdateSale(ctx context.Context, req sale.UpdateSaleRequest) (sale.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return sale.SaleResponse{}, err
	}

	rec, err := s.saleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return sale.SaleResponse{}, err
	}

	if req.EmployeeID != nil {
		rec.EmployeeID = *req.EmployeeID
	}

	emp, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return sale.SaleResponse{}, err
	}

	if req.Date != nil {
		date, err := time.Parse(period.DateLayout, *req.Date)
		if err != nil {
			return sale.SaleResponse{}, sale.ErrInvalidDate
		}
		rec.Date = date
	}
	if req.RevenueAmount != nil {
		rec.RevenueAmount = *req.RevenueAmount
	}
	if req.DealCount != nil {
		rec.DealCount = *req.DealCount
	}
	if req.DrawPayment != nil {
		rec.DrawPayment = *req.DrawPayment
	}
	if req.PeriodType != nil {
		rec.PeriodType = period.Type(*req.PeriodType)
	}

	rec.CommissionEarned, err = commission.Compute(rec.RevenueAmount, emp.CommissionRate)
	if err != nil {
		return sale.SaleResponse{}, fmt.Errorf("failed to compute commission: %w", err)
	}

	updated, err := s.saleRepo.Update(ctx, rec)
	if err != nil {
		return sale.SaleResponse{}, err
	}

	resp := sale.NewSaleResponse(updated)
	resp.EmployeeName = emp.Name
	return resp, nil
}

// DeleteSale implements sale.SaleService.
func (s *SaleServiceImpl) DeleteSale(ctx context.Context, id string) error {
	return s.saleRepo.Delete(ctx, id)
}

// ListSales implements sale.SaleService.
func (s *SaleServiceImpl) ListSales(ctx context.Context, filter sale.SaleFilter) (sale.ListSalesResponse, error) {
	if err := filter.Validate(); err != nil {
		return sale.ListSalesResponse{}, err
	}

	sales, total, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		return sale.ListSalesResponse{}, err
	}

	responses := make([]sale.SaleResponse, 0, len(sales))
	for _, rec := range sales {
		responses = append(responses, sale.NewSaleWithEmployeeResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return sale.ListSalesResponse{
		Sales:      responses,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// RecentSales implements sale.SaleService.
func (s *SaleServiceImpl) RecentSales(ctx context.Context, limit int) ([]sale.SaleResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > 100 {
		limit = 100
	}

	sales, err := s.saleRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]sale.SaleResponse, 0, len(sales))
	for _, rec := range sales {
		responses = append(responses, sale.NewSaleWithEmployeeResponse(rec))
	}
	return responses, nil
}
