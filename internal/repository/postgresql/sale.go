package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
)

const saleColumns = `id, employee_id, date, revenue_amount, number_of_deals, commission_earned, draw_payment, period_type, created_at, updated_at`

type saleRepositoryImpl struct {
	db *database.DB
}

func NewSaleRepository(db *database.DB) sale.SaleRepository {
	return &saleRepositoryImpl{db: db}
}

func scanSale(row pgx.Row) (sale.SaleRecord, error) {
	var rec sale.SaleRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.RevenueAmount, &rec.DealCount,
		&rec.CommissionEarned, &rec.DrawPayment, &rec.PeriodType, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// GetByID implements sale.SaleRepository.
func (s *saleRepositoryImpl) GetByID(ctx context.Context, id string) (sale.SaleRecord, error) {
	q := GetQuerier(ctx, s.db)

	query := fmt.Sprintf(`SELECT %s FROM sales WHERE id = $1`, saleColumns)

	rec, err := scanSale(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return sale.SaleRecord{}, sale.ErrSaleNotFound
		}
		return sale.SaleRecord{}, fmt.Errorf("failed to get sale %s: %w", id, err)
	}
	return rec, nil
}

// GetWithEmployee implements sale.SaleRepository.
func (s *saleRepositoryImpl) GetWithEmployee(ctx context.Context, id string) (sale.SaleWithEmployee, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT s.id, s.employee_id, s.date, s.revenue_amount, s.number_of_deals,
			s.commission_earned, s.draw_payment, s.period_type, s.created_at, s.updated_at,
			e.name
		FROM sales s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	var rec sale.SaleWithEmployee
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.RevenueAmount, &rec.DealCount,
		&rec.CommissionEarned, &rec.DrawPayment, &rec.PeriodType, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return sale.SaleWithEmployee{}, sale.ErrSaleNotFound
		}
		return sale.SaleWithEmployee{}, fmt.Errorf("failed to get sale %s: %w", id, err)
	}
	return rec, nil
}

// Create implements sale.SaleRepository.
func (s *saleRepositoryImpl) Create(ctx context.Context, rec sale.SaleRecord) (sale.SaleRecord, error) {
	q := GetQuerier(ctx, s.db)

	query := fmt.Sprintf(`
		INSERT INTO sales (id, employee_id, date, revenue_amount, number_of_deals, commission_earned, draw_payment, period_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, saleColumns)

	created, err := scanSale(q.QueryRow(ctx, query,
		uuid.NewString(), rec.EmployeeID, rec.Date, rec.RevenueAmount, rec.DealCount,
		rec.CommissionEarned, rec.DrawPayment, rec.PeriodType,
	))
	if err != nil {
		return sale.SaleRecord{}, fmt.Errorf("failed to create sale: %w", err)
	}
	return created, nil
}

// BatchCreate implements sale.SaleRepository. It joins the caller's
// transaction, so either every record lands or none do.
func (s *saleRepositoryImpl) BatchCreate(ctx context.Context, recs []sale.SaleRecord) error {
	if len(recs) == 0 {
		return nil
	}
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO sales (id, employee_id, date, revenue_amount, number_of_deals, commission_earned, draw_payment, period_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, rec := range recs {
		_, err := q.Exec(ctx, query,
			uuid.NewString(), rec.EmployeeID, rec.Date, rec.RevenueAmount, rec.DealCount,
			rec.CommissionEarned, rec.DrawPayment, rec.PeriodType,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale for employee %s on %s: %w",
				rec.EmployeeID, rec.Date.Format("2006-01-02"), err)
		}
	}
	return nil
}

// Update implements sale.SaleRepository.
func (s *saleRepositoryImpl) Update(ctx context.Context, rec sale.SaleRecord) (sale.SaleRecord, error) {
	q := GetQuerier(ctx, s.db)

	query := fmt.Sprintf(`
		UPDATE sales
		SET employee_id = $1, date = $2, revenue_amount = $3, number_of_deals = $4,
			commission_earned = $5, draw_payment = $6, period_type = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING %s
	`, saleColumns)

	updated, err := scanSale(q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Date, rec.RevenueAmount, rec.DealCount,
		rec.CommissionEarned, rec.DrawPayment, rec.PeriodType, rec.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return sale.SaleRecord{}, sale.ErrSaleNotFound
		}
		return sale.SaleRecord{}, fmt.Errorf("failed to update sale %s: %w", rec.ID, err)
	}
	return updated, nil
}

// Delete implements sale.SaleRepository.
func (s *saleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return sale.ErrSaleNotFound
	}
	return nil
}

// List implements sale.SaleRepository.
func (s *saleRepositoryImpl) List(ctx context.Context, filter sale.SaleFilter) ([]sale.SaleWithEmployee, int64, error) {
	q := GetQuerier(ctx, s.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("s.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("s.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("s.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sales s WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	validSortColumns := map[string]string{
		"date":           "s.date",
		"revenue_amount": "s.revenue_amount",
		"employee_name":  "LOWER(e.name)",
		"created_at":     "s.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "s.date"
	}

	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT s.id, s.employee_id, s.date, s.revenue_amount, s.number_of_deals,
			s.commission_earned, s.draw_payment, s.period_type, s.created_at, s.updated_at,
			e.name
		FROM sales s
		JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY %s %s, s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales, err := collectSalesWithEmployee(rows)
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// ListRecent implements sale.SaleRepository.
func (s *saleRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]sale.SaleWithEmployee, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT s.id, s.employee_id, s.date, s.revenue_amount, s.number_of_deals,
			s.commission_earned, s.draw_payment, s.period_type, s.created_at, s.updated_at,
			e.name
		FROM sales s
		JOIN employees e ON e.id = s.employee_id
		ORDER BY s.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent sales: %w", err)
	}
	defer rows.Close()

	return collectSalesWithEmployee(rows)
}

// ListInRange implements sale.SaleRepository.
func (s *saleRepositoryImpl) ListInRange(ctx context.Context, start, end time.Time) ([]sale.SaleWithEmployee, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT s.id, s.employee_id, s.date, s.revenue_amount, s.number_of_deals,
			s.commission_earned, s.draw_payment, s.period_type, s.created_at, s.updated_at,
			e.name
		FROM sales s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.date >= $1 AND s.date < $2
		ORDER BY s.date, s.created_at
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales in range: %w", err)
	}
	defer rows.Close()

	return collectSalesWithEmployee(rows)
}

// ListByEmployee implements sale.SaleRepository.
func (s *saleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]sale.SaleRecord, error) {
	q := GetQuerier(ctx, s.db)

	query := fmt.Sprintf(`
		SELECT %s FROM sales
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, created_at
	`, saleColumns)

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var records []sale.SaleRecord
	for rows.Next() {
		var rec sale.SaleRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.RevenueAmount, &rec.DealCount,
			&rec.CommissionEarned, &rec.DrawPayment, &rec.PeriodType, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// PriorTotals implements sale.SaleRepository.
func (s *saleRepositoryImpl) PriorTotals(ctx context.Context, employeeID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT COALESCE(SUM(commission_earned), 0), COALESCE(SUM(draw_payment), 0)
		FROM sales
		WHERE employee_id = $1 AND date < $2
	`

	var commission, draw decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, before).Scan(&commission, &draw); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum prior sales for employee %s: %w", employeeID, err)
	}
	return commission, draw, nil
}

// CountByEmployee implements sale.SaleRepository.
func (s *saleRepositoryImpl) CountByEmployee(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, s.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE employee_id = $1`, employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sales for employee %s: %w", employeeID, err)
	}
	return count, nil
}

func collectSalesWithEmployee(rows pgx.Rows) ([]sale.SaleWithEmployee, error) {
	var sales []sale.SaleWithEmployee
	for rows.Next() {
		var rec sale.SaleWithEmployee
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.RevenueAmount, &rec.DealCount,
			&rec.CommissionEarned, &rec.DrawPayment, &rec.PeriodType, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		sales = append(sales, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}
