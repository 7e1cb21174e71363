package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salaryColumns = `id, employee_id, employee_name, month, base_salary, performance_salary, bonus,
	deduction, total_salary, status, created_at, updated_at`

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.EmployeeName, &s.Month, &s.BaseSalary, &s.PerformanceSalary, &s.Bonus,
		&s.Deduction, &s.TotalSalary, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (employee_id, employee_name, month, base_salary, performance_salary, bonus,
			deduction, total_salary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + salaryColumns

	created, err := scanSalary(q.QueryRow(ctx, query,
		s.EmployeeID, s.EmployeeName, s.Month, s.BaseSalary, s.PerformanceSalary, s.Bonus,
		s.Deduction, s.TotalSalary, s.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return salary.Salary{}, salary.ErrSalaryAlreadyGenerated
		}
		return salary.Salary{}, fmt.Errorf("failed to create salary: %w", err)
	}
	return created, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id int64) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSalary(q.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

// GetByEmployeeAndMonth implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByEmployeeAndMonth(ctx context.Context, employeeID int64, month string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE employee_id = $1 AND month = $2`
	s, err := scanSalary(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

// ExistsForMonth implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ExistsForMonth(ctx context.Context, employeeID int64, month string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM salaries WHERE employee_id = $1 AND month = $2)`, employeeID, month).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check salary: %w", err)
	}
	return exists, nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil && *filter.Month != "" {
		baseWhere += fmt.Sprintf(" AND month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM salaries "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salaries: %w", err)
	}

	orderBy := "month"
	switch filter.SortBy {
	case "employee_name":
		orderBy = "employee_name"
	case "total_salary":
		orderBy = "total_salary"
	case "created_at":
		orderBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM salaries
		%s
		ORDER BY %s %s, id DESC
		LIMIT $%d OFFSET $%d
	`, salaryColumns, baseWhere, orderBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	records, err := r.querySalaries(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByMonth implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ListByMonth(ctx context.Context, month string) ([]salary.Salary, error) {
	return r.querySalaries(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE month = $1 ORDER BY employee_id ASC`, month)
}

func (r *salaryRepositoryImpl) querySalaries(ctx context.Context, query string, args ...interface{}) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	defer rows.Close()

	var records []salary.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		records = append(records, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkPaid implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) MarkPaid(ctx context.Context, id int64) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salaries
		SET status = 'PAID', updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING ` + salaryColumns

	updated, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return salary.Salary{}, getErr
			}
			return salary.Salary{}, salary.ErrSalaryAlreadyPaid
		}
		return salary.Salary{}, fmt.Errorf("failed to mark salary paid: %w", err)
	}
	return updated, nil
}

// Summary implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Summary(ctx context.Context, month string) (salary.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'PAID'),
			   COALESCE(SUM(total_salary), 0),
			   COALESCE(ROUND(AVG(total_salary), 2), 0)
		FROM salaries
		WHERE month = $1
	`
	s := salary.Summary{Month: month}
	var total, avg decimal.Decimal
	if err := q.QueryRow(ctx, query, month).Scan(&s.Count, &s.PaidCount, &total, &avg); err != nil {
		return salary.Summary{}, fmt.Errorf("failed to summarise salaries: %w", err)
	}
	s.TotalAmount = total
	s.AvgAmount = avg
	return s, nil
}
