package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.name, e.gender, e.age, e.department_id, e.position, e.phone, e.email,
		   e.hire_date, e.status, e.salary, e.created_at, e.updated_at,
		   d.name AS department_name
	FROM employees e
	LEFT JOIN departments d ON e.department_id = d.id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Gender, &e.Age, &e.DepartmentID, &e.Position, &e.Phone, &e.Email,
		&e.HireDate, &e.Status, &e.Salary, &e.CreatedAt, &e.UpdatedAt,
		&e.DepartmentName,
	)
	return e, err
}

func (r *employeeRepositoryImpl) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE conditions
	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Keyword != nil && *filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(e.name ILIKE $%d OR e.phone ILIKE $%d OR e.email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Keyword+"%")
		argIdx++
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count query
	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees e WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	// Validate sort column
	validSortColumns := map[string]string{
		"id":         "e.id",
		"name":       "e.name",
		"hire_date":  "e.hire_date",
		"salary":     "e.salary",
		"created_at": "e.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "e.id"
	}
	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s %s NULLS LAST
		LIMIT $%d OFFSET $%d
	`, employeeSelect, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	employees, err := r.queryEmployees(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListAll implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListAll(ctx context.Context) ([]employee.Employee, error) {
	return r.queryEmployees(ctx, employeeSelect+` ORDER BY e.id ASC`)
}

// ListByDepartment implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByDepartment(ctx context.Context, departmentID int64) ([]employee.Employee, error) {
	return r.queryEmployees(ctx, employeeSelect+` WHERE e.department_id = $1 ORDER BY e.id ASC`, departmentID)
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.queryEmployees(ctx, employeeSelect+` WHERE e.status = $1 ORDER BY e.id ASC`, employee.StatusActive)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (name, gender, age, department_id, position, phone, email, hire_date, status, salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		e.Name, e.Gender, e.Age, e.DepartmentID, e.Position, e.Phone, e.Email, e.HireDate, e.Status, e.Salary,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $1, gender = $2, age = $3, department_id = $4, position = $5, phone = $6,
			email = $7, hire_date = $8, status = $9, salary = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		e.Name, e.Gender, e.Age, e.DepartmentID, e.Position, e.Phone, e.Email, e.HireDate, e.Status, e.Salary, e.ID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return e, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// CountByStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByStatus(ctx context.Context) (employee.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'ACTIVE'),
			   COUNT(*) FILTER (WHERE status = 'RESIGNED')
		FROM employees
	`
	var c employee.StatusCounts
	if err := q.QueryRow(ctx, query).Scan(&c.Total, &c.Active, &c.Resigned); err != nil {
		return employee.StatusCounts{}, fmt.Errorf("failed to count employees by status: %w", err)
	}
	return c, nil
}

// CountByDepartment implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByDepartment(ctx context.Context) ([]employee.DepartmentHeadcount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.department_id, COALESCE(d.name, ''), COUNT(*)
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE e.status = 'ACTIVE'
		GROUP BY e.department_id, d.name
		ORDER BY COUNT(*) DESC, d.name ASC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees by department: %w", err)
	}
	defer rows.Close()

	var counts []employee.DepartmentHeadcount
	for rows.Next() {
		var c employee.DepartmentHeadcount
		if err := rows.Scan(&c.DepartmentID, &c.DepartmentName, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan headcount: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
