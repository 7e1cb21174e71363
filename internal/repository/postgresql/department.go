package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentSelect = `
	SELECT d.id, d.name, d.parent_id, d.description, d.created_at, d.updated_at,
		   (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id) AS employee_count
	FROM departments d
`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.ParentID, &d.Description, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCount)
	return d, err
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id int64) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, departmentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

// ListAll implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListAll(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, departmentSelect+` ORDER BY d.parent_id NULLS FIRST, d.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (name, parent_id, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, d.Name, d.ParentID, d.Description).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return d, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, parent_id = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, d.Name, d.ParentID, d.Description, d.ID).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}
	return d, nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// SiblingNameExists implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) SiblingNameExists(ctx context.Context, parentID *int64, name string, excludeID *int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM departments
			WHERE parent_id IS NOT DISTINCT FROM $1
			  AND name = $2
			  AND ($3::BIGINT IS NULL OR id <> $3)
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, parentID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check department name: %w", err)
	}
	return exists, nil
}

// CountChildren implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) CountChildren(ctx context.Context, id int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments WHERE parent_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sub-departments: %w", err)
	}
	return count, nil
}

// CountEmployees implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) CountEmployees(ctx context.Context, id int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count department employees: %w", err)
	}
	return count, nil
}
