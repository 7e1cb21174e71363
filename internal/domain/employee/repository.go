package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListAll(ctx context.Context) ([]Employee, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error

	// Aggregations
	CountByStatus(ctx context.Context) (StatusCounts, error)
	CountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error)
}
