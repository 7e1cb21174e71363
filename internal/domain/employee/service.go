package employee

import "context"

type EmployeeService interface {
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	All(ctx context.Context) ([]EmployeeResponse, error)
	Get(ctx context.Context, id int64) (EmployeeResponse, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
}
