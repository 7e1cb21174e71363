package salary

import "context"

type SalaryService interface {
	Calculate(ctx context.Context, req CalculateSalaryRequest) (SalaryResponse, error)
	CalculateAll(ctx context.Context, req CalculateAllRequest) (CalculateAllResponse, error)
	List(ctx context.Context, filter SalaryFilter) (ListSalaryResponse, error)
	GetByEmployeeAndMonth(ctx context.Context, employeeID int64, month string) (SalaryResponse, error)
	MarkPaid(ctx context.Context, id int64) (SalaryResponse, error)
}
