package salary

import "context"

type SalaryRepository interface {
	// Create fails with ErrSalaryAlreadyGenerated when the employee already
	// has a row for the month.
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id int64) (Salary, error)
	GetByEmployeeAndMonth(ctx context.Context, employeeID int64, month string) (Salary, error)
	ExistsForMonth(ctx context.Context, employeeID int64, month string) (bool, error)
	List(ctx context.Context, filter SalaryFilter) ([]Salary, int64, error)
	ListByMonth(ctx context.Context, month string) ([]Salary, error)

	// MarkPaid moves a PENDING row to PAID and returns ErrSalaryAlreadyPaid otherwise.
	MarkPaid(ctx context.Context, id int64) (Salary, error)

	Summary(ctx context.Context, month string) (Summary, error)
}
