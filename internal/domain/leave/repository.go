package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, app LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id int64) (LeaveApplication, error)

	// Decide moves a PENDING application to status. It returns
	// ErrLeaveAlreadyProcessed when the row is no longer PENDING.
	Decide(ctx context.Context, id int64, status Status, approver string, comment *string, at time.Time) (LeaveApplication, error)

	List(ctx context.Context, filter LeaveFilter) ([]LeaveApplication, int64, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]LeaveApplication, error)
}
