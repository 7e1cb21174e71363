package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a check-in row; a second row for the same employee and
	// date fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no row for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)

	// UpdateCheckout stores checkout time, status and work minutes.
	UpdateCheckout(ctx context.Context, attendance Attendance) (Attendance, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	ListByMonth(ctx context.Context, month string) ([]Attendance, error)

	// Statistics counts days per status for an employee within month (YYYY-MM).
	Statistics(ctx context.Context, employeeID int64, month string) (Statistics, error)

	// StatusCounts counts rows per status for all employees within month.
	StatusCounts(ctx context.Context, month string) (Statistics, error)

	// MarkAbsent inserts ABSENCE rows for active employees that have neither an
	// attendance row nor an approved leave overlapping day.
	MarkAbsent(ctx context.Context, day Day) (int64, error)
}
