package department

import "time"

type Department struct {
	ID          int64
	Name        string
	ParentID    *int64
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined
	EmployeeCount int64
}
