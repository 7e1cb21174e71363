package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "ACTIVE"
	StatusResigned EmployeeStatus = "RESIGNED"
)

type Employee struct {
	ID           int64
	Name         string
	Gender       *string
	Age          *int
	DepartmentID *int64
	Position     *string
	Phone        *string
	Email        *string
	HireDate     *time.Time
	Status       EmployeeStatus
	Salary       *decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined
	DepartmentName *string
}

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// StatusCounts is the headcount split used by reports.
type StatusCounts struct {
	Total    int64
	Active   int64
	Resigned int64
}

// DepartmentHeadcount is the number of active employees per department.
type DepartmentHeadcount struct {
	DepartmentID   *int64
	DepartmentName string
	Count          int64
}
