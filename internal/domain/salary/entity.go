package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

var ValidStatuses = []string{string(StatusPending), string(StatusPaid)}

// Pay components used by Calculate.
var (
	DefaultBaseSalary    = decimal.NewFromInt(5000)
	PerformanceSalary    = decimal.NewFromInt(2000)
	Bonus                = decimal.NewFromInt(1000)
	LateDeductionEach    = decimal.NewFromInt(50)
	AbsenceDeductionEach = decimal.NewFromInt(200)
)

type Salary struct {
	ID                int64
	EmployeeID        int64
	EmployeeName      string
	Month             string // YYYY-MM
	BaseSalary        decimal.Decimal
	PerformanceSalary decimal.Decimal
	Bonus             decimal.Decimal
	Deduction         decimal.Decimal
	TotalSalary       decimal.Decimal
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s *Salary) IsPaid() bool {
	return s.Status == StatusPaid
}

// Deduction returns lateCount*50 + absenceCount*200.
func Deduction(lateCount, absenceCount int) decimal.Decimal {
	late := LateDeductionEach.Mul(decimal.NewFromInt(int64(lateCount)))
	absence := AbsenceDeductionEach.Mul(decimal.NewFromInt(int64(absenceCount)))
	return late.Add(absence)
}

// Build fills every amount of a new PENDING record. A nil base falls back to
// DefaultBaseSalary.
func Build(employeeID int64, employeeName, month string, base *decimal.Decimal, lateCount, absenceCount int) Salary {
	b := DefaultBaseSalary
	if base != nil {
		b = *base
	}
	deduction := Deduction(lateCount, absenceCount)
	return Salary{
		EmployeeID:        employeeID,
		EmployeeName:      employeeName,
		Month:             month,
		BaseSalary:        b,
		PerformanceSalary: PerformanceSalary,
		Bonus:             Bonus,
		Deduction:         deduction,
		TotalSalary:       b.Add(PerformanceSalary).Add(Bonus).Sub(deduction),
		Status:            StatusPending,
	}
}

// Summary aggregates generated salaries of a month.
type Summary struct {
	Month       string
	Count       int64
	PaidCount   int64
	TotalAmount decimal.Decimal
	AvgAmount   decimal.Decimal
}
