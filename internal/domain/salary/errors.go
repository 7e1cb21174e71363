package salary

import "errors"

var (
	ErrSalaryNotFound         = errors.New("salary record not found")
	ErrSalaryAlreadyGenerated = errors.New("salary already generated for this month")
	ErrSalaryAlreadyPaid      = errors.New("salary record already paid")
)
