package salary

import (
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SalaryResponse struct {
	ID                int64           `json:"id"`
	EmployeeID        int64           `json:"employee_id"`
	EmployeeName      string          `json:"employee_name"`
	Month             string          `json:"month"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	PerformanceSalary decimal.Decimal `json:"performance_salary"`
	Bonus             decimal.Decimal `json:"bonus"`
	Deduction         decimal.Decimal `json:"deduction"`
	TotalSalary       decimal.Decimal `json:"total_salary"`
	Status            string          `json:"status"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

type CalculateSalaryRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM
}

func (r *CalculateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validateMonth(r.Month)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculateAllRequest struct {
	Month string `json:"month"`
}

func (r *CalculateAllRequest) Validate() error {
	if errs := validateMonth(r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

func validateMonth(month string) validator.ValidationErrors {
	if validator.IsEmpty(month) {
		return validator.ValidationErrors{{Field: "month", Message: "month is required"}}
	}
	if _, ok := validator.IsValidMonth(month); !ok {
		return validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return nil
}

type CalculateAllResponse struct {
	Month     string  `json:"month"`
	Generated int     `json:"generated"`
	Skipped   int     `json:"skipped"`
	Failed    int     `json:"failed"`
	FailedIDs []int64 `json:"failed_employee_ids,omitempty"`
}

type SalaryFilter struct {
	// Search & Filter
	EmployeeID *int64  `json:"employee_id,omitempty"`
	Month      *string `json:"month,omitempty"`
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // month, employee_name, total_salary, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *SalaryFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	if f.Month != nil && !validator.IsEmpty(*f.Month) {
		if _, ok := validator.IsValidMonth(*f.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: PENDING, PAID",
		})
	}

	errs = append(errs, validator.ValidateSort(&f.SortBy, &f.SortOrder,
		[]string{"month", "employee_name", "total_salary", "created_at"}, "month", "desc")...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListSalaryResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Salaries   []SalaryResponse `json:"salaries"`
}
