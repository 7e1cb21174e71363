package attendance

import (
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID int64 `json:"employee_id"`
}

func (r *CheckInRequest) Validate() error {
	return validateEmployeeID(r.EmployeeID)
}

type CheckOutRequest struct {
	EmployeeID int64 `json:"employee_id"`
}

func (r *CheckOutRequest) Validate() error {
	return validateEmployeeID(r.EmployeeID)
}

func validateEmployeeID(id int64) error {
	if id <= 0 {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}

type AttendanceResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	CheckinTime  *string `json:"checkin_time,omitempty"`
	CheckoutTime *string `json:"checkout_time,omitempty"`
	Status       string  `json:"status"`
	WorkMinutes  *int    `json:"work_minutes,omitempty"`
	WorkHours    *string `json:"work_hours,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *int64  `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, checkin_time, checkout_time, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	// Status validation
	if f.Status != nil && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: NORMAL, LATE, EARLY_LEAVE, ABSENCE",
		})
	}

	// Date validation
	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	// Sort validation
	errs = append(errs, validator.ValidateSort(&f.SortBy, &f.SortOrder,
		[]string{"date", "employee_name", "checkin_time", "checkout_time", "status"}, "date", "desc")...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type StatisticsRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM, defaults to the current month
}

func (r *StatisticsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsEmpty(r.Month) {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StatisticsResponse struct {
	EmployeeID      int64  `json:"employee_id"`
	Month           string `json:"month"`
	NormalCount     int    `json:"normal_count"`
	LateCount       int    `json:"late_count"`
	EarlyLeaveCount int    `json:"early_leave_count"`
	AbsenceCount    int    `json:"absence_count"`
	TotalDays       int    `json:"total_days"`
}
