package report

import (
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
)

const (
	TypeEmployee   = "employee"
	TypeSalary     = "salary"
	TypeAttendance = "attendance"
)

var ValidTypes = []string{TypeEmployee, TypeSalary, TypeAttendance}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportRequest struct {
	Type  string `json:"type"`
	Month string `json:"month,omitempty"` // YYYY-MM, required for salary and attendance
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, ValidTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: employee, salary, attendance",
		})
	}

	if r.Type == TypeSalary || r.Type == TypeAttendance {
		if validator.IsEmpty(r.Month) {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month is required",
			})
		} else if _, ok := validator.IsValidMonth(r.Month); !ok {
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

// ExportFile is a rendered workbook ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
