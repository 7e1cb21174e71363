package leave

import (
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	EmployeeID int64   `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartTime  string  `json:"start_time"` // RFC3339 or "YYYY-MM-DD HH:MM:SS"
	EndTime    string  `json:"end_time"`
	Reason     *string `json:"reason,omitempty"`

	// Location reads the space separated form; UTC when nil.
	Location *time.Location `json:"-"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !validator.IsInSlice(r.LeaveType, ValidLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: SICK, PERSONAL, ANNUAL",
		})
	}

	startOK, endOK := false, false
	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required",
		})
	} else if r.Start, startOK = validator.IsValidDateTimeIn(r.StartTime, r.Location); !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid timestamp",
		})
	}

	if validator.IsEmpty(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time is required",
		})
	} else if r.End, endOK = validator.IsValidDateTimeIn(r.EndTime, r.Location); !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid timestamp",
		})
	}

	if startOK && endOK && !r.End.After(r.Start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: ErrInvalidLeaveRange.Error(),
		})
	}

	if r.Reason != nil && len([]rune(*r.Reason)) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveLeaveRequest struct {
	ID       int64   `json:"-"`
	Status   string  `json:"status"` // APPROVED or REJECTED
	Comment  *string `json:"comment,omitempty"`
	Approver string  `json:"-"` // username from the access token
}

func (r *ApproveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: APPROVED, REJECTED",
		})
	}

	if r.Comment != nil && len([]rune(*r.Comment)) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID              int64   `json:"id"`
	EmployeeID      int64   `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	LeaveType       string  `json:"leave_type"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Days            int     `json:"days"`
	Reason          *string `json:"reason,omitempty"`
	Status          string  `json:"status"`
	Approver        *string `json:"approver,omitempty"`
	ApprovalComment *string `json:"approval_comment,omitempty"`
	ApprovalTime    *string `json:"approval_time,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type LeaveFilter struct {
	// Search & Filter
	EmployeeID *int64  `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	LeaveType  *string `json:"leave_type,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // created_at, start_time, days
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	if f.Status != nil && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: PENDING, APPROVED, REJECTED",
		})
	}

	if f.LeaveType != nil && !validator.IsInSlice(*f.LeaveType, ValidLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: SICK, PERSONAL, ANNUAL",
		})
	}

	errs = append(errs, validator.ValidateSort(&f.SortBy, &f.SortOrder,
		[]string{"created_at", "start_time", "days"}, "created_at", "desc")...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Leaves     []LeaveResponse `json:"leaves"`
}
