package oplog

import (
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
)

type OperationLogResponse struct {
	ID          int64   `json:"id"`
	RequestID   *string `json:"request_id,omitempty"`
	Username    *string `json:"username,omitempty"`
	Operation   string  `json:"operation"`
	Method      string  `json:"method"`
	Params      *string `json:"params,omitempty"`
	IP          *string `json:"ip,omitempty"`
	StatusCode  int     `json:"status_code"`
	ExecuteTime int64   `json:"execute_time"`
	CreatedAt   string  `json:"created_at"`
}

type OperationLogFilter struct {
	Username  *string `json:"username,omitempty"`
	Operation *string `json:"operation,omitempty"` // substring match
	Method    *string `json:"method,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // created_at, execute_time
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *OperationLogFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	if f.Method != nil && !validator.IsInSlice(*f.Method, []string{"POST", "PUT", "PATCH", "DELETE"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of: POST, PUT, PATCH, DELETE",
		})
	}

	errs = append(errs, validator.ValidateSort(&f.SortBy, &f.SortOrder,
		[]string{"created_at", "execute_time"}, "created_at", "desc")...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListOperationLogResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Showing    string                 `json:"showing"`
	Logs       []OperationLogResponse `json:"logs"`
}
