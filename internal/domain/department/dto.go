package department

import (
	"strings"

	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	ParentID      *int64  `json:"parent_id"`
	Description   *string `json:"description,omitempty"`
	EmployeeCount int64   `json:"employee_count"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type DepartmentTreeNode struct {
	DepartmentResponse
	Children []*DepartmentTreeNode `json:"children"`
}

type CreateDepartmentRequest struct {
	Name        string  `json:"name"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validateDepartmentFields(r.Name, r.ParentID, r.Description)
}

// UpdateDepartmentRequest replaces all editable fields; a nil ParentID moves
// the department to the root.
type UpdateDepartmentRequest struct {
	ID          int64   `json:"-"`
	Name        string  `json:"name"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validateDepartmentFields(r.Name, r.ParentID, r.Description)
}

func validateDepartmentFields(name string, parentID *int64, description *string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len([]rune(name)) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if parentID != nil && *parentID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "parent_id",
			Message: "parent_id must be a positive number",
		})
	}

	if description != nil && len([]rune(*description)) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
