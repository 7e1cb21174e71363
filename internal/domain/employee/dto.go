package employee

import (
	"strings"

	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ValidGenders lists accepted gender values.
var ValidGenders = []string{"男", "女", "MALE", "FEMALE"}

type EmployeeResponse struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Gender         *string          `json:"gender,omitempty"`
	Age            *int             `json:"age,omitempty"`
	DepartmentID   *int64           `json:"department_id,omitempty"`
	DepartmentName *string          `json:"department_name,omitempty"`
	Position       *string          `json:"position,omitempty"`
	Phone          *string          `json:"phone,omitempty"`
	Email          *string          `json:"email,omitempty"`
	HireDate       *string          `json:"hire_date,omitempty"`
	Status         string           `json:"status"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

type CreateEmployeeRequest struct {
	Name         string           `json:"name"`
	Gender       *string          `json:"gender,omitempty"`
	Age          *int             `json:"age,omitempty"`
	DepartmentID *int64           `json:"department_id,omitempty"`
	Position     *string          `json:"position,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Email        *string          `json:"email,omitempty"`
	HireDate     *string          `json:"hire_date,omitempty"` // YYYY-MM-DD
	Salary       *decimal.Decimal `json:"salary,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	errs := validateEmployeeFields(r.Name, r.Gender, r.Age, r.DepartmentID, r.Phone, r.Email, r.HireDate, r.Salary)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest replaces all editable fields of an employee.
type UpdateEmployeeRequest struct {
	ID           int64            `json:"-"`
	Name         string           `json:"name"`
	Gender       *string          `json:"gender,omitempty"`
	Age          *int             `json:"age,omitempty"`
	DepartmentID *int64           `json:"department_id,omitempty"`
	Position     *string          `json:"position,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Email        *string          `json:"email,omitempty"`
	HireDate     *string          `json:"hire_date,omitempty"`
	Salary       *decimal.Decimal `json:"salary,omitempty"`
	Status       *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	errs := validateEmployeeFields(r.Name, r.Gender, r.Age, r.DepartmentID, r.Phone, r.Email, r.HireDate, r.Salary)

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusResigned)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: ACTIVE, RESIGNED",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateEmployeeFields(name string, gender *string, age *int, departmentID *int64, phone, email, hireDate *string, salary *decimal.Decimal) validator.ValidationErrors {
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

	if gender != nil && !validator.IsInSlice(*gender, ValidGenders) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be one of: 男, 女, MALE, FEMALE",
		})
	}

	if age != nil && (*age < 16 || *age > 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "age",
			Message: "age must be between 16 and 100",
		})
	}

	if departmentID != nil && *departmentID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must be a positive number",
		})
	}

	if phone != nil && !validator.IsEmpty(*phone) && !validator.IsValidPhoneNumber(*phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}

	if email != nil && !validator.IsEmpty(*email) && !validator.IsValidEmail(*email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if hireDate != nil && !validator.IsEmpty(*hireDate) {
		if _, ok := validator.IsValidDate(*hireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		}
	}

	if salary != nil && salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	return errs
}

type EmployeeFilter struct {
	// Search & Filter
	Keyword      *string `json:"keyword,omitempty"` // name, phone or email
	DepartmentID *int64  `json:"department_id,omitempty"`
	Status       *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // id, name, hire_date, salary, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.ValidatePagination(&f.Page, &f.Limit)...)

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusActive), string(StatusResigned)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: ACTIVE, RESIGNED",
		})
	}

	errs = append(errs, validator.ValidateSort(&f.SortBy, &f.SortOrder,
		[]string{"id", "name", "hire_date", "salary", "created_at"}, "id", "asc")...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}
