package department

import "errors"

var (
	ErrDepartmentNotFound       = errors.New("department not found")
	ErrParentDepartmentNotFound = errors.New("parent department not found")
	ErrDepartmentCycle          = errors.New("department cannot be moved under itself or its descendants")
	ErrDepartmentNameExists     = errors.New("department name must be unique under the same parent")
	ErrDepartmentHasChildren    = errors.New("department still has sub-departments")
	ErrDepartmentHasEmployees   = errors.New("department still has employees")
)
