package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, departmentRepo department.DepartmentRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
	}
}

// Helper function to map Employee to EmployeeResponse
func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var hireDate *string
	if emp.HireDate != nil {
		s := emp.HireDate.Format("2006-01-02")
		hireDate = &s
	}

	return employee.EmployeeResponse{
		ID:             emp.ID,
		Name:           emp.Name,
		Gender:         emp.Gender,
		Age:            emp.Age,
		DepartmentID:   emp.DepartmentID,
		DepartmentName: emp.DepartmentName,
		Position:       emp.Position,
		Phone:          emp.Phone,
		Email:          emp.Email,
		HireDate:       hireDate,
		Status:         string(emp.Status),
		Salary:         emp.Salary,
		CreatedAt:      emp.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      emp.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapEmployees(emps []employee.Employee) []employee.EmployeeResponse {
	responses := make([]employee.EmployeeResponse, 0, len(emps))
	for _, emp := range emps {
		responses = append(responses, mapEmployeeToResponse(emp))
	}
	return responses
}

// parseHireDate turns a validated YYYY-MM-DD string into UTC midnight.
func parseHireDate(s *string) *time.Time {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	t, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

func (s *EmployeeServiceImpl) ensureDepartmentExists(ctx context.Context, departmentID *int64) error {
	if departmentID == nil {
		return nil
	}
	if _, err := s.departmentRepo.GetByID(ctx, *departmentID); err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to get department: %w", err)
	}
	return nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	emps, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	page := pagination.New(total, filter.Page, filter.Limit)
	return employee.ListEmployeeResponse{
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		Showing:    page.Showing,
		Employees:  mapEmployees(emps),
	}, nil
}

// All implements employee.EmployeeService.
func (s *EmployeeServiceImpl) All(ctx context.Context) ([]employee.EmployeeResponse, error) {
	emps, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return mapEmployees(emps), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// ListByDepartment implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListByDepartment(ctx context.Context, departmentID int64) ([]employee.EmployeeResponse, error) {
	if err := s.ensureDepartmentExists(ctx, &departmentID); err != nil {
		return nil, err
	}
	emps, err := s.employeeRepo.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by department: %w", err)
	}
	return mapEmployees(emps), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := s.ensureDepartmentExists(ctx, req.DepartmentID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:         req.Name,
		Gender:       req.Gender,
		Age:          req.Age,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		Phone:        req.Phone,
		Email:        req.Email,
		HireDate:     parseHireDate(req.HireDate),
		Status:       employee.StatusActive,
		Salary:       req.Salary,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	// reload for the joined department name
	emp, err := s.employeeRepo.GetByID(ctx, created.ID)
	if err != nil {
		return mapEmployeeToResponse(created), nil
	}
	return mapEmployeeToResponse(emp), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.ensureDepartmentExists(ctx, req.DepartmentID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing.Name = req.Name
	existing.Gender = req.Gender
	existing.Age = req.Age
	existing.DepartmentID = req.DepartmentID
	existing.Position = req.Position
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.HireDate = parseHireDate(req.HireDate)
	existing.Salary = req.Salary
	if req.Status != nil {
		existing.Status = employee.EmployeeStatus(*req.Status)
	}

	if _, err := s.employeeRepo.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}
