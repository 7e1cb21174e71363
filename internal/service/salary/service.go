package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// calculateAllConcurrency bounds the number of employees processed at once.
const calculateAllConcurrency = 8

type SalaryServiceImpl struct {
	salary.SalaryRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
}

func NewSalaryService(
	salaryRepository salary.SalaryRepository,
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		SalaryRepository:     salaryRepository,
		EmployeeRepository:   employeeRepository,
		AttendanceRepository: attendanceRepository,
	}
}

func mapSalaryToResponse(s salary.Salary) salary.SalaryResponse {
	return salary.SalaryResponse{
		ID:                s.ID,
		EmployeeID:        s.EmployeeID,
		EmployeeName:      s.EmployeeName,
		Month:             s.Month,
		BaseSalary:        s.BaseSalary,
		PerformanceSalary: s.PerformanceSalary,
		Bonus:             s.Bonus,
		Deduction:         s.Deduction,
		TotalSalary:       s.TotalSalary,
		Status:            string(s.Status),
		CreatedAt:         s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Calculate implements salary.SalaryService.
func (s *SalaryServiceImpl) Calculate(ctx context.Context, req salary.CalculateSalaryRequest) (salary.SalaryResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	created, err := s.calculate(ctx, emp, req.Month)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return mapSalaryToResponse(created), nil
}

func (s *SalaryServiceImpl) calculate(ctx context.Context, emp employee.Employee, month string) (salary.Salary, error) {
	exists, err := s.SalaryRepository.ExistsForMonth(ctx, emp.ID, month)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to check existing salary: %w", err)
	}
	if exists {
		return salary.Salary{}, salary.ErrSalaryAlreadyGenerated
	}

	stats, err := s.AttendanceRepository.Statistics(ctx, emp.ID, month)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to get attendance statistics: %w", err)
	}

	record := salary.Build(emp.ID, emp.Name, month, emp.Salary, stats.LateCount, stats.AbsenceCount)
	return s.SalaryRepository.Create(ctx, record)
}

// CalculateAll implements salary.SalaryService. A failure for one employee
// does not stop the others.
func (s *SalaryServiceImpl) CalculateAll(ctx context.Context, req salary.CalculateAllRequest) (salary.CalculateAllResponse, error) {
	emps, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return salary.CalculateAllResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	resp := salary.CalculateAllResponse{Month: req.Month}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(calculateAllConcurrency)

	for _, emp := range emps {
		emp := emp
		g.Go(func() error {
			_, err := s.calculate(gctx, emp, req.Month)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				resp.Generated++
			case errors.Is(err, salary.ErrSalaryAlreadyGenerated):
				resp.Skipped++
			default:
				slog.Error("Failed to calculate salary", "employee_id", emp.ID, "month", req.Month, "error", err)
				resp.Failed++
				resp.FailedIDs = append(resp.FailedIDs, emp.ID)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return salary.CalculateAllResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return salary.CalculateAllResponse{}, err
	}

	slices.Sort(resp.FailedIDs)
	slog.Info("Salary calculation finished", "month", req.Month, "generated", resp.Generated, "skipped", resp.Skipped, "failed", resp.Failed)
	return resp, nil
}

// List implements salary.SalaryService.
func (s *SalaryServiceImpl) List(ctx context.Context, filter salary.SalaryFilter) (salary.ListSalaryResponse, error) {
	rows, total, err := s.SalaryRepository.List(ctx, filter)
	if err != nil {
		return salary.ListSalaryResponse{}, fmt.Errorf("failed to list salaries: %w", err)
	}

	responses := make([]salary.SalaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, mapSalaryToResponse(row))
	}

	page := pagination.New(total, filter.Page, filter.Limit)
	return salary.ListSalaryResponse{
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		Showing:    page.Showing,
		Salaries:   responses,
	}, nil
}

// GetByEmployeeAndMonth implements salary.SalaryService.
func (s *SalaryServiceImpl) GetByEmployeeAndMonth(ctx context.Context, employeeID int64, month string) (salary.SalaryResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return salary.SalaryResponse{}, err
	}
	row, err := s.SalaryRepository.GetByEmployeeAndMonth(ctx, employeeID, month)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return mapSalaryToResponse(row), nil
}

// MarkPaid implements salary.SalaryService.
func (s *SalaryServiceImpl) MarkPaid(ctx context.Context, id int64) (salary.SalaryResponse, error) {
	row, err := s.SalaryRepository.MarkPaid(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return mapSalaryToResponse(row), nil
}
