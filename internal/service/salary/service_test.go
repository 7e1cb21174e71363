package salary

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[int64]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	stats   map[int64]attendance.Statistics
	failFor int64
}

func (f *fakeAttendanceRepo) Statistics(_ context.Context, employeeID int64, _ string) (attendance.Statistics, error) {
	if employeeID == f.failFor {
		return attendance.Statistics{}, errors.New("connection reset")
	}
	return f.stats[employeeID], nil
}

type salaryKey struct {
	employeeID int64
	month      string
}

type fakeSalaryRepo struct {
	salary.SalaryRepository
	mu     sync.Mutex
	rows   map[salaryKey]salary.Salary
	nextID int64
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{rows: map[salaryKey]salary.Salary{}, nextID: 1}
}

func (f *fakeSalaryRepo) ExistsForMonth(_ context.Context, employeeID int64, month string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[salaryKey{employeeID, month}]
	return ok, nil
}

func (f *fakeSalaryRepo) Create(_ context.Context, s salary.Salary) (salary.Salary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := salaryKey{s.EmployeeID, s.Month}
	if _, ok := f.rows[key]; ok {
		return salary.Salary{}, salary.ErrSalaryAlreadyGenerated
	}
	s.ID = f.nextID
	f.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.rows[key] = s
	return s, nil
}

func (f *fakeSalaryRepo) GetByEmployeeAndMonth(_ context.Context, employeeID int64, month string) (salary.Salary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[salaryKey{employeeID, month}]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	return s, nil
}

func (f *fakeSalaryRepo) MarkPaid(_ context.Context, id int64) (salary.Salary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, s := range f.rows {
		if s.ID != id {
			continue
		}
		if s.IsPaid() {
			return salary.Salary{}, salary.ErrSalaryAlreadyPaid
		}
		s.Status = salary.StatusPaid
		f.rows[key] = s
		return s, nil
	}
	return salary.Salary{}, salary.ErrSalaryNotFound
}

func setupSalaryService() (salary.SalaryService, *fakeSalaryRepo, *fakeAttendanceRepo) {
	base := decimal.NewFromInt(8000)
	employees := &fakeEmployeeRepo{employees: map[int64]employee.Employee{
		1: {ID: 1, Name: "张三", Salary: &base, Status: employee.StatusActive},
		2: {ID: 2, Name: "李四", Status: employee.StatusActive},
		3: {ID: 3, Name: "王五", Status: employee.StatusActive},
		4: {ID: 4, Name: "赵六", Status: employee.StatusResigned},
	}}
	attendances := &fakeAttendanceRepo{stats: map[int64]attendance.Statistics{
		1: {LateCount: 2, AbsenceCount: 1},
	}}
	repo := newFakeSalaryRepo()
	return NewSalaryService(repo, employees, attendances), repo, attendances
}

func TestSalaryService_Calculate(t *testing.T) {
	svc, _, _ := setupSalaryService()
	ctx := context.Background()

	resp, err := svc.Calculate(ctx, salary.CalculateSalaryRequest{EmployeeID: 1, Month: "2024-03"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8000).Equal(resp.BaseSalary))
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Deduction))
	assert.True(t, decimal.NewFromInt(10700).Equal(resp.TotalSalary), resp.TotalSalary.String())
	assert.Equal(t, "PENDING", resp.Status)

	_, err = svc.Calculate(ctx, salary.CalculateSalaryRequest{EmployeeID: 1, Month: "2024-03"})
	assert.ErrorIs(t, err, salary.ErrSalaryAlreadyGenerated)

	defaulted, err := svc.Calculate(ctx, salary.CalculateSalaryRequest{EmployeeID: 2, Month: "2024-03"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8000).Equal(defaulted.TotalSalary), defaulted.TotalSalary.String())

	_, err = svc.Calculate(ctx, salary.CalculateSalaryRequest{EmployeeID: 99, Month: "2024-03"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSalaryService_CalculateAll(t *testing.T) {
	svc, _, attendances := setupSalaryService()
	ctx := context.Background()

	_, err := svc.Calculate(ctx, salary.CalculateSalaryRequest{EmployeeID: 1, Month: "2024-04"})
	require.NoError(t, err)
	attendances.failFor = 3

	resp, err := svc.CalculateAll(ctx, salary.CalculateAllRequest{Month: "2024-04"})
	require.NoError(t, err)
	assert.Equal(t, "2024-04", resp.Month)
	assert.Equal(t, 1, resp.Generated)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, []int64{3}, resp.FailedIDs)
}

func TestSalaryService_MarkPaid(t *testing.T) {
	svc, _, _ := setupSalaryService()
	ctx := context.Background()

	created, err := svc.Calculate(ctx, salary.CalculateSalaryRequest{EmployeeID: 1, Month: "2024-05"})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAID", paid.Status)

	_, err = svc.MarkPaid(ctx, created.ID)
	assert.ErrorIs(t, err, salary.ErrSalaryAlreadyPaid)

	got, err := svc.GetByEmployeeAndMonth(ctx, 1, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "PAID", got.Status)

	_, err = svc.GetByEmployeeAndMonth(ctx, 1, "2023-01")
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}
