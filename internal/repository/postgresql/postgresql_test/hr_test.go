package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hrm-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEmployee(t *testing.T, repo employee.EmployeeRepository, name string, departmentID *int64, status employee.EmployeeStatus) employee.Employee {
	t.Helper()
	base := decimal.NewFromInt(8000)
	created, err := repo.Create(context.Background(), employee.Employee{
		Name:         name,
		DepartmentID: departmentID,
		Status:       status,
		Salary:       &base,
	})
	require.NoError(t, err)
	return created
}

func TestDepartmentRepository_Hierarchy(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewDepartmentRepository(db)
	empRepo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	root, err := repo.Create(ctx, department.Department{Name: "总部"})
	require.NoError(t, err)
	child, err := repo.Create(ctx, department.Department{Name: "研发部", ParentID: &root.ID})
	require.NoError(t, err)

	exists, err := repo.SiblingNameExists(ctx, &root.ID, "研发部", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SiblingNameExists(ctx, &root.ID, "研发部", &child.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Create(ctx, department.Department{Name: "研发部", ParentID: &root.ID})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	children, err := repo.CountChildren(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), children)

	createTestEmployee(t, empRepo, "张三", &child.ID, employee.StatusActive)
	employees, err := repo.CountEmployees(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), employees)

	_, err = repo.GetByID(ctx, child.ID+100)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestAttendanceRepository_OneRowPerDay(t *testing.T) {
	db := newTestDB(t)
	empRepo := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	emp := createTestEmployee(t, empRepo, "李四", nil, employee.StatusActive)
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	checkin := time.Date(2024, 5, 6, 1, 30, 0, 0, time.UTC)

	row, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         day,
		CheckinTime:  &checkin,
		Status:       attendance.StatusLate,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         day,
		CheckinTime:  &checkin,
		Status:       attendance.StatusNormal,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	checkout := checkin.Add(9 * time.Hour)
	minutes := 540
	row.CheckoutTime = &checkout
	row.WorkMinutes = &minutes
	_, err = repo.UpdateCheckout(ctx, row)
	require.NoError(t, err)

	_, err = repo.UpdateCheckout(ctx, row)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	stats, err := repo.Statistics(ctx, emp.ID, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LateCount)
	assert.Equal(t, 1, stats.TotalDays)
}

func TestAttendanceRepository_MarkAbsent(t *testing.T) {
	db := newTestDB(t)
	empRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	day := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	businessDay := attendance.Day{Date: day, Start: day, End: day.AddDate(0, 0, 1)}

	createTestEmployee(t, empRepo, "缺勤", nil, employee.StatusActive)
	createTestEmployee(t, empRepo, "离职", nil, employee.StatusResigned)
	onLeave := createTestEmployee(t, empRepo, "请假", nil, employee.StatusActive)

	app, err := leaveRepo.Create(ctx, leave.LeaveApplication{
		EmployeeID:   onLeave.ID,
		EmployeeName: onLeave.Name,
		LeaveType:    leave.LeaveTypeAnnual,
		StartTime:    day.Add(-24 * time.Hour),
		EndTime:      day.Add(24 * time.Hour),
		Days:         2,
		Status:       leave.StatusPending,
	})
	require.NoError(t, err)
	_, err = leaveRepo.Decide(ctx, app.ID, leave.StatusApproved, "admin", nil, day)
	require.NoError(t, err)

	_, err = leaveRepo.Decide(ctx, app.ID, leave.StatusRejected, "admin", nil, day)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	marked, err := repo.MarkAbsent(ctx, businessDay)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	marked, err = repo.MarkAbsent(ctx, businessDay)
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestAttendanceRepository_MarkAbsent_LeaveStartingNextBusinessDay(t *testing.T) {
	db := newTestDB(t)
	empRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	rules, err := attendance.NewRules("Asia/Shanghai", "09:00", "18:00")
	require.NoError(t, err)
	day := rules.BusinessDay(time.Date(2024, 5, 7, 12, 0, 0, 0, rules.Location))

	emp := createTestEmployee(t, empRepo, "次日请假", nil, employee.StatusActive)
	nextDay := day.End
	app, err := leaveRepo.Create(ctx, leave.LeaveApplication{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		LeaveType:    leave.LeaveTypeAnnual,
		StartTime:    nextDay,
		EndTime:      nextDay.AddDate(0, 0, 1),
		Days:         1,
		Status:       leave.StatusPending,
	})
	require.NoError(t, err)
	_, err = leaveRepo.Decide(ctx, app.ID, leave.StatusApproved, "admin", nil, day.Start)
	require.NoError(t, err)

	marked, err := repo.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)
}

func TestSalaryRepository_OneRowPerMonth(t *testing.T) {
	db := newTestDB(t)
	empRepo := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewSalaryRepository(db)
	ctx := context.Background()

	emp := createTestEmployee(t, empRepo, "王五", nil, employee.StatusActive)
	row := salary.Salary{
		EmployeeID:        emp.ID,
		EmployeeName:      emp.Name,
		Month:             "2024-05",
		BaseSalary:        decimal.NewFromInt(8000),
		PerformanceSalary: decimal.NewFromInt(2000),
		Bonus:             decimal.NewFromInt(1000),
		Deduction:         decimal.NewFromInt(50),
		TotalSalary:       decimal.NewFromInt(10950),
		Status:            salary.StatusPending,
	}

	created, err := repo.Create(ctx, row)
	require.NoError(t, err)
	assert.True(t, created.TotalSalary.Equal(decimal.NewFromInt(10950)))

	_, err = repo.Create(ctx, row)
	assert.ErrorIs(t, err, salary.ErrSalaryAlreadyGenerated)

	exists, err := repo.ExistsForMonth(ctx, emp.ID, "2024-05")
	require.NoError(t, err)
	assert.True(t, exists)

	paid, err := repo.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, salary.StatusPaid, paid.Status)

	_, err = repo.MarkPaid(ctx, created.ID)
	assert.ErrorIs(t, err, salary.ErrSalaryAlreadyPaid)

	_, err = repo.MarkPaid(ctx, created.ID+100)
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}
