package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
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

type dayKey struct {
	employeeID int64
	date       string
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	rows       map[dayKey]attendance.Attendance
	nextID     int64
	markedDays []attendance.Day
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: map[dayKey]attendance.Attendance{}, nextID: 1}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	key := dayKey{a.EmployeeID, a.Date.Format("2006-01-02")}
	if _, ok := f.rows[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	a.ID = f.nextID
	f.nextID++
	f.rows[key] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	a, ok := f.rows[dayKey{employeeID, date.Format("2006-01-02")}]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAttendanceRepo) UpdateCheckout(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.rows[dayKey{a.EmployeeID, a.Date.Format("2006-01-02")}] = a
	return a, nil
}

func (f *fakeAttendanceRepo) MarkAbsent(_ context.Context, day attendance.Day) (int64, error) {
	f.markedDays = append(f.markedDays, day)
	return 3, nil
}

func (f *fakeAttendanceRepo) Statistics(_ context.Context, _ int64, month string) (attendance.Statistics, error) {
	if month != "2024-03" {
		return attendance.Statistics{}, nil
	}
	return attendance.Statistics{NormalCount: 10, LateCount: 2, AbsenceCount: 1, TotalDays: 13}, nil
}

func shanghai(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

func setupAttendanceService(t *testing.T, now time.Time) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	t.Helper()
	rules, err := attendance.NewRules("Asia/Shanghai", "09:00", "18:00")
	require.NoError(t, err)

	employees := &fakeEmployeeRepo{employees: map[int64]employee.Employee{
		1: {ID: 1, Name: "张三", Status: employee.StatusActive},
		2: {ID: 2, Name: "李四", Status: employee.StatusResigned},
	}}
	repo := newFakeAttendanceRepo()

	svc := NewAttendanceService(repo, employees, rules, 20).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("on time", func(t *testing.T) {
		svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 8, 59))
		resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: 1})
		require.NoError(t, err)
		assert.Equal(t, "NORMAL", resp.Status)
		assert.Equal(t, "2024-03-04", resp.Date)
		assert.Equal(t, "张三", resp.EmployeeName)
		require.NotNil(t, resp.CheckinTime)
		assert.Equal(t, "2024-03-04 08:59:00", *resp.CheckinTime)
	})

	t.Run("late", func(t *testing.T) {
		svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 9, 1))
		resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: 1})
		require.NoError(t, err)
		assert.Equal(t, "LATE", resp.Status)
	})

	t.Run("twice in one day", func(t *testing.T) {
		svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 8, 0))
		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: 1})
		require.NoError(t, err)
		_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: 1})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})

	t.Run("resigned employee", func(t *testing.T) {
		svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 8, 0))
		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: 2})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotActive)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 8, 0))
		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: 9})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("without check-in", func(t *testing.T) {
		svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 18, 0))
		_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: 1})
		assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	})

	t.Run("full day keeps check-in status", func(t *testing.T) {
		svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 9, 30))
		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: 1})
		require.NoError(t, err)

		svc.now = func() time.Time { return shanghai(t, 2024, 3, 4, 18, 45) }
		resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: 1})
		require.NoError(t, err)
		assert.Equal(t, "LATE", resp.Status)
		require.NotNil(t, resp.WorkMinutes)
		assert.Equal(t, 555, *resp.WorkMinutes)
		require.NotNil(t, resp.WorkHours)
		assert.Equal(t, "9h15m", *resp.WorkHours)

		_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: 1})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})

	t.Run("early leave", func(t *testing.T) {
		svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 8, 30))
		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: 1})
		require.NoError(t, err)

		svc.now = func() time.Time { return shanghai(t, 2024, 3, 4, 17, 0) }
		resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: 1})
		require.NoError(t, err)
		assert.Equal(t, "EARLY_LEAVE", resp.Status)
	})
}

func TestAttendanceService_Statistics_DefaultsToCurrentMonth(t *testing.T) {
	svc, _ := setupAttendanceService(t, shanghai(t, 2024, 3, 20, 10, 0))

	resp, err := svc.Statistics(context.Background(), attendance.StatisticsRequest{EmployeeID: 1})
	require.NoError(t, err)
	assert.Equal(t, "2024-03", resp.Month)
	assert.Equal(t, 2, resp.LateCount)
	assert.Equal(t, 13, resp.TotalDays)
}

func TestAttendanceService_MarkAbsentEmployees(t *testing.T) {
	ctx := context.Background()

	t.Run("before cut-off", func(t *testing.T) {
		svc, repo := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 19, 59))
		n, err := svc.MarkAbsentEmployees(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, repo.markedDays)
	})

	t.Run("weekend", func(t *testing.T) {
		svc, repo := setupAttendanceService(t, shanghai(t, 2024, 3, 9, 21, 0))
		n, err := svc.MarkAbsentEmployees(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, repo.markedDays)
	})

	t.Run("weekday after cut-off", func(t *testing.T) {
		svc, repo := setupAttendanceService(t, shanghai(t, 2024, 3, 4, 20, 0))
		n, err := svc.MarkAbsentEmployees(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		require.Len(t, repo.markedDays, 1)
		day := repo.markedDays[0]
		assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), day.Date)
		assert.True(t, day.Start.Equal(time.Date(2024, 3, 3, 16, 0, 0, 0, time.UTC)))
		assert.True(t, day.End.Equal(time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)))
	})
}
