package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (f *fakeEmployeeRepo) ListAll(_ context.Context) ([]employee.Employee, error) {
	dept := "研发部"
	base := decimal.NewFromInt(8000)
	return []employee.Employee{
		{ID: 1, Name: "张三", DepartmentName: &dept, Salary: &base, Status: employee.StatusActive},
		{ID: 2, Name: "李四", Status: employee.StatusResigned},
	}, nil
}

type fakeSalaryRepo struct {
	salary.SalaryRepository
}

func (f *fakeSalaryRepo) ListByMonth(_ context.Context, month string) ([]salary.Salary, error) {
	return []salary.Salary{salary.Build(1, "张三", month, nil, 1, 0)}, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, _ string) ([]attendance.Attendance, error) {
	in := time.Date(2024, 5, 6, 1, 0, 0, 0, time.UTC)
	out := time.Date(2024, 5, 6, 10, 30, 0, 0, time.UTC)
	minutes := 570
	return []attendance.Attendance{{
		EmployeeID:   1,
		EmployeeName: "张三",
		Date:         time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		CheckinTime:  &in,
		CheckoutTime: &out,
		Status:       attendance.StatusNormal,
		WorkMinutes:  &minutes,
	}}, nil
}

func newService(t *testing.T) report.ReportService {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	return NewReportService(&fakeEmployeeRepo{}, &fakeSalaryRepo{}, &fakeAttendanceRepo{}, loc)
}

func readRows(t *testing.T, file report.ExportFile, sheetName string) [][]string {
	t.Helper()
	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestReportService_Export_Employees(t *testing.T) {
	file, err := newService(t).Export(context.Background(), report.ExportRequest{Type: report.TypeEmployee})
	require.NoError(t, err)
	assert.Equal(t, "employees.xlsx", file.Filename)
	assert.Equal(t, report.XLSXContentType, file.ContentType)

	rows := readRows(t, file, "员工花名册")
	require.Len(t, rows, 3)
	assert.Equal(t, "姓名", rows[0][1])
	assert.Equal(t, "张三", rows[1][1])
	assert.Equal(t, "研发部", rows[1][4])
	assert.Equal(t, "RESIGNED", rows[2][9])
}

func TestReportService_Export_Salaries(t *testing.T) {
	file, err := newService(t).Export(context.Background(), report.ExportRequest{Type: report.TypeSalary, Month: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, "salaries_2024-05.xlsx", file.Filename)

	rows := readRows(t, file, "薪资2024-05")
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-05", rows[1][2])
	assert.Equal(t, "50", rows[1][6])
	assert.Equal(t, "7950", rows[1][7])
}

func TestReportService_Export_Attendance(t *testing.T) {
	file, err := newService(t).Export(context.Background(), report.ExportRequest{Type: report.TypeAttendance, Month: "2024-05"})
	require.NoError(t, err)

	rows := readRows(t, file, "考勤2024-05")
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-05-06 09:00:00", rows[1][3])
	assert.Equal(t, "9h30m", rows[1][6])
}

func TestReportService_Export_UnknownType(t *testing.T) {
	_, err := newService(t).Export(context.Background(), report.ExportRequest{Type: "budget"})
	assert.ErrorIs(t, err, report.ErrUnsupportedExportType)
}
