package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/salary"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	salaryRepo     salary.SalaryRepository
	attendanceRepo attendance.AttendanceRepository
	location       *time.Location
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	salaryRepo salary.SalaryRepository,
	attendanceRepo attendance.AttendanceRepository,
	location *time.Location,
) report.ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
		location:       location,
	}
}

// sheet is one worksheet: a header row followed by data rows.
type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	var (
		sh       sheet
		filename string
		err      error
	)

	switch req.Type {
	case report.TypeEmployee:
		sh, err = s.employeeSheet(ctx)
		filename = "employees.xlsx"
	case report.TypeSalary:
		sh, err = s.salarySheet(ctx, req.Month)
		filename = fmt.Sprintf("salaries_%s.xlsx", req.Month)
	case report.TypeAttendance:
		sh, err = s.attendanceSheet(ctx, req.Month)
		filename = fmt.Sprintf("attendance_%s.xlsx", req.Month)
	default:
		return report.ExportFile{}, report.ErrUnsupportedExportType
	}
	if err != nil {
		return report.ExportFile{}, err
	}

	data, err := render(sh)
	if err != nil {
		slog.Error("Failed to render workbook", "type", req.Type, "error", err)
		return report.ExportFile{}, report.ErrReportGenerationFailed
	}

	return report.ExportFile{
		Filename:    filename,
		ContentType: report.XLSXContentType,
		Data:        data,
	}, nil
}

func (s *ReportServiceImpl) employeeSheet(ctx context.Context) (sheet, error) {
	emps, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return sheet{}, fmt.Errorf("failed to list employees: %w", err)
	}

	sh := sheet{
		name:    "员工花名册",
		headers: []string{"ID", "姓名", "性别", "年龄", "部门", "职位", "电话", "邮箱", "入职日期", "状态", "基本工资"},
		widths:  []float64{8, 12, 8, 8, 16, 16, 16, 24, 12, 10, 12},
	}
	for _, e := range emps {
		var hireDate string
		if e.HireDate != nil {
			hireDate = e.HireDate.Format("2006-01-02")
		}
		var base any = ""
		if e.Salary != nil {
			base = e.Salary.InexactFloat64()
		}
		var age any = ""
		if e.Age != nil {
			age = *e.Age
		}
		sh.rows = append(sh.rows, []any{
			e.ID, e.Name, deref(e.Gender), age, deref(e.DepartmentName), deref(e.Position),
			deref(e.Phone), deref(e.Email), hireDate, string(e.Status), base,
		})
	}
	return sh, nil
}

func (s *ReportServiceImpl) salarySheet(ctx context.Context, month string) (sheet, error) {
	rows, err := s.salaryRepo.ListByMonth(ctx, month)
	if err != nil {
		return sheet{}, fmt.Errorf("failed to list salaries: %w", err)
	}

	sh := sheet{
		name:    "薪资" + month,
		headers: []string{"员工ID", "姓名", "月份", "基本工资", "绩效工资", "奖金", "扣款", "实发工资", "状态"},
		widths:  []float64{10, 12, 10, 12, 12, 10, 10, 12, 10},
	}
	for _, r := range rows {
		sh.rows = append(sh.rows, []any{
			r.EmployeeID, r.EmployeeName, r.Month,
			r.BaseSalary.InexactFloat64(), r.PerformanceSalary.InexactFloat64(), r.Bonus.InexactFloat64(),
			r.Deduction.InexactFloat64(), r.TotalSalary.InexactFloat64(), string(r.Status),
		})
	}
	return sh, nil
}

func (s *ReportServiceImpl) attendanceSheet(ctx context.Context, month string) (sheet, error) {
	rows, err := s.attendanceRepo.ListByMonth(ctx, month)
	if err != nil {
		return sheet{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	sh := sheet{
		name:    "考勤" + month,
		headers: []string{"员工ID", "姓名", "日期", "签到时间", "签退时间", "状态", "工作时长"},
		widths:  []float64{10, 12, 12, 20, 20, 12, 12},
	}
	for _, r := range rows {
		var workHours string
		if r.WorkMinutes != nil {
			workHours = attendance.FormatWorkMinutes(*r.WorkMinutes)
		}
		sh.rows = append(sh.rows, []any{
			r.EmployeeID, r.EmployeeName, r.Date.Format("2006-01-02"),
			s.clock(r.CheckinTime), s.clock(r.CheckoutTime), string(r.Status), workHours,
		})
	}
	return sh, nil
}

func (s *ReportServiceImpl) clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(s.location).Format("2006-01-02 15:04:05")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func render(sh sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sh.name)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	header := make([]any, len(sh.headers))
	for i, h := range sh.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(sh.headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sh.name, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	for i, w := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sh.name, col, col, w); err != nil {
			return nil, err
		}
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
