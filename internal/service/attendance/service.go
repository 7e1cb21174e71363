package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	rules      attendance.Rules
	cutoffHour int
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	rules attendance.Rules,
	cutoffHour int,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		rules:                rules,
		cutoffHour:           cutoffHour,
		now:                  time.Now,
	}
}

// timePtrToString renders t in the business timezone.
func (a *AttendanceServiceImpl) timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.In(a.rules.Location).Format("2006-01-02 15:04:05")
	return &format
}

func (a *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.Date.Format("2006-01-02"),
		CheckinTime:  a.timePtrToString(att.CheckinTime),
		CheckoutTime: a.timePtrToString(att.CheckoutTime),
		Status:       string(att.Status),
		WorkMinutes:  att.WorkMinutes,
		CreatedAt:    att.CreatedAt.In(a.rules.Location).Format("2006-01-02 15:04:05"),
	}
	if att.WorkMinutes != nil {
		hours := attendance.FormatWorkMinutes(*att.WorkMinutes)
		resp.WorkHours = &hours
	}
	return resp
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive() {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotActive
	}

	now := a.now().UTC()
	date := a.rules.LocalDate(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         date,
		CheckinTime:  &now,
		Status:       a.rules.CheckInStatus(now),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee checked in", "employee_id", emp.ID, "status", created.Status)
	return a.mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now().UTC()
	date := a.rules.LocalDate(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil || existing.CheckinTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckoutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	minutes := attendance.WorkMinutes(*existing.CheckinTime, now)
	existing.CheckoutTime = &now
	existing.WorkMinutes = &minutes
	existing.Status = a.rules.CheckOutStatus(existing.Status, now)

	updated, err := a.AttendanceRepository.UpdateCheckout(ctx, *existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return a.mapAttendanceToResponse(updated), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	rows, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, a.mapAttendanceToResponse(row))
	}

	page := pagination.New(total, filter.Page, filter.Limit)
	return attendance.ListAttendanceResponse{
		TotalCount:  page.TotalCount,
		Page:        page.Page,
		Limit:       page.Limit,
		TotalPages:  page.TotalPages,
		Showing:     page.Showing,
		Attendances: responses,
	}, nil
}

// Statistics implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Statistics(ctx context.Context, req attendance.StatisticsRequest) (attendance.StatisticsResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.StatisticsResponse{}, err
	}

	month := req.Month
	if month == "" {
		month = a.now().In(a.rules.Location).Format("2006-01")
	}

	stats, err := a.AttendanceRepository.Statistics(ctx, req.EmployeeID, month)
	if err != nil {
		return attendance.StatisticsResponse{}, fmt.Errorf("failed to get attendance statistics: %w", err)
	}

	return attendance.StatisticsResponse{
		EmployeeID:      req.EmployeeID,
		Month:           month,
		NormalCount:     stats.NormalCount,
		LateCount:       stats.LateCount,
		EarlyLeaveCount: stats.EarlyLeaveCount,
		AbsenceCount:    stats.AbsenceCount,
		TotalDays:       stats.TotalDays,
	}, nil
}

// MarkAbsentEmployees implements attendance.AttendanceService. It is a
// no-op on weekends and before the cut-off hour.
func (a *AttendanceServiceImpl) MarkAbsentEmployees(ctx context.Context) (int64, error) {
	local := a.now().In(a.rules.Location)
	if local.Weekday() == time.Saturday || local.Weekday() == time.Sunday {
		return 0, nil
	}
	if local.Hour() < a.cutoffHour {
		return 0, nil
	}

	day := a.rules.BusinessDay(local)
	marked, err := a.AttendanceRepository.MarkAbsent(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absent employees: %w", err)
	}
	if marked > 0 {
		slog.Info("Marked absent employees", "date", day.Date.Format("2006-01-02"), "count", marked)
	}
	return marked, nil
}
