package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, employee_name, date, checkin_time, checkout_time, status, work_minutes, created_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.EmployeeName, &att.Date,
		&att.CheckinTime, &att.CheckoutTime, &att.Status, &att.WorkMinutes, &att.CreatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, employee_name, date, checkin_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.EmployeeName,
		newAttendance.Date,
		newAttendance.CheckinTime,
		newAttendance.Status,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return newAttendance, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`
	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &att, nil
}

// UpdateCheckout implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckout(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET checkout_time = $1, status = $2, work_minutes = $3
		WHERE id = $4 AND checkout_time IS NULL
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, att.CheckoutTime, att.Status, att.WorkMinutes, att.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update checkout: %w", err)
	}
	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "WHERE 1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderBy := "date"
	switch filter.SortBy {
	case "employee_name":
		orderBy = "employee_name"
	case "checkin_time":
		orderBy = "checkin_time"
	case "checkout_time":
		orderBy = "checkout_time"
	case "status":
		orderBy = "status"
	}
	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		%s
		ORDER BY %s %s NULLS LAST, id DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	records, err := a.queryAttendances(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, month string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE to_char(date, 'YYYY-MM') = $1
		ORDER BY date ASC, employee_id ASC`
	return a.queryAttendances(ctx, query, month)
}

func (a *attendanceRepository) queryAttendances(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

const statisticsColumns = `
	COUNT(*) FILTER (WHERE status = 'NORMAL'),
	COUNT(*) FILTER (WHERE status = 'LATE'),
	COUNT(*) FILTER (WHERE status = 'EARLY_LEAVE'),
	COUNT(*) FILTER (WHERE status = 'ABSENCE'),
	COUNT(*)
`

// Statistics implements attendance.AttendanceRepository.
func (a *attendanceRepository) Statistics(ctx context.Context, employeeID int64, month string) (attendance.Statistics, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + statisticsColumns + `
		FROM attendances
		WHERE employee_id = $1 AND to_char(date, 'YYYY-MM') = $2`

	var s attendance.Statistics
	err := q.QueryRow(ctx, query, employeeID, month).Scan(&s.NormalCount, &s.LateCount, &s.EarlyLeaveCount, &s.AbsenceCount, &s.TotalDays)
	if err != nil {
		return attendance.Statistics{}, fmt.Errorf("failed to get attendance statistics: %w", err)
	}
	return s, nil
}

// StatusCounts implements attendance.AttendanceRepository.
func (a *attendanceRepository) StatusCounts(ctx context.Context, month string) (attendance.Statistics, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + statisticsColumns + `
		FROM attendances
		WHERE to_char(date, 'YYYY-MM') = $1`

	var s attendance.Statistics
	err := q.QueryRow(ctx, query, month).Scan(&s.NormalCount, &s.LateCount, &s.EarlyLeaveCount, &s.AbsenceCount, &s.TotalDays)
	if err != nil {
		return attendance.Statistics{}, fmt.Errorf("failed to count attendance statuses: %w", err)
	}
	return s, nil
}

// MarkAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkAbsent(ctx context.Context, day attendance.Day) (int64, error) {
	q := GetQuerier(ctx, a.db)

	// Approved leave covers the day when it overlaps any instant of it. The
	// bounds are passed as timestamptz so the session timezone never applies.
	query := `
		INSERT INTO attendances (employee_id, employee_name, date, status, work_minutes)
		SELECT e.id, e.name, $1::DATE, 'ABSENCE', 0
		FROM employees e
		WHERE e.status = 'ACTIVE'
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a WHERE a.employee_id = e.id AND a.date = $1::DATE
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM leave_applications l
			WHERE l.employee_id = e.id
			  AND l.status = 'APPROVED'
			  AND l.start_time < $3::TIMESTAMPTZ
			  AND l.end_time > $2::TIMESTAMPTZ
		  )
		ON CONFLICT (employee_id, date) DO NOTHING
	`
	tag, err := q.Exec(ctx, query, day.Date, day.Start, day.End)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absent employees: %w", err)
	}
	return tag.RowsAffected(), nil
}
