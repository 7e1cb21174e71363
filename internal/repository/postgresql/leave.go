package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `id, employee_id, employee_name, leave_type, start_time, end_time, days, reason,
	status, approver, approval_comment, approval_time, created_at`

func scanLeave(row pgx.Row) (leave.LeaveApplication, error) {
	var l leave.LeaveApplication
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.EmployeeName, &l.LeaveType, &l.StartTime, &l.EndTime, &l.Days, &l.Reason,
		&l.Status, &l.Approver, &l.ApprovalComment, &l.ApprovalTime, &l.CreatedAt,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (employee_id, employee_name, leave_type, start_time, end_time, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		app.EmployeeID, app.EmployeeName, app.LeaveType, app.StartTime, app.EndTime, app.Days, app.Reason, app.Status,
	))
	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to create leave application: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveApplication{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to get leave application: %w", err)
	}
	return l, nil
}

// Decide implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Decide(ctx context.Context, id int64, status leave.Status, approver string, comment *string, at time.Time) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $1, approver = $2, approval_comment = $3, approval_time = $4
		WHERE id = $5 AND status = 'PENDING'
		RETURNING ` + leaveColumns

	updated, err := scanLeave(q.QueryRow(ctx, query, status, approver, comment, at, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either missing or no longer pending.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.LeaveApplication{}, getErr
			}
			return leave.LeaveApplication{}, leave.ErrLeaveAlreadyProcessed
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to decide leave application: %w", err)
	}
	return updated, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveApplication, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		baseWhere += fmt.Sprintf(" AND leave_type = $%d", argIdx)
		args = append(args, *filter.LeaveType)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM leave_applications "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave applications: %w", err)
	}

	orderBy := "created_at"
	switch filter.SortBy {
	case "start_time":
		orderBy = "start_time"
	case "days":
		orderBy = "days"
	}
	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_applications
		%s
		ORDER BY %s %s, id DESC
		LIMIT $%d OFFSET $%d
	`, leaveColumns, baseWhere, orderBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	apps, err := r.queryLeaves(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.LeaveApplication, error) {
	return r.queryLeaves(ctx, `SELECT `+leaveColumns+`
		FROM leave_applications
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC`, employeeID)
}

func (r *leaveRepositoryImpl) queryLeaves(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave applications: %w", err)
	}
	defer rows.Close()

	var apps []leave.LeaveApplication
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		apps = append(apps, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}
