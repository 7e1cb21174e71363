package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	employee.EmployeeRepository
	emailService email.EmailService
	location     *time.Location
	now          func() time.Time
}

func NewLeaveService(leaveRepository leave.LeaveRepository, employeeRepository employee.EmployeeRepository, emailService email.EmailService, location *time.Location) leave.LeaveService {
	if location == nil {
		location = time.UTC
	}
	return &LeaveServiceImpl{
		LeaveRepository:    leaveRepository,
		EmployeeRepository: employeeRepository,
		emailService:       emailService,
		location:           location,
		now:                time.Now,
	}
}

const leaveTimeLayout = "2006-01-02 15:04:05"

// mapLeaveToResponse renders timestamps in the business timezone.
func mapLeaveToResponse(app leave.LeaveApplication, loc *time.Location) leave.LeaveResponse {
	var approvalTime *string
	if app.ApprovalTime != nil {
		s := app.ApprovalTime.In(loc).Format(leaveTimeLayout)
		approvalTime = &s
	}

	return leave.LeaveResponse{
		ID:              app.ID,
		EmployeeID:      app.EmployeeID,
		EmployeeName:    app.EmployeeName,
		LeaveType:       string(app.LeaveType),
		StartTime:       app.StartTime.In(loc).Format(leaveTimeLayout),
		EndTime:         app.EndTime.In(loc).Format(leaveTimeLayout),
		Days:            app.Days,
		Reason:          app.Reason,
		Status:          string(app.Status),
		Approver:        app.Approver,
		ApprovalComment: app.ApprovalComment,
		ApprovalTime:    approvalTime,
		CreatedAt:       app.CreatedAt.In(loc).Format(leaveTimeLayout),
	}
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	// Zone-less times belong to the business timezone.
	req.Location = l.location
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	created, err := l.LeaveRepository.Create(ctx, leave.LeaveApplication{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		LeaveType:    leave.LeaveType(req.LeaveType),
		StartTime:    req.Start,
		EndTime:      req.End,
		Days:         leave.CalculateDays(req.Start, req.End),
		Reason:       req.Reason,
		Status:       leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return mapLeaveToResponse(created, l.location), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
	decided, err := l.LeaveRepository.Decide(ctx, req.ID, leave.Status(req.Status), req.Approver, req.Comment, l.now().UTC())
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l.notifyDecision(ctx, decided)
	return mapLeaveToResponse(decided, l.location), nil
}

// notifyDecision emails the employee in the background; failures are only logged.
func (l *LeaveServiceImpl) notifyDecision(ctx context.Context, app leave.LeaveApplication) {
	if l.emailService == nil {
		return
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, app.EmployeeID)
	if err != nil {
		slog.Warn("Skipping leave decision email", "leave_id", app.ID, "error", err)
		return
	}
	if emp.Email == nil || *emp.Email == "" {
		return
	}

	data := email.LeaveDecisionData{
		EmployeeName: app.EmployeeName,
		LeaveType:    string(app.LeaveType),
		StartTime:    app.StartTime.In(l.location).Format("2006-01-02 15:04"),
		EndTime:      app.EndTime.In(l.location).Format("2006-01-02 15:04"),
		Days:         app.Days,
		Status:       string(app.Status),
	}
	if app.Approver != nil {
		data.Approver = *app.Approver
	}
	if app.ApprovalComment != nil {
		data.Comment = *app.ApprovalComment
	}

	to := *emp.Email
	go func() {
		if err := l.emailService.SendLeaveDecision(to, data); err != nil {
			slog.Error("Failed to send leave decision email", "leave_id", app.ID, "error", err)
		}
	}()
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	apps, total, err := l.LeaveRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave applications: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, mapLeaveToResponse(app, l.location))
	}

	page := pagination.New(total, filter.Page, filter.Limit)
	return leave.ListLeaveResponse{
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		Showing:    page.Showing,
		Leaves:     responses,
	}, nil
}

// ListByEmployee implements leave.LeaveService.
func (l *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.LeaveResponse, error) {
	if _, err := l.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	apps, err := l.LeaveRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, mapLeaveToResponse(app, l.location))
	}
	return responses, nil
}
