package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/email"
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

type fakeLeaveRepo struct {
	apps   map[int64]leave.LeaveApplication
	nextID int64
}

func (f *fakeLeaveRepo) Create(_ context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	app.ID = f.nextID
	f.nextID++
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id int64) (leave.LeaveApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrLeaveNotFound
	}
	return app, nil
}

func (f *fakeLeaveRepo) Decide(_ context.Context, id int64, status leave.Status, approver string, comment *string, at time.Time) (leave.LeaveApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrLeaveNotFound
	}
	if !app.IsPending() {
		return leave.LeaveApplication{}, leave.ErrLeaveAlreadyProcessed
	}
	app.Status = status
	app.Approver = &approver
	app.ApprovalComment = comment
	app.ApprovalTime = &at
	f.apps[id] = app
	return app, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, _ leave.LeaveFilter) ([]leave.LeaveApplication, int64, error) {
	out := make([]leave.LeaveApplication, 0, len(f.apps))
	for _, app := range f.apps {
		out = append(out, app)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID int64) ([]leave.LeaveApplication, error) {
	var out []leave.LeaveApplication
	for _, app := range f.apps {
		if app.EmployeeID == employeeID {
			out = append(out, app)
		}
	}
	return out, nil
}

type sentEmail struct {
	to   string
	data email.LeaveDecisionData
}

type fakeEmailService struct {
	sent chan sentEmail
}

func (f *fakeEmailService) SendLeaveDecision(to string, data email.LeaveDecisionData) error {
	f.sent <- sentEmail{to: to, data: data}
	return nil
}

func setupLeaveService() (*LeaveServiceImpl, *fakeLeaveRepo, *fakeEmailService) {
	mail := "zhangsan@example.com"
	employees := &fakeEmployeeRepo{employees: map[int64]employee.Employee{
		1: {ID: 1, Name: "张三", Email: &mail, Status: employee.StatusActive},
		2: {ID: 2, Name: "李四", Status: employee.StatusActive},
	}}
	repo := &fakeLeaveRepo{apps: map[int64]leave.LeaveApplication{}, nextID: 1}
	mailer := &fakeEmailService{sent: make(chan sentEmail, 4)}

	svc := NewLeaveService(repo, employees, mailer, time.FixedZone("CST", 8*3600)).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo, mailer
}

func applyRequest(t *testing.T, employeeID int64, start, end string) leave.ApplyLeaveRequest {
	t.Helper()
	req := leave.ApplyLeaveRequest{EmployeeID: employeeID, LeaveType: "ANNUAL", StartTime: start, EndTime: end}
	require.NoError(t, req.Validate())
	return req
}

func TestLeaveService_Apply(t *testing.T) {
	svc, _, _ := setupLeaveService()
	ctx := context.Background()

	resp, err := svc.Apply(ctx, applyRequest(t, 1, "2024-05-06T09:00:00+08:00", "2024-05-08T18:00:00+08:00"))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, 2, resp.Days)
	assert.Equal(t, "张三", resp.EmployeeName)

	_, err = svc.Apply(ctx, applyRequest(t, 99, "2024-05-06T09:00:00+08:00", "2024-05-07T09:00:00+08:00"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLeaveService_Apply_BusinessTimezone(t *testing.T) {
	svc, repo, _ := setupLeaveService()
	ctx := context.Background()

	resp, err := svc.Apply(ctx, applyRequest(t, 1, "2024-05-08 00:00:00", "2024-05-09 00:00:00"))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-08 00:00:00", resp.StartTime)
	assert.Equal(t, "2024-05-09 00:00:00", resp.EndTime)
	assert.Equal(t, 1, resp.Days)

	stored := repo.apps[resp.ID]
	assert.True(t, stored.StartTime.Equal(time.Date(2024, 5, 7, 16, 0, 0, 0, time.UTC)))

	_, err = svc.Apply(ctx, leave.ApplyLeaveRequest{EmployeeID: 1, LeaveType: "ANNUAL", StartTime: "2024-05-09 00:00:00", EndTime: "2024-05-08 00:00:00"})
	assert.Error(t, err)
}

func TestLeaveService_Approve(t *testing.T) {
	svc, _, mailer := setupLeaveService()
	ctx := context.Background()

	applied, err := svc.Apply(ctx, applyRequest(t, 1, "2024-05-06T09:00:00+08:00", "2024-05-07T09:00:00+08:00"))
	require.NoError(t, err)

	comment := "enjoy"
	resp, err := svc.Approve(ctx, leave.ApproveLeaveRequest{ID: applied.ID, Status: "APPROVED", Comment: &comment, Approver: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	require.NotNil(t, resp.Approver)
	assert.Equal(t, "admin", *resp.Approver)
	require.NotNil(t, resp.ApprovalTime)
	assert.Equal(t, "2024-05-01 18:00:00", *resp.ApprovalTime)

	select {
	case sent := <-mailer.sent:
		assert.Equal(t, "zhangsan@example.com", sent.to)
		assert.Equal(t, "APPROVED", sent.data.Status)
		assert.Equal(t, "admin", sent.data.Approver)
		assert.Equal(t, "enjoy", sent.data.Comment)
	case <-time.After(time.Second):
		t.Fatal("expected a decision email")
	}

	_, err = svc.Approve(ctx, leave.ApproveLeaveRequest{ID: applied.ID, Status: "REJECTED", Approver: "admin"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	_, err = svc.Approve(ctx, leave.ApproveLeaveRequest{ID: 404, Status: "REJECTED", Approver: "admin"})
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestLeaveService_Approve_NoEmailWithoutAddress(t *testing.T) {
	svc, _, mailer := setupLeaveService()
	ctx := context.Background()

	applied, err := svc.Apply(ctx, applyRequest(t, 2, "2024-05-06T09:00:00+08:00", "2024-05-07T09:00:00+08:00"))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leave.ApproveLeaveRequest{ID: applied.ID, Status: "REJECTED", Approver: "admin"})
	require.NoError(t, err)

	select {
	case <-mailer.sent:
		t.Fatal("no email expected for an employee without address")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLeaveService_ListByEmployee(t *testing.T) {
	svc, _, _ := setupLeaveService()
	ctx := context.Background()

	_, err := svc.Apply(ctx, applyRequest(t, 1, "2024-05-06T09:00:00+08:00", "2024-05-07T09:00:00+08:00"))
	require.NoError(t, err)
	_, err = svc.Apply(ctx, applyRequest(t, 2, "2024-05-06T09:00:00+08:00", "2024-05-07T09:00:00+08:00"))
	require.NoError(t, err)

	list, err := svc.ListByEmployee(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].EmployeeID)

	_, err = svc.ListByEmployee(ctx, 77)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
