package leave

import "time"

type LeaveType string

const (
	LeaveTypeSick     LeaveType = "SICK"
	LeaveTypePersonal LeaveType = "PERSONAL"
	LeaveTypeAnnual   LeaveType = "ANNUAL"
)

var ValidLeaveTypes = []string{string(LeaveTypeSick), string(LeaveTypePersonal), string(LeaveTypeAnnual)}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var ValidStatuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

type LeaveApplication struct {
	ID              int64
	EmployeeID      int64
	EmployeeName    string
	LeaveType       LeaveType
	StartTime       time.Time
	EndTime         time.Time
	Days            int
	Reason          *string
	Status          Status
	Approver        *string
	ApprovalComment *string
	ApprovalTime    *time.Time
	CreatedAt       time.Time
}

func (l *LeaveApplication) IsPending() bool {
	return l.Status == StatusPending
}

// CalculateDays counts whole 24-hour periods between start and end.
func CalculateDays(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / (24 * time.Hour))
}
