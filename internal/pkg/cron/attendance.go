package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees is a no-op before the cut-off hour and on weekends.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	count, err := j.attendanceService.MarkAbsentEmployees(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark absent employees: %w", err)
	}
	if count > 0 {
		slog.Info("Cron: Marked absent employees", "count", count)
	}
	return nil
}
