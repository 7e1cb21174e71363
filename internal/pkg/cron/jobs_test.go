package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/ai"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	marked int64
	err    error
}

func (s *stubAttendanceService) MarkAbsentEmployees(ctx context.Context) (int64, error) {
	return s.marked, s.err
}

type stubAIService struct {
	ai.AIService
	purged int
	err    error
}

func (s *stubAIService) PurgeCache(ctx context.Context) (int, error) {
	return s.purged, s.err
}

func TestRegisterJobs(t *testing.T) {
	s := NewScheduler()
	NewAttendanceJobs(&stubAttendanceService{}).RegisterJobs(s)
	NewCacheJobs(&stubAIService{}).RegisterJobs(s)

	assert.Equal(t, []string{"mark_absent_employees", "purge_ai_cache"}, s.Jobs())
}

func TestMarkAbsentEmployeesJob(t *testing.T) {
	jobs := NewAttendanceJobs(&stubAttendanceService{marked: 3})
	assert.NoError(t, jobs.MarkAbsentEmployees(context.Background()))

	jobs = NewAttendanceJobs(&stubAttendanceService{err: errors.New("db down")})
	assert.Error(t, jobs.MarkAbsentEmployees(context.Background()))
}

func TestPurgeAICacheJob(t *testing.T) {
	jobs := NewCacheJobs(&stubAIService{purged: 2})
	assert.NoError(t, jobs.PurgeAICache(context.Background()))

	jobs = NewCacheJobs(&stubAIService{err: errors.New("redis down")})
	assert.Error(t, jobs.PurgeAICache(context.Background()))
}
