package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsJobsImmediatelyAndOnTick(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("counter", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load(), "no runs after Stop")
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler()
	s.Stop()
}

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, []string{"first", "second"}, s.Jobs())
}

func TestSchedulerRecoversPanics(t *testing.T) {
	s := NewScheduler()
	s.AddJob("panics", time.Hour, func(ctx context.Context) error {
		panic("unexpected")
	})

	err := s.RunOnce(context.Background())
	assert.ErrorContains(t, err, "panicked")
}
