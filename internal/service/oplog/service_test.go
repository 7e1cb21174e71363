package oplog

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/oplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	entries []oplog.OperationLog
	block   chan struct{}
}

func (f *fakeRepo) Create(_ context.Context, l oplog.OperationLog) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, l)
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ oplog.OperationLogFilter) ([]oplog.OperationLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]oplog.OperationLog(nil), f.entries...), int64(len(f.entries)), nil
}

func TestOperationLogService_RecordAndClose(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewOperationLogService(repo, 8)

	long := strings.Repeat("参", oplog.MaxParamsLength+10)
	svc.Record(oplog.OperationLog{Operation: "POST /api/v1/employees", Method: "POST", Params: &long, StatusCode: 201})
	svc.Record(oplog.OperationLog{Operation: "DELETE /api/v1/employees/{id}", Method: "DELETE", StatusCode: 204})
	svc.Close()

	require.Len(t, repo.entries, 2)
	assert.Equal(t, "POST /api/v1/employees", repo.entries[0].Operation)
	require.NotNil(t, repo.entries[0].Params)
	assert.Len(t, []rune(*repo.entries[0].Params), oplog.MaxParamsLength)

	// recording after close is ignored and Close is idempotent
	svc.Record(oplog.OperationLog{Operation: "late"})
	svc.Close()
	assert.Len(t, repo.entries, 2)
}

func TestOperationLogService_DropsWhenQueueFull(t *testing.T) {
	repo := &fakeRepo{block: make(chan struct{})}
	svc := NewOperationLogService(repo, 1)

	for i := 0; i < 10; i++ {
		svc.Record(oplog.OperationLog{Operation: "PUT /x", Method: "PUT"})
	}
	close(repo.block)
	svc.Close()

	// one in flight plus one queued at most
	assert.LessOrEqual(t, len(repo.entries), 2)
	assert.NotEmpty(t, repo.entries)
}

func TestOperationLogService_List(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewOperationLogService(repo, 4)
	svc.Record(oplog.OperationLog{Operation: "POST /api/v1/leave/apply", Method: "POST"})
	svc.Close()

	resp, err := svc.List(context.Background(), oplog.OperationLogFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "POST", resp.Logs[0].Method)
}
