package oplog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/oplog"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
)

const (
	defaultQueueSize = 256
	writeTimeout     = 5 * time.Second
)

type OperationLogServiceImpl struct {
	repo oplog.OperationLogRepository

	mu     sync.RWMutex
	closed bool
	queue  chan oplog.OperationLog
	done   chan struct{}
}

// NewOperationLogService starts the background writer. Close must be called
// on shutdown to flush queued entries.
func NewOperationLogService(repo oplog.OperationLogRepository, queueSize int) oplog.OperationLogService {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	s := &OperationLogServiceImpl{
		repo:  repo,
		queue: make(chan oplog.OperationLog, queueSize),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *OperationLogServiceImpl) run() {
	defer close(s.done)
	for entry := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := s.repo.Create(ctx, entry); err != nil {
			slog.Error("Failed to write operation log", "operation", entry.Operation, "error", err)
		}
		cancel()
	}
}

// Record implements oplog.OperationLogService. Entries are dropped when the
// queue is full or the service is closed.
func (s *OperationLogServiceImpl) Record(entry oplog.OperationLog) {
	if entry.Params != nil {
		params := oplog.TruncateParams(*entry.Params)
		entry.Params = &params
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.queue <- entry:
	default:
		slog.Warn("Operation log queue full, dropping entry", "operation", entry.Operation)
	}
}

// Close implements oplog.OperationLogService.
func (s *OperationLogServiceImpl) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
}

func mapOperationLogToResponse(l oplog.OperationLog) oplog.OperationLogResponse {
	return oplog.OperationLogResponse{
		ID:          l.ID,
		RequestID:   l.RequestID,
		Username:    l.Username,
		Operation:   l.Operation,
		Method:      l.Method,
		Params:      l.Params,
		IP:          l.IP,
		StatusCode:  l.StatusCode,
		ExecuteTime: l.ExecuteTime,
		CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// List implements oplog.OperationLogService.
func (s *OperationLogServiceImpl) List(ctx context.Context, filter oplog.OperationLogFilter) (oplog.ListOperationLogResponse, error) {
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return oplog.ListOperationLogResponse{}, err
	}

	responses := make([]oplog.OperationLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, mapOperationLogToResponse(l))
	}

	page := pagination.New(total, filter.Page, filter.Limit)
	return oplog.ListOperationLogResponse{
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		Showing:    page.Showing,
		Logs:       responses,
	}, nil
}
