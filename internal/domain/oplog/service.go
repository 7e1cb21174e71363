package oplog

import "context"

type OperationLogService interface {
	// Record stores log without blocking the caller.
	Record(log OperationLog)
	List(ctx context.Context, filter OperationLogFilter) (ListOperationLogResponse, error)

	// Close waits for pending writes.
	Close()
}
