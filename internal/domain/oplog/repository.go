package oplog

import "context"

type OperationLogRepository interface {
	Create(ctx context.Context, log OperationLog) error
	List(ctx context.Context, filter OperationLogFilter) ([]OperationLog, int64, error)
}
