package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/oplog"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/pagination"
)

type operationLogRepositoryImpl struct {
	db *database.DB
}

func NewOperationLogRepository(db *database.DB) oplog.OperationLogRepository {
	return &operationLogRepositoryImpl{db: db}
}

// Create implements oplog.OperationLogRepository.
func (r *operationLogRepositoryImpl) Create(ctx context.Context, log oplog.OperationLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO operation_logs (request_id, username, operation, method, params, ip, status_code, execute_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		log.RequestID, log.Username, log.Operation, log.Method, log.Params, log.IP, log.StatusCode, log.ExecuteTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create operation log: %w", err)
	}
	return nil
}

// List implements oplog.OperationLogRepository.
func (r *operationLogRepositoryImpl) List(ctx context.Context, filter oplog.OperationLogFilter) ([]oplog.OperationLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.Username != nil && *filter.Username != "" {
		baseWhere += fmt.Sprintf(" AND username = $%d", argIdx)
		args = append(args, *filter.Username)
		argIdx++
	}
	if filter.Operation != nil && *filter.Operation != "" {
		baseWhere += fmt.Sprintf(" AND operation ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Operation+"%")
		argIdx++
	}
	if filter.Method != nil && *filter.Method != "" {
		baseWhere += fmt.Sprintf(" AND method = $%d", argIdx)
		args = append(args, *filter.Method)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM operation_logs "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count operation logs: %w", err)
	}

	orderBy := "created_at"
	if filter.SortBy == "execute_time" {
		orderBy = "execute_time"
	}
	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, request_id, username, operation, method, params, ip, COALESCE(status_code, 0), execute_time, created_at
		FROM operation_logs
		%s
		ORDER BY %s %s, id DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list operation logs: %w", err)
	}
	defer rows.Close()

	var logs []oplog.OperationLog
	for rows.Next() {
		var l oplog.OperationLog
		if err := rows.Scan(&l.ID, &l.RequestID, &l.Username, &l.Operation, &l.Method, &l.Params, &l.IP, &l.StatusCode, &l.ExecuteTime, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan operation log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
