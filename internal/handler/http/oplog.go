package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/oplog"
	"github.com/cmlabs-hris/hrm-backend-go/internal/handler/http/response"
)

type OperationLogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type operationLogHandlerImpl struct {
	operationLogService oplog.OperationLogService
}

func NewOperationLogHandler(operationLogService oplog.OperationLogService) OperationLogHandler {
	return &operationLogHandlerImpl{
		operationLogService: operationLogService,
	}
}

// List handles GET /operation-logs
func (h *operationLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := oplog.OperationLogFilter{
		Username:  optionalStringQuery(r, "username"),
		Operation: optionalStringQuery(r, "operation"),
		Method:    optionalStringQuery(r, "method"),
	}
	filter.Page, filter.Limit, filter.SortBy, filter.SortOrder = pageQuery(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.operationLogService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListOperationLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Logs, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages, result.Showing))
}
