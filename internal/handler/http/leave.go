package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrm-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/jwt"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Apply handles POST /leave/apply
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		slog.Error("ApplyLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", result)
}

// Approve handles PUT /leave/{id}/approve
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ApproveLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	req.Approver = claims.Username

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Approve(r.Context(), req)
	if err != nil {
		slog.Error("ApproveLeave service error", "error", err, "leave_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application "+result.Status, result)
}

// List handles GET /leave/records
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveFilter{
		EmployeeID: optionalIDQuery(r, "employee_id"),
		Status:     optionalStringQuery(r, "status"),
		LeaveType:  optionalStringQuery(r, "leave_type"),
	}
	filter.Page, filter.Limit, filter.SortBy, filter.SortOrder = pageQuery(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Leaves, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages, result.Showing))
}

// ListByEmployee handles GET /leave/employee/{employeeID}
func (h *leaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseIDParam(r, "employeeID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
