package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hrm-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
)

type SalaryHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	CalculateAll(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
	}
}

// Calculate handles POST /salary/calculate
func (h *salaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req salary.CalculateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CalculateSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.Calculate(r.Context(), req)
	if err != nil {
		slog.Error("CalculateSalary service error", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary calculated successfully", result)
}

// CalculateAll handles POST /salary/calculate-all
func (h *salaryHandlerImpl) CalculateAll(w http.ResponseWriter, r *http.Request) {
	var req salary.CalculateAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CalculateAllSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.CalculateAll(r.Context(), req)
	if err != nil {
		slog.Error("CalculateAllSalary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Batch salary calculation finished",
		"month", result.Month, "generated", result.Generated, "skipped", result.Skipped, "failed", result.Failed)
	response.SuccessWithMessage(w, "Salary calculation finished", result)
}

// MarkPaid handles PUT /salary/{id}/pay
func (h *salaryHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.MarkPaid(r.Context(), id)
	if err != nil {
		slog.Error("MarkSalaryPaid service error", "error", err, "salary_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary marked as paid", result)
}

// List handles GET /salary/records
func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := salary.SalaryFilter{
		EmployeeID: optionalIDQuery(r, "employee_id"),
		Month:      optionalStringQuery(r, "month"),
		Status:     optionalStringQuery(r, "status"),
	}
	filter.Page, filter.Limit, filter.SortBy, filter.SortOrder = pageQuery(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListSalary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Salaries, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages, result.Showing))
}

// GetByEmployee handles GET /salary/employee/{employeeID}?month=
func (h *salaryHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseIDParam(r, "employeeID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month := r.URL.Query().Get("month")
	if _, ok := validator.IsValidMonth(month); !ok {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}})
		return
	}

	result, err := h.salaryService.GetByEmployeeAndMonth(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
