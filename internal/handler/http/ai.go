package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/ai"
	"github.com/cmlabs-hris/hrm-backend-go/internal/handler/http/response"
)

type AIHandler interface {
	Chat(w http.ResponseWriter, r *http.Request)
	AnalyzeTurnover(w http.ResponseWriter, r *http.Request)
	AnalyzeSalary(w http.ResponseWriter, r *http.Request)
	GenerateReport(w http.ResponseWriter, r *http.Request)
}

type aiHandlerImpl struct {
	aiService ai.AIService
}

func NewAIHandler(aiService ai.AIService) AIHandler {
	return &aiHandlerImpl{
		aiService: aiService,
	}
}

// Chat handles POST /ai/chat
func (h *aiHandlerImpl) Chat(w http.ResponseWriter, r *http.Request) {
	var req ai.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Chat decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.aiService.Chat(r.Context(), req)
	if err != nil {
		slog.Error("Chat service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AnalyzeTurnover handles POST /ai/analyze/turnover?employee_id=
func (h *aiHandlerImpl) AnalyzeTurnover(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseIDQuery(r, "employee_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.aiService.AnalyzeTurnoverRisk(r.Context(), employeeID)
	if err != nil {
		slog.Error("AnalyzeTurnover service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AnalyzeSalary handles POST /ai/analyze/salary?department_id=
func (h *aiHandlerImpl) AnalyzeSalary(w http.ResponseWriter, r *http.Request) {
	departmentID, err := parseIDQuery(r, "department_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.aiService.AnalyzeSalary(r.Context(), departmentID)
	if err != nil {
		slog.Error("AnalyzeSalary service error", "error", err, "department_id", departmentID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateReport handles POST /ai/report/generate?type=&month=
func (h *aiHandlerImpl) GenerateReport(w http.ResponseWriter, r *http.Request) {
	req := ai.GenerateReportRequest{
		Type:  r.URL.Query().Get("type"),
		Month: r.URL.Query().Get("month"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.aiService.GenerateReport(r.Context(), req)
	if err != nil {
		slog.Error("GenerateReport service error", "error", err, "type", req.Type)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
