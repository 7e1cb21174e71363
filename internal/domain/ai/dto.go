package ai

import (
	"strings"

	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ChatRequest struct {
	Question string `json:"question"`
}

func (r *ChatRequest) Validate() error {
	r.Question = strings.TrimSpace(r.Question)
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Question) {
		errs = append(errs, validator.ValidationError{
			Field:   "question",
			Message: "question is required",
		})
	} else if len([]rune(r.Question)) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "question",
			Message: "question must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChatResponse struct {
	Answer string `json:"answer"`
	Source Source `json:"source"`
}

type TurnoverRiskResponse struct {
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Month        string    `json:"month"`
	LateCount    int       `json:"late_count"`
	AbsenceCount int       `json:"absence_count"`
	RiskScore    int       `json:"risk_score"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Advice       string    `json:"advice"`
	Source       Source    `json:"source"`
}

type SalaryAnalysisResponse struct {
	DepartmentID  int64            `json:"department_id"`
	EmployeeCount int              `json:"employee_count"`
	AvgSalary     *decimal.Decimal `json:"avg_salary,omitempty"`
	Distribution  string           `json:"distribution,omitempty"`
	Suggestions   []string         `json:"suggestions,omitempty"`
	Message       string           `json:"message,omitempty"`
	Source        Source           `json:"source,omitempty"`
}

type GenerateReportRequest struct {
	Type  string `json:"type"`
	Month string `json:"month,omitempty"` // YYYY-MM, salary and attendance reports
}

func (r *GenerateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	}

	if !validator.IsEmpty(r.Month) {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DepartmentHeadcount struct {
	DepartmentID   *int64 `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name"`
	Count          int64  `json:"count"`
}

type ReportResponse struct {
	ReportType string `json:"report_type"`
	Month      string `json:"month,omitempty"`
	Message    string `json:"message,omitempty"`

	// employee
	TotalEmployees    *int64                `json:"total_employees,omitempty"`
	ActiveEmployees   *int64                `json:"active_employees,omitempty"`
	ResignedEmployees *int64                `json:"resigned_employees,omitempty"`
	Departments       []DepartmentHeadcount `json:"departments,omitempty"`

	// salary
	SalaryCount *int64           `json:"salary_count,omitempty"`
	PaidCount   *int64           `json:"paid_count,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
	AvgAmount   *decimal.Decimal `json:"avg_amount,omitempty"`

	// attendance
	NormalCount     *int `json:"normal_count,omitempty"`
	LateCount       *int `json:"late_count,omitempty"`
	EarlyLeaveCount *int `json:"early_leave_count,omitempty"`
	AbsenceCount    *int `json:"absence_count,omitempty"`

	Summary       string `json:"summary,omitempty"`
	SummarySource Source `json:"summary_source,omitempty"`
}
