package ai

import "context"

// Completer sends one system+user prompt pair to a chat-completion model.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type AIService interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	AnalyzeTurnoverRisk(ctx context.Context, employeeID int64) (TurnoverRiskResponse, error)
	AnalyzeSalary(ctx context.Context, departmentID int64) (SalaryAnalysisResponse, error)
	GenerateReport(ctx context.Context, req GenerateReportRequest) (ReportResponse, error)

	// PurgeCache drops expired memo entries and returns how many were removed.
	PurgeCache(ctx context.Context) (int, error)
}
