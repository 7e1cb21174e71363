package report

import "context"

// ReportService renders workbook exports.
type ReportService interface {
	Export(ctx context.Context, req ExportRequest) (ExportFile, error)
}
