package report

import "errors"

var (
	ErrUnsupportedExportType  = errors.New("unsupported export type")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
