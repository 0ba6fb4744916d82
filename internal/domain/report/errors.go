package report

import "errors"

var (
	ErrInvalidMonth           = errors.New("month must be in YYYY-MM format")
	ErrOrganizationRequired   = errors.New("organization id is required")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
