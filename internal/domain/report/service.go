package report

import (
	"context"

	"github.com/staffsight/attendance-insights-go/internal/domain/event"
)

// ReportService defines the aggregation and reporting operations. The
// organization id is always an explicit parameter; handlers resolve it
// from the request token at the boundary so the service stays free of
// ambient session state.
type ReportService interface {
	// GetOverview returns the combined dashboard payload for a month:
	// organization-wide percentages, month-over-month trend and the
	// per-location breakdown.
	GetOverview(ctx context.Context, orgID, month string) (*OverviewResponse, error)

	// GetQuarterlyTrend returns the three months ending at endMonth,
	// oldest first, with month-over-month deltas.
	GetQuarterlyTrend(ctx context.Context, orgID, endMonth string) (*QuarterlyTrendResponse, error)

	// GetLocationBreakdown returns only the per-location rollups.
	GetLocationBreakdown(ctx context.Context, orgID, month string) (*LocationBreakdownResponse, error)

	// ListEvents returns every event matching the filter, fetched across
	// all upstream pages.
	ListEvents(ctx context.Context, orgID string, filter event.Filter) ([]event.AttendanceEvent, error)

	// ListFlaggedEvents returns the upstream review queue.
	ListFlaggedEvents(ctx context.Context, orgID string) (*FlaggedEventsResponse, error)

	// UpdateEventStatus proxies an admin status correction upstream and
	// drops every cached report for the organization.
	UpdateEventStatus(ctx context.Context, orgID string, req UpdateStatusRequest) error

	// MarkAbsences proxies the bulk absence marking upstream and drops
	// every cached report for the organization.
	MarkAbsences(ctx context.Context, orgID string, req MarkAbsencesRequest) error

	// ExportMonthlyReport renders the month's overview as an .xlsx
	// workbook and returns the encoded bytes.
	ExportMonthlyReport(ctx context.Context, orgID, month string) ([]byte, error)
}
