package http

import (
	"fmt"
	"net/http"

	"github.com/staffsight/attendance-insights-go/internal/domain/report"
	"github.com/staffsight/attendance-insights-go/internal/handler/http/middleware"
	"github.com/staffsight/attendance-insights-go/internal/handler/http/response"
)

type ReportHandler interface {
	// GetOverview returns the combined dashboard payload for a month
	GetOverview(w http.ResponseWriter, r *http.Request)
	// GetQuarterlyTrend returns three months with month-over-month deltas
	GetQuarterlyTrend(w http.ResponseWriter, r *http.Request)
	// GetLocationBreakdown returns the per-location rollups
	GetLocationBreakdown(w http.ResponseWriter, r *http.Request)
	// ExportMonthly streams the month's report as an .xlsx attachment
	ExportMonthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// monthRequest validates the month query parameter and resolves the
// caller's organization. Failures are written directly; the bool reports
// whether the handler should continue.
func monthRequest(w http.ResponseWriter, r *http.Request) (orgID, month string, ok bool) {
	req := report.MonthRequest{Month: r.URL.Query().Get("month")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return "", "", false
	}

	orgID, found := middleware.OrganizationID(r)
	if !found {
		response.HandleError(w, report.ErrOrganizationRequired)
		return "", "", false
	}
	return orgID, req.Month, true
}

// GetOverview handles GET /reports/overview
func (h *reportHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	orgID, month, ok := monthRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GetOverview(r.Context(), orgID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetQuarterlyTrend handles GET /reports/quarterly
func (h *reportHandlerImpl) GetQuarterlyTrend(w http.ResponseWriter, r *http.Request) {
	orgID, month, ok := monthRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GetQuarterlyTrend(r.Context(), orgID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLocationBreakdown handles GET /reports/locations
func (h *reportHandlerImpl) GetLocationBreakdown(w http.ResponseWriter, r *http.Request) {
	orgID, month, ok := monthRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GetLocationBreakdown(r.Context(), orgID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthly handles GET /reports/export
func (h *reportHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	orgID, month, ok := monthRequest(w, r)
	if !ok {
		return
	}

	data, err := h.reportService.ExportMonthlyReport(r.Context(), orgID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := "attendance-report"
	if month != "" {
		filename += "-" + month
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
