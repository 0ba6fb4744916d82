package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffsight/attendance-insights-go/internal/domain/event"
	"github.com/staffsight/attendance-insights-go/internal/domain/report"
	"github.com/staffsight/attendance-insights-go/internal/handler/http/middleware"
	"github.com/staffsight/attendance-insights-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	// ListEvents returns every event matching the filter, all pages merged
	ListEvents(w http.ResponseWriter, r *http.Request)
	// ListFlagged returns the upstream review queue
	ListFlagged(w http.ResponseWriter, r *http.Request)
	// UpdateStatus proxies an admin status correction upstream
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	// MarkAbsences proxies bulk absence marking upstream
	MarkAbsences(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	reportService report.ReportService
}

func NewAttendanceHandler(reportService report.ReportService) AttendanceHandler {
	return &attendanceHandlerImpl{reportService: reportService}
}

// ListEvents handles GET /attendance/events
func (h *attendanceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	orgID, found := middleware.OrganizationID(r)
	if !found {
		response.HandleError(w, report.ErrOrganizationRequired)
		return
	}

	filter := event.FilterFromQuery(r.URL.Query())
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	events, err := h.reportService.ListEvents(r.Context(), orgID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

// ListFlagged handles GET /attendance/flagged
func (h *attendanceHandlerImpl) ListFlagged(w http.ResponseWriter, r *http.Request) {
	orgID, found := middleware.OrganizationID(r)
	if !found {
		response.HandleError(w, report.ErrOrganizationRequired)
		return
	}

	result, err := h.reportService.ListFlaggedEvents(r.Context(), orgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateStatus handles POST /attendance/{id}/status
func (h *attendanceHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orgID, found := middleware.OrganizationID(r)
	if !found {
		response.HandleError(w, report.ErrOrganizationRequired)
		return
	}

	var req report.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EventID = chi.URLParam(r, "id")

	if err := h.reportService.UpdateEventStatus(r.Context(), orgID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance status updated", nil)
}

// MarkAbsences handles POST /attendance/mark-absences
func (h *attendanceHandlerImpl) MarkAbsences(w http.ResponseWriter, r *http.Request) {
	orgID, found := middleware.OrganizationID(r)
	if !found {
		response.HandleError(w, report.ErrOrganizationRequired)
		return
	}

	var req report.MarkAbsencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.reportService.MarkAbsences(r.Context(), orgID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absences marked", nil)
}
