package response

import (
	"errors"
	"net/http"

	"github.com/staffsight/attendance-insights-go/internal/domain/event"
	"github.com/staffsight/attendance-insights-go/internal/domain/report"
	"github.com/staffsight/attendance-insights-go/internal/pkg/upstream"
	"github.com/staffsight/attendance-insights-go/internal/pkg/validator"
)

// HandleError maps domain and upstream errors to HTTP responses. The
// dashboard contract is that a failed report load surfaces as an error
// payload the view can render, never a crash.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Non-2xx upstream responses keep their meaning where it helps the
	// caller; everything else is a gateway failure.
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusNotFound:
			NotFound(w, apiErr.Message)
		case http.StatusUnauthorized, http.StatusForbidden:
			Forbidden(w, "Upstream rejected the service credentials")
		default:
			BadGateway(w, apiErr.Message)
		}
		return
	}

	switch {
	case errors.Is(err, report.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrOrganizationRequired):
		Forbidden(w, "No organization in token")
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, event.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrReportGenerationFailed):
		BadGateway(w, "Report data could not be fetched")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
