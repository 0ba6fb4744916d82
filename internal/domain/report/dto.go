package report

import (
	"github.com/staffsight/attendance-insights-go/internal/domain/event"
	"github.com/staffsight/attendance-insights-go/internal/pkg/validator"
)

// Classification buckets for an attendance percentage.
const (
	ClassExcellent  = "excellent"  // >= 95
	ClassAcceptable = "acceptable" // >= 90, < 95
	ClassCritical   = "critical"   // < 90
)

// Trend directions.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendFlat      = "flat"
)

// ========================================
// REQUESTS
// ========================================

// MonthRequest selects a reporting period. Month is YYYY-MM; empty means
// the current month.
type MonthRequest struct {
	Month string `json:"month"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, valid := validator.IsValidMonth(r.Month); !valid {
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

// UpdateStatusRequest corrects the status of a single event upstream.
type UpdateStatusRequest struct {
	EventID string  `json:"-"`
	Status  string  `json:"status"`
	Note    *string `json:"note,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "event id is required",
		})
	}

	if !event.Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: on_time, late, early, absent, out_of_bounds",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MarkAbsencesRequest asks the upstream system to create absence records
// for everyone without a clock-in on the given date.
type MarkAbsencesRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *MarkAbsencesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

// LocationStats is the per-location rollup. Recomputed on every
// aggregation pass, never persisted.
type LocationStats struct {
	LocationID        string  `json:"location_id"`
	Name              string  `json:"name"`
	AttendancePercent float64 `json:"attendance_percent"`
	Classification    string  `json:"classification"`
	DistinctUsers     int     `json:"distinct_users"`
	TotalEvents       int     `json:"total_events"`
	OnTime            int     `json:"on_time"`
	Late              int     `json:"late"`
	Absent            int     `json:"absent"`
}

// MonthSummary is the organization-wide rollup for one month.
type MonthSummary struct {
	Month              string  `json:"month"` // YYYY-MM
	TotalEvents        int     `json:"total_events"`
	AttendancePercent  float64 `json:"attendance_percent"`
	AbsenteeismPercent float64 `json:"absenteeism_percent"`
	Classification     string  `json:"classification"`
}

// TrendDelta is the month-over-month movement, display-only.
type TrendDelta struct {
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // improving | declining | flat
}

// OverviewResponse is the main dashboard payload.
type OverviewResponse struct {
	Current     MonthSummary    `json:"current"`
	Previous    MonthSummary    `json:"previous"`
	Trend       TrendDelta      `json:"trend"`
	Locations   []LocationStats `json:"locations"`
	GeneratedAt string          `json:"generated_at"`
}

// MonthTrendPoint is one month in a quarterly trend. Delta is nil for the
// oldest month.
type MonthTrendPoint struct {
	Month             string   `json:"month"`
	AttendancePercent float64  `json:"attendance_percent"`
	Delta             *float64 `json:"delta,omitempty"`
}

type QuarterlyTrendResponse struct {
	Months      []MonthTrendPoint `json:"months"`
	GeneratedAt string            `json:"generated_at"`
}

type LocationBreakdownResponse struct {
	Month       string          `json:"month"`
	Locations   []LocationStats `json:"locations"`
	GeneratedAt string          `json:"generated_at"`
}

// FlaggedEventsResponse wraps the upstream pre-flagged review queue.
type FlaggedEventsResponse struct {
	Events []event.AttendanceEvent `json:"events"`
	Total  int                     `json:"total"`
}
