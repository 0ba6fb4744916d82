package aggregate

import (
	"fmt"

	"github.com/staffsight/attendance-insights-go/internal/domain/event"
	"github.com/staffsight/attendance-insights-go/internal/domain/geofence"
	"github.com/staffsight/attendance-insights-go/internal/domain/report"
)

// Classification thresholds (inclusive lower bounds).
const (
	excellentThreshold  = 95.0
	acceptableThreshold = 90.0
)

// AttendancePercent returns 100 × count(status ≠ absent) / count(total),
// or 0 for an empty sequence. Always within [0, 100].
func AttendancePercent(events []event.AttendanceEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	present := 0
	for _, e := range events {
		if !e.IsAbsence() {
			present++
		}
	}
	return float64(present) / float64(len(events)) * 100
}

// AbsenteeismPercent is the complement of AttendancePercent, except for an
// empty sequence where both are 0.
func AbsenteeismPercent(events []event.AttendanceEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	return 100 - AttendancePercent(events)
}

// Classify buckets an attendance percentage: ≥95 excellent, ≥90
// acceptable, below that critical.
func Classify(percent float64) string {
	switch {
	case percent >= excellentThreshold:
		return report.ClassExcellent
	case percent >= acceptableThreshold:
		return report.ClassAcceptable
	default:
		return report.ClassCritical
	}
}

// locationAccessors is the resolution order for an event's location. The
// upstream backend has produced records with the id in any of these five
// fields over its lifetime, so the chain is part of the contract.
var locationAccessors = []func(event.AttendanceEvent) string{
	func(e event.AttendanceEvent) string {
		if e.GeofenceID != nil {
			return *e.GeofenceID
		}
		return ""
	},
	func(e event.AttendanceEvent) string {
		if e.FenceID != nil {
			return *e.FenceID
		}
		return ""
	},
	func(e event.AttendanceEvent) string {
		if e.LocationID != nil {
			return *e.LocationID
		}
		return ""
	},
	func(e event.AttendanceEvent) string {
		if e.Geofence != nil {
			return e.Geofence.ID
		}
		return ""
	},
	func(e event.AttendanceEvent) string {
		if e.Location != nil {
			return e.Location.ID
		}
		return ""
	},
}

// ResolveLocationID walks the accessor chain and returns the first
// non-empty id, or "" when the event carries no location at all.
func ResolveLocationID(e event.AttendanceEvent) string {
	for _, accessor := range locationAccessors {
		if id := accessor(e); id != "" {
			return id
		}
	}
	return ""
}

// PerLocationBreakdown groups events by resolved location id and computes
// a rollup per group. Locations missing from the registry get placeholder
// names ("Location 1", "Location 2", …) in first-seen order. Registered
// locations with no events are omitted, as are events whose location
// cannot be resolved.
func PerLocationBreakdown(events []event.AttendanceEvent, known []geofence.Location) []report.LocationStats {
	names := make(map[string]string, len(known))
	for _, loc := range known {
		names[loc.ID] = loc.Name
	}

	groups := make(map[string][]event.AttendanceEvent)
	var order []string
	for _, e := range events {
		id := ResolveLocationID(e)
		if id == "" {
			continue
		}
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], e)
	}

	stats := make([]report.LocationStats, 0, len(order))
	placeholders := 0
	for _, id := range order {
		group := groups[id]

		name, registered := names[id]
		if !registered {
			placeholders++
			name = fmt.Sprintf("Location %d", placeholders)
		}

		users := make(map[string]struct{}, len(group))
		onTime, late, absent := 0, 0, 0
		for _, e := range group {
			users[e.UserID] = struct{}{}
			switch e.Status {
			case event.StatusOnTime:
				onTime++
			case event.StatusLate:
				late++
			case event.StatusAbsent:
				absent++
			}
		}

		percent := AttendancePercent(group)
		stats = append(stats, report.LocationStats{
			LocationID:        id,
			Name:              name,
			AttendancePercent: percent,
			Classification:    Classify(percent),
			DistinctUsers:     len(users),
			TotalEvents:       len(group),
			OnTime:            onTime,
			Late:              late,
			Absent:            absent,
		})
	}

	return stats
}

// Trend is the plain difference between two percentages. The direction is
// display-only; no statistical significance is implied.
func Trend(current, previous float64) report.TrendDelta {
	delta := current - previous
	direction := report.TrendFlat
	switch {
	case delta > 0:
		direction = report.TrendImproving
	case delta < 0:
		direction = report.TrendDeclining
	}
	return report.TrendDelta{Delta: delta, Direction: direction}
}

// QuarterlyTrend pairs an oldest-first sequence of monthly percentages
// with month-over-month deltas. The first entry has no delta.
func QuarterlyTrend(months []string, percents []float64) []report.MonthTrendPoint {
	points := make([]report.MonthTrendPoint, 0, len(percents))
	for i, p := range percents {
		point := report.MonthTrendPoint{AttendancePercent: p}
		if i < len(months) {
			point.Month = months[i]
		}
		if i > 0 {
			delta := p - percents[i-1]
			point.Delta = &delta
		}
		points = append(points, point)
	}
	return points
}
