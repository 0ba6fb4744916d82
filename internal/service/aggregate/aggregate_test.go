package aggregate

import (
	"testing"

	"github.com/staffsight/attendance-insights-go/internal/domain/event"
	"github.com/staffsight/attendance-insights-go/internal/domain/geofence"
	"github.com/staffsight/attendance-insights-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func eventWithStatus(userID string, status event.Status) event.AttendanceEvent {
	return event.AttendanceEvent{UserID: userID, Status: status}
}

func TestAttendancePercent_Empty(t *testing.T) {
	assert.Equal(t, 0.0, AttendancePercent(nil))
	assert.Equal(t, 0.0, AttendancePercent([]event.AttendanceEvent{}))
	assert.Equal(t, 0.0, AbsenteeismPercent(nil))
}

func TestAttendancePercent_Bounds(t *testing.T) {
	cases := []struct {
		name   string
		events []event.AttendanceEvent
		want   float64
	}{
		{"all present", []event.AttendanceEvent{
			eventWithStatus("u1", event.StatusOnTime),
			eventWithStatus("u2", event.StatusLate),
		}, 100},
		{"all absent", []event.AttendanceEvent{
			eventWithStatus("u1", event.StatusAbsent),
		}, 0},
		{"half absent", []event.AttendanceEvent{
			eventWithStatus("u1", event.StatusOnTime),
			eventWithStatus("u2", event.StatusAbsent),
		}, 50},
		{"late and out of bounds count as attended", []event.AttendanceEvent{
			eventWithStatus("u1", event.StatusLate),
			eventWithStatus("u2", event.StatusOutOfBounds),
			eventWithStatus("u3", event.StatusEarly),
			eventWithStatus("u4", event.StatusAbsent),
		}, 75},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AttendancePercent(c.events)
			assert.InDelta(t, c.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestAttendancePlusAbsenteeismIs100(t *testing.T) {
	events := []event.AttendanceEvent{
		eventWithStatus("u1", event.StatusOnTime),
		eventWithStatus("u2", event.StatusAbsent),
		eventWithStatus("u3", event.StatusAbsent),
	}
	sum := AttendancePercent(events) + AbsenteeismPercent(events)
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestClassify_Thresholds(t *testing.T) {
	assert.Equal(t, report.ClassExcellent, Classify(95))
	assert.Equal(t, report.ClassExcellent, Classify(100))
	assert.Equal(t, report.ClassAcceptable, Classify(94.9))
	assert.Equal(t, report.ClassAcceptable, Classify(90))
	assert.Equal(t, report.ClassCritical, Classify(89.9))
	assert.Equal(t, report.ClassCritical, Classify(0))
}

func TestResolveLocationID_FallbackChain(t *testing.T) {
	cases := []struct {
		name string
		e    event.AttendanceEvent
		want string
	}{
		{"geofence id wins", event.AttendanceEvent{
			GeofenceID: strPtr("gf-1"),
			FenceID:    strPtr("fence-1"),
			LocationID: strPtr("loc-1"),
			Geofence:   &event.GeofenceRef{ID: "nested-gf"},
			Location:   &event.LocationRef{ID: "nested-loc"},
		}, "gf-1"},
		{"fence id second", event.AttendanceEvent{
			FenceID:    strPtr("fence-1"),
			LocationID: strPtr("loc-1"),
		}, "fence-1"},
		{"location id third", event.AttendanceEvent{
			LocationID: strPtr("loc-1"),
			Geofence:   &event.GeofenceRef{ID: "nested-gf"},
		}, "loc-1"},
		{"nested geofence fourth", event.AttendanceEvent{
			Geofence: &event.GeofenceRef{ID: "nested-gf"},
			Location: &event.LocationRef{ID: "nested-loc"},
		}, "nested-gf"},
		{"nested location last", event.AttendanceEvent{
			Location: &event.LocationRef{ID: "nested-loc"},
		}, "nested-loc"},
		{"empty strings are skipped", event.AttendanceEvent{
			GeofenceID: strPtr(""),
			Location:   &event.LocationRef{ID: "nested-loc"},
		}, "nested-loc"},
		{"nothing resolves", event.AttendanceEvent{}, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ResolveLocationID(c.e))
		})
	}
}

func TestPerLocationBreakdown(t *testing.T) {
	events := []event.AttendanceEvent{
		{UserID: "u1", GeofenceID: strPtr("loc-a"), Status: event.StatusOnTime},
		{UserID: "u2", GeofenceID: strPtr("loc-a"), Status: event.StatusOnTime},
		{UserID: "u3", GeofenceID: strPtr("loc-a"), Status: event.StatusAbsent},
		{UserID: "u1", GeofenceID: strPtr("loc-b"), Status: event.StatusOnTime},
		{UserID: "u4", GeofenceID: strPtr("loc-b"), Status: event.StatusOnTime},
	}
	known := []geofence.Location{
		{ID: "loc-a", Name: "Head Office"},
		{ID: "loc-b", Name: "Warehouse"},
	}

	stats := PerLocationBreakdown(events, known)
	require.Len(t, stats, 2)

	a := stats[0]
	assert.Equal(t, "loc-a", a.LocationID)
	assert.Equal(t, "Head Office", a.Name)
	assert.InDelta(t, 66.7, a.AttendancePercent, 0.05)
	assert.Equal(t, report.ClassCritical, a.Classification)
	assert.Equal(t, 3, a.TotalEvents)
	assert.Equal(t, 3, a.DistinctUsers)
	assert.Equal(t, 2, a.OnTime)
	assert.Equal(t, 1, a.Absent)

	b := stats[1]
	assert.Equal(t, "loc-b", b.LocationID)
	assert.InDelta(t, 100.0, b.AttendancePercent, 1e-9)
	assert.Equal(t, report.ClassExcellent, b.Classification)
	assert.Equal(t, 2, b.DistinctUsers)
}

func TestPerLocationBreakdown_PlaceholderNames(t *testing.T) {
	events := []event.AttendanceEvent{
		{UserID: "u1", GeofenceID: strPtr("unknown-2"), Status: event.StatusOnTime},
		{UserID: "u2", GeofenceID: strPtr("known"), Status: event.StatusOnTime},
		{UserID: "u3", GeofenceID: strPtr("unknown-1"), Status: event.StatusOnTime},
	}
	known := []geofence.Location{{ID: "known", Name: "Head Office"}}

	stats := PerLocationBreakdown(events, known)
	require.Len(t, stats, 3)

	// Placeholders number in first-seen order, skipping registered names.
	assert.Equal(t, "Location 1", stats[0].Name)
	assert.Equal(t, "Head Office", stats[1].Name)
	assert.Equal(t, "Location 2", stats[2].Name)
}

func TestPerLocationBreakdown_EdgeCases(t *testing.T) {
	// Zero-event registered locations are omitted; events that resolve to
	// no location at all are excluded from the breakdown.
	events := []event.AttendanceEvent{
		{UserID: "u1", Status: event.StatusOnTime}, // no location fields
	}
	known := []geofence.Location{{ID: "idle", Name: "Idle Branch"}}

	stats := PerLocationBreakdown(events, known)
	assert.Empty(t, stats)

	assert.Empty(t, PerLocationBreakdown(nil, known))
}

func TestTrend(t *testing.T) {
	up := Trend(92.5, 90)
	assert.InDelta(t, 2.5, up.Delta, 1e-9)
	assert.Equal(t, report.TrendImproving, up.Direction)

	down := Trend(85, 90)
	assert.InDelta(t, -5.0, down.Delta, 1e-9)
	assert.Equal(t, report.TrendDeclining, down.Direction)

	flat := Trend(90, 90)
	assert.Equal(t, report.TrendFlat, flat.Direction)
}

func TestQuarterlyTrend(t *testing.T) {
	months := []string{"2025-06", "2025-07", "2025-08"}
	points := QuarterlyTrend(months, []float64{80, 85, 90})
	require.Len(t, points, 3)

	assert.Nil(t, points[0].Delta)
	assert.InDelta(t, 80, points[0].AttendancePercent, 1e-9)
	assert.Equal(t, "2025-06", points[0].Month)

	require.NotNil(t, points[1].Delta)
	assert.InDelta(t, 5, *points[1].Delta, 1e-9)
	require.NotNil(t, points[2].Delta)
	assert.InDelta(t, 5, *points[2].Delta, 1e-9)
}
