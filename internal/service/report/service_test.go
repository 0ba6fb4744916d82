package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/staffsight/attendance-insights-go/internal/domain/event"
	"github.com/staffsight/attendance-insights-go/internal/domain/geofence"
	"github.com/staffsight/attendance-insights-go/internal/domain/report"
	"github.com/staffsight/attendance-insights-go/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// fakeUpstream serves canned events keyed by the filter's start date and
// counts fetches, so tests can observe caching behavior.
type fakeUpstream struct {
	mu           sync.Mutex
	eventsByDate map[string][]event.AttendanceEvent
	locations    []geofence.Location
	flagged      []event.AttendanceEvent
	fetchCalls   int
	mutations    []string
	failFetch    error
}

func (f *fakeUpstream) FetchAllEvents(ctx context.Context, orgID string, filter event.Filter) ([]event.AttendanceEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.failFetch != nil {
		return nil, f.failFetch
	}
	start := ""
	if filter.StartDate != nil {
		start = *filter.StartDate
	}
	return f.eventsByDate[start], nil
}

func (f *fakeUpstream) ListLocations(ctx context.Context, orgID string) ([]geofence.Location, error) {
	return f.locations, nil
}

func (f *fakeUpstream) ListFlaggedEvents(ctx context.Context, orgID string) ([]event.AttendanceEvent, error) {
	return f.flagged, nil
}

func (f *fakeUpstream) UpdateEventStatus(ctx context.Context, eventID, status string, note *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations = append(f.mutations, "status:"+eventID+":"+status)
	return nil
}

func (f *fakeUpstream) MarkAbsences(ctx context.Context, orgID, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations = append(f.mutations, "absences:"+date)
	return nil
}

func onTimeEvents(locID string, n int) []event.AttendanceEvent {
	events := make([]event.AttendanceEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, event.AttendanceEvent{
			UserID:     "user-" + string(rune('a'+i)),
			GeofenceID: strPtr(locID),
			Status:     event.StatusOnTime,
		})
	}
	return events
}

func newTestService(up *fakeUpstream) report.ReportService {
	return NewReportService(up, cache.New(time.Minute))
}

func TestGetOverview(t *testing.T) {
	current := append(onTimeEvents("loc-1", 9), event.AttendanceEvent{
		UserID: "user-z", GeofenceID: strPtr("loc-1"), Status: event.StatusAbsent,
	})
	previous := append(onTimeEvents("loc-1", 8),
		event.AttendanceEvent{UserID: "u1", GeofenceID: strPtr("loc-1"), Status: event.StatusAbsent},
		event.AttendanceEvent{UserID: "u2", GeofenceID: strPtr("loc-1"), Status: event.StatusAbsent},
	)

	up := &fakeUpstream{
		eventsByDate: map[string][]event.AttendanceEvent{
			"2025-08-01": current,
			"2025-07-01": previous,
		},
		locations: []geofence.Location{{ID: "loc-1", Name: "Head Office"}},
	}
	svc := newTestService(up)

	got, err := svc.GetOverview(context.Background(), "org-1", "2025-08")
	require.NoError(t, err)

	assert.Equal(t, "2025-08", got.Current.Month)
	assert.InDelta(t, 90.0, got.Current.AttendancePercent, 1e-9)
	assert.InDelta(t, 10.0, got.Current.AbsenteeismPercent, 1e-9)
	assert.Equal(t, report.ClassAcceptable, got.Current.Classification)

	assert.Equal(t, "2025-07", got.Previous.Month)
	assert.InDelta(t, 80.0, got.Previous.AttendancePercent, 1e-9)

	assert.InDelta(t, 10.0, got.Trend.Delta, 1e-9)
	assert.Equal(t, report.TrendImproving, got.Trend.Direction)

	require.Len(t, got.Locations, 1)
	assert.Equal(t, "Head Office", got.Locations[0].Name)
	assert.Equal(t, 10, got.Locations[0].TotalEvents)
}

func TestGetOverview_EmptyMonthIsZeros(t *testing.T) {
	up := &fakeUpstream{eventsByDate: map[string][]event.AttendanceEvent{}}
	svc := newTestService(up)

	got, err := svc.GetOverview(context.Background(), "org-1", "2025-08")
	require.NoError(t, err)

	assert.Equal(t, 0, got.Current.TotalEvents)
	assert.InDelta(t, 0.0, got.Current.AttendancePercent, 1e-9)
	assert.InDelta(t, 0.0, got.Current.AbsenteeismPercent, 1e-9)
	assert.Equal(t, report.ClassCritical, got.Current.Classification)
	assert.Empty(t, got.Locations)
}

func TestGetOverview_CachedSecondRead(t *testing.T) {
	up := &fakeUpstream{eventsByDate: map[string][]event.AttendanceEvent{}}
	svc := newTestService(up)

	_, err := svc.GetOverview(context.Background(), "org-1", "2025-08")
	require.NoError(t, err)
	first := up.fetchCalls

	_, err = svc.GetOverview(context.Background(), "org-1", "2025-08")
	require.NoError(t, err)
	assert.Equal(t, first, up.fetchCalls, "second read must come from cache")
}

func TestGetOverview_FetchErrorPropagates(t *testing.T) {
	up := &fakeUpstream{failFetch: errors.New("upstream down")}
	svc := newTestService(up)

	_, err := svc.GetOverview(context.Background(), "org-1", "2025-08")
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrReportGenerationFailed)
}

func TestGetOverview_Validation(t *testing.T) {
	svc := newTestService(&fakeUpstream{})

	_, err := svc.GetOverview(context.Background(), "", "2025-08")
	assert.ErrorIs(t, err, report.ErrOrganizationRequired)

	_, err = svc.GetOverview(context.Background(), "org-1", "August 2025")
	assert.ErrorIs(t, err, report.ErrInvalidMonth)
}

func TestGetQuarterlyTrend(t *testing.T) {
	makeMonth := func(onTime, absent int) []event.AttendanceEvent {
		events := onTimeEvents("loc-1", onTime)
		for i := 0; i < absent; i++ {
			events = append(events, event.AttendanceEvent{UserID: "x", Status: event.StatusAbsent})
		}
		return events
	}

	up := &fakeUpstream{
		eventsByDate: map[string][]event.AttendanceEvent{
			"2025-06-01": makeMonth(8, 2),  // 80%
			"2025-07-01": makeMonth(17, 3), // 85%
			"2025-08-01": makeMonth(9, 1),  // 90%
		},
	}
	svc := newTestService(up)

	got, err := svc.GetQuarterlyTrend(context.Background(), "org-1", "2025-08")
	require.NoError(t, err)
	require.Len(t, got.Months, 3)

	assert.Equal(t, "2025-06", got.Months[0].Month)
	assert.InDelta(t, 80, got.Months[0].AttendancePercent, 1e-9)
	assert.Nil(t, got.Months[0].Delta)

	assert.Equal(t, "2025-07", got.Months[1].Month)
	require.NotNil(t, got.Months[1].Delta)
	assert.InDelta(t, 5, *got.Months[1].Delta, 1e-9)

	assert.Equal(t, "2025-08", got.Months[2].Month)
	require.NotNil(t, got.Months[2].Delta)
	assert.InDelta(t, 5, *got.Months[2].Delta, 1e-9)
}

func TestUpdateEventStatus_InvalidatesCache(t *testing.T) {
	up := &fakeUpstream{eventsByDate: map[string][]event.AttendanceEvent{}}
	svc := newTestService(up)

	_, err := svc.GetOverview(context.Background(), "org-1", "2025-08")
	require.NoError(t, err)
	warm := up.fetchCalls

	err = svc.UpdateEventStatus(context.Background(), "org-1", report.UpdateStatusRequest{
		EventID: "evt-1",
		Status:  "late",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"status:evt-1:late"}, up.mutations)

	_, err = svc.GetOverview(context.Background(), "org-1", "2025-08")
	require.NoError(t, err)
	assert.Greater(t, up.fetchCalls, warm, "mutation must drop the cached overview")
}

func TestUpdateEventStatus_RejectsUnknownStatus(t *testing.T) {
	up := &fakeUpstream{}
	svc := newTestService(up)

	err := svc.UpdateEventStatus(context.Background(), "org-1", report.UpdateStatusRequest{
		EventID: "evt-1",
		Status:  "vanished",
	})
	require.Error(t, err)
	assert.Empty(t, up.mutations, "invalid request must not reach upstream")
}

func TestMarkAbsences(t *testing.T) {
	up := &fakeUpstream{eventsByDate: map[string][]event.AttendanceEvent{}}
	svc := newTestService(up)

	err := svc.MarkAbsences(context.Background(), "org-1", report.MarkAbsencesRequest{Date: "2025-08-29"})
	require.NoError(t, err)
	assert.Equal(t, []string{"absences:2025-08-29"}, up.mutations)

	err = svc.MarkAbsences(context.Background(), "org-1", report.MarkAbsencesRequest{Date: "29/08/2025"})
	require.Error(t, err)
}

func TestListFlaggedEvents(t *testing.T) {
	up := &fakeUpstream{
		flagged: []event.AttendanceEvent{
			{ID: "evt-1", Status: event.StatusLate},
			{ID: "evt-2", Status: event.StatusOutOfBounds},
		},
	}
	svc := newTestService(up)

	got, err := svc.ListFlaggedEvents(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Events, 2)
}

func TestExportMonthlyReport(t *testing.T) {
	up := &fakeUpstream{
		eventsByDate: map[string][]event.AttendanceEvent{
			"2025-08-01": onTimeEvents("loc-1", 5),
		},
		locations: []geofence.Location{{ID: "loc-1", Name: "Head Office"}},
	}
	svc := newTestService(up)

	data, err := svc.ExportMonthlyReport(context.Background(), "org-1", "2025-08")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// xlsx files are zip archives.
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}
