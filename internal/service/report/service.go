package report

import (
	"context"
	"fmt"
	"time"

	"github.com/staffsight/attendance-insights-go/internal/domain/event"
	"github.com/staffsight/attendance-insights-go/internal/domain/geofence"
	"github.com/staffsight/attendance-insights-go/internal/domain/report"
	"github.com/staffsight/attendance-insights-go/internal/pkg/cache"
	"github.com/staffsight/attendance-insights-go/internal/service/aggregate"
	"golang.org/x/sync/errgroup"
)

// Upstream is the slice of the HRIS API client this service consumes.
type Upstream interface {
	FetchAllEvents(ctx context.Context, orgID string, filter event.Filter) ([]event.AttendanceEvent, error)
	ListLocations(ctx context.Context, orgID string) ([]geofence.Location, error)
	ListFlaggedEvents(ctx context.Context, orgID string) ([]event.AttendanceEvent, error)
	UpdateEventStatus(ctx context.Context, eventID, status string, note *string) error
	MarkAbsences(ctx context.Context, orgID, date string) error
}

type ReportServiceImpl struct {
	upstream Upstream
	cache    *cache.Cache
}

func NewReportService(up Upstream, c *cache.Cache) report.ReportService {
	return &ReportServiceImpl{
		upstream: up,
		cache:    c,
	}
}

// resolveMonth parses YYYY-MM, defaulting to the current month.
func resolveMonth(month string) (time.Time, error) {
	if month == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, report.ErrInvalidMonth
	}
	return parsed, nil
}

// monthFilter builds the event filter covering one calendar month.
func monthFilter(month time.Time) event.Filter {
	start := month.Format("2006-01-02")
	end := month.AddDate(0, 1, -1).Format("2006-01-02")
	return event.Filter{StartDate: &start, EndDate: &end}
}

// cachePrefix groups every cached report of one organization so a single
// prefix invalidation drops them all.
func cachePrefix(orgID string) string {
	return cache.Key("report", orgID)
}

func (s *ReportServiceImpl) monthSummary(month time.Time, events []event.AttendanceEvent) report.MonthSummary {
	percent := aggregate.AttendancePercent(events)
	return report.MonthSummary{
		Month:              month.Format("2006-01"),
		TotalEvents:        len(events),
		AttendancePercent:  percent,
		AbsenteeismPercent: aggregate.AbsenteeismPercent(events),
		Classification:     aggregate.Classify(percent),
	}
}

// GetOverview builds the combined dashboard payload. The three upstream
// reads (current month, previous month, location registry) are
// independent, so they run in parallel; this is a throughput
// optimization only.
func (s *ReportServiceImpl) GetOverview(ctx context.Context, orgID, month string) (*report.OverviewResponse, error) {
	if orgID == "" {
		return nil, report.ErrOrganizationRequired
	}
	current, err := resolveMonth(month)
	if err != nil {
		return nil, err
	}
	previous := current.AddDate(0, -1, 0)

	key := cache.Key("report", orgID, "overview", current.Format("2006-01"))
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*report.OverviewResponse), nil
	}

	var (
		currentEvents  []event.AttendanceEvent
		previousEvents []event.AttendanceEvent
		locations      []geofence.Location
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		currentEvents, err = s.upstream.FetchAllEvents(gCtx, orgID, monthFilter(current))
		return err
	})

	g.Go(func() error {
		var err error
		previousEvents, err = s.upstream.FetchAllEvents(gCtx, orgID, monthFilter(previous))
		return err
	})

	g.Go(func() error {
		var err error
		locations, err = s.upstream.ListLocations(gCtx, orgID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	currentSummary := s.monthSummary(current, currentEvents)
	previousSummary := s.monthSummary(previous, previousEvents)

	resp := &report.OverviewResponse{
		Current:     currentSummary,
		Previous:    previousSummary,
		Trend:       aggregate.Trend(currentSummary.AttendancePercent, previousSummary.AttendancePercent),
		Locations:   aggregate.PerLocationBreakdown(currentEvents, locations),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	s.cache.Set(key, resp)
	return resp, nil
}

// GetQuarterlyTrend fetches the three months ending at endMonth in
// parallel and pairs them with month-over-month deltas, oldest first.
func (s *ReportServiceImpl) GetQuarterlyTrend(ctx context.Context, orgID, endMonth string) (*report.QuarterlyTrendResponse, error) {
	if orgID == "" {
		return nil, report.ErrOrganizationRequired
	}
	end, err := resolveMonth(endMonth)
	if err != nil {
		return nil, err
	}

	key := cache.Key("report", orgID, "quarterly", end.Format("2006-01"))
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*report.QuarterlyTrendResponse), nil
	}

	months := []time.Time{end.AddDate(0, -2, 0), end.AddDate(0, -1, 0), end}
	percents := make([]float64, len(months))

	g, gCtx := errgroup.WithContext(ctx)
	for i, m := range months {
		i, m := i, m
		g.Go(func() error {
			events, err := s.upstream.FetchAllEvents(gCtx, orgID, monthFilter(m))
			if err != nil {
				return err
			}
			percents[i] = aggregate.AttendancePercent(events)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	labels := make([]string, len(months))
	for i, m := range months {
		labels[i] = m.Format("2006-01")
	}

	resp := &report.QuarterlyTrendResponse{
		Months:      aggregate.QuarterlyTrend(labels, percents),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	s.cache.Set(key, resp)
	return resp, nil
}

// GetLocationBreakdown returns just the per-location rollups for a month.
func (s *ReportServiceImpl) GetLocationBreakdown(ctx context.Context, orgID, month string) (*report.LocationBreakdownResponse, error) {
	if orgID == "" {
		return nil, report.ErrOrganizationRequired
	}
	m, err := resolveMonth(month)
	if err != nil {
		return nil, err
	}

	key := cache.Key("report", orgID, "locations", m.Format("2006-01"))
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*report.LocationBreakdownResponse), nil
	}

	var (
		events    []event.AttendanceEvent
		locations []geofence.Location
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.upstream.FetchAllEvents(gCtx, orgID, monthFilter(m))
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = s.upstream.ListLocations(gCtx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	resp := &report.LocationBreakdownResponse{
		Month:       m.Format("2006-01"),
		Locations:   aggregate.PerLocationBreakdown(events, locations),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	s.cache.Set(key, resp)
	return resp, nil
}

// ListEvents returns every event matching the filter across all pages.
// Not cached: listings are used for drill-down views where staleness is
// more confusing than latency.
func (s *ReportServiceImpl) ListEvents(ctx context.Context, orgID string, filter event.Filter) ([]event.AttendanceEvent, error) {
	if orgID == "" {
		return nil, report.ErrOrganizationRequired
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.upstream.FetchAllEvents(ctx, orgID, filter)
}

// ListFlaggedEvents returns the upstream review queue.
func (s *ReportServiceImpl) ListFlaggedEvents(ctx context.Context, orgID string) (*report.FlaggedEventsResponse, error) {
	if orgID == "" {
		return nil, report.ErrOrganizationRequired
	}

	events, err := s.upstream.ListFlaggedEvents(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return &report.FlaggedEventsResponse{
		Events: events,
		Total:  len(events),
	}, nil
}

// UpdateEventStatus proxies the admin correction upstream, then drops the
// organization's cached reports so the next read recomputes.
func (s *ReportServiceImpl) UpdateEventStatus(ctx context.Context, orgID string, req report.UpdateStatusRequest) error {
	if orgID == "" {
		return report.ErrOrganizationRequired
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.upstream.UpdateEventStatus(ctx, req.EventID, req.Status, req.Note); err != nil {
		return err
	}

	s.cache.InvalidatePrefix(cachePrefix(orgID))
	return nil
}

// MarkAbsences proxies the bulk absence marking upstream, then drops the
// organization's cached reports.
func (s *ReportServiceImpl) MarkAbsences(ctx context.Context, orgID string, req report.MarkAbsencesRequest) error {
	if orgID == "" {
		return report.ErrOrganizationRequired
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.upstream.MarkAbsences(ctx, orgID, req.Date); err != nil {
		return err
	}

	s.cache.InvalidatePrefix(cachePrefix(orgID))
	return nil
}
