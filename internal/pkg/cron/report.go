package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffsight/attendance-insights-go/internal/domain/report"
	"github.com/staffsight/attendance-insights-go/internal/pkg/cache"
)

// ReportJobs holds the background maintenance around the report cache: an
// expired-entry sweep and an optional warm pass that precomputes the
// current-month overview for configured organizations, so the first
// dashboard load after an invalidation doesn't pay the fan-out latency.
type ReportJobs struct {
	reportSvc report.ReportService
	cache     *cache.Cache
	warmOrgs  []string
}

func NewReportJobs(reportSvc report.ReportService, c *cache.Cache, warmOrgs []string) *ReportJobs {
	return &ReportJobs{
		reportSvc: reportSvc,
		cache:     c,
		warmOrgs:  warmOrgs,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler, warmInterval time.Duration) {
	scheduler.AddJob("sweep_report_cache", time.Hour, j.SweepCache)
	if len(j.warmOrgs) > 0 {
		scheduler.AddJob("warm_current_month_overview", warmInterval, j.WarmOverviews)
	}
}

// SweepCache evicts expired cache entries.
func (j *ReportJobs) SweepCache(ctx context.Context) error {
	removed := j.cache.Sweep()
	if removed > 0 {
		slog.Info("Report cache swept", "removed", removed)
	}
	return nil
}

// WarmOverviews recomputes the current-month overview for each configured
// organization. One failing organization doesn't stop the others.
func (j *ReportJobs) WarmOverviews(ctx context.Context) error {
	month := time.Now().Format("2006-01")

	var lastErr error
	for _, orgID := range j.warmOrgs {
		if _, err := j.reportSvc.GetOverview(ctx, orgID, month); err != nil {
			slog.Error("Overview warm failed", "organization_id", orgID, "month", month, "error", err)
			lastErr = fmt.Errorf("warm overview for %s: %w", orgID, err)
		}
	}
	return lastErr
}
