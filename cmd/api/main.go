package main

import (
	"fmt"
	"net/http"

	"github.com/staffsight/attendance-insights-go/internal/config"
	appHTTP "github.com/staffsight/attendance-insights-go/internal/handler/http"
	"github.com/staffsight/attendance-insights-go/internal/pkg/cache"
	"github.com/staffsight/attendance-insights-go/internal/pkg/cron"
	"github.com/staffsight/attendance-insights-go/internal/pkg/jwt"
	"github.com/staffsight/attendance-insights-go/internal/pkg/upstream"
	reportService "github.com/staffsight/attendance-insights-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	upstreamClient := upstream.NewClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.APIToken,
		cfg.Upstream.Timeout,
		upstream.WithPageSize(cfg.Upstream.PageSize),
	)

	reportCache := cache.New(cfg.Cache.TTL)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	reportSvc := reportService.NewReportService(upstreamClient, reportCache)

	scheduler := cron.NewScheduler()
	reportJobs := cron.NewReportJobs(reportSvc, reportCache, cfg.Cache.WarmOrganizations)
	reportJobs.RegisterJobs(scheduler, cfg.Cache.WarmInterval)
	scheduler.Start()
	defer scheduler.Stop()

	reportHandler := appHTTP.NewReportHandler(reportSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		reportHandler,
		attendanceHandler,
		cfg.App.FrontendURL,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
