package report

import (
	"context"
	"fmt"

	"github.com/staffsight/attendance-insights-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

// ExportMonthlyReport renders the month's overview as an .xlsx workbook:
// a summary block followed by one row per location.
func (s *ReportServiceImpl) ExportMonthlyReport(ctx context.Context, orgID, month string) ([]byte, error) {
	overview, err := s.GetOverview(ctx, orgID, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	summary := [][]any{
		{"Attendance Report", overview.Current.Month},
		{"Generated at", overview.GeneratedAt},
		{},
		{"Attendance %", overview.Current.AttendancePercent},
		{"Absenteeism %", overview.Current.AbsenteeismPercent},
		{"Classification", overview.Current.Classification},
		{"Total events", overview.Current.TotalEvents},
		{"Previous month %", overview.Previous.AttendancePercent},
		{"Trend", fmt.Sprintf("%+.1f (%s)", overview.Trend.Delta, overview.Trend.Direction)},
		{},
		{"Location", "Attendance %", "Classification", "Users", "Events", "On time", "Late", "Absent"},
	}

	row := 1
	for _, values := range summary {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
		row++
	}

	for _, loc := range overview.Locations {
		values := []any{
			loc.Name,
			loc.AttendancePercent,
			loc.Classification,
			loc.DistinctUsers,
			loc.TotalEvents,
			loc.OnTime,
			loc.Late,
			loc.Absent,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}
	return buf.Bytes(), nil
}
