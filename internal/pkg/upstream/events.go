package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/staffsight/attendance-insights-go/internal/domain/event"
	"github.com/staffsight/attendance-insights-go/internal/domain/geofence"
	"github.com/staffsight/attendance-insights-go/internal/pkg/metrics"
)

// ListEvents fetches a single page of attendance events.
func (c *Client) ListEvents(ctx context.Context, orgID string, filter event.Filter, page, pageSize int) ([]event.AttendanceEvent, *Pagination, error) {
	q := filter.QueryValues()
	q.Set("organization_id", orgID)
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	env, err := c.do(ctx, http.MethodGet, "/attendance/events", q, nil)
	if err != nil {
		return nil, nil, err
	}

	metrics.PagesFetched.Inc()
	return decodeItems[event.AttendanceEvent](env.Data), env.Pagination, nil
}

// FetchAllEvents retrieves the complete set of events matching the filter
// by walking pages in order until the window is exhausted.
//
// Termination: when the envelope carries pagination metadata, the loop
// stops once page >= totalPages; without metadata it falls back to
// stopping on the first short page. Any page failure aborts the whole
// fetch and discards what was accumulated; there is no partial-success
// contract. Overlapping pages caused by concurrent upstream writes are
// not deduplicated.
func (c *Client) FetchAllEvents(ctx context.Context, orgID string, filter event.Filter) ([]event.AttendanceEvent, error) {
	pageSize := c.pageSize
	all := make([]event.AttendanceEvent, 0, pageSize)

	for page := 1; ; page++ {
		items, meta, err := c.ListEvents(ctx, orgID, filter, page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if meta != nil {
			if page >= meta.TotalPages {
				break
			}
			continue
		}
		// No pagination block: a short page is the only end marker.
		if len(items) < pageSize {
			break
		}
	}

	return all, nil
}

// ListLocations fetches the organization's registered geofence locations.
func (c *Client) ListLocations(ctx context.Context, orgID string) ([]geofence.Location, error) {
	q := url.Values{}
	q.Set("id", orgID)

	env, err := c.do(ctx, http.MethodGet, "/geofence/get-by-organization", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeItems[geofence.Location](env.Data), nil
}

// ListFlaggedEvents fetches the pre-flagged review queue from the legacy
// summary endpoint.
func (c *Client) ListFlaggedEvents(ctx context.Context, orgID string) ([]event.AttendanceEvent, error) {
	q := url.Values{}
	q.Set("organization_id", orgID)

	env, err := c.do(ctx, http.MethodGet, "/attendance/report", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeItems[event.AttendanceEvent](env.Data), nil
}

// UpdateEventStatus proxies an administrative status correction.
func (c *Client) UpdateEventStatus(ctx context.Context, eventID, status string, note *string) error {
	body := map[string]any{"status": status}
	if note != nil {
		body["note"] = *note
	}

	_, err := c.do(ctx, http.MethodPost, "/attendance/admin/update-status/"+eventID, nil, body)
	return err
}

// MarkAbsences asks the upstream system to create absence records for the
// given date across the organization.
func (c *Client) MarkAbsences(ctx context.Context, orgID, date string) error {
	body := map[string]any{
		"organization_id": orgID,
		"date":            date,
	}

	_, err := c.do(ctx, http.MethodPost, "/attendance/admin/mark-absences", nil, body)
	return err
}
