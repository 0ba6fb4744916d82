package upstream

import (
	"encoding/json"
	"math"
)

// Pagination describes a page window over an upstream collection.
// TotalPages is ceil(Total / PageSize); Page is 1-based.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PageCount computes the page count implied by a total and page size.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// envelope is the upstream response convention:
//
//	{ message?, data?: T[] | { events?: T[] } | { flagged_events?: T[] }, pagination? }
//
// Data stays raw until the caller picks an item type.
type envelope struct {
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// nestedData covers the object variants of the data field.
type nestedData struct {
	Events        json.RawMessage `json:"events"`
	FlaggedEvents json.RawMessage `json:"flagged_events"`
}

// decodeItems normalizes the three accepted data shapes into one list. A
// missing or malformed data field yields an empty slice, never an error:
// the dashboard degrades to zeros instead of breaking on shape drift.
func decodeItems[T any](data json.RawMessage) []T {
	if len(data) == 0 {
		return []T{}
	}

	var direct []T
	if err := json.Unmarshal(data, &direct); err == nil {
		return direct
	}

	var nested nestedData
	if err := json.Unmarshal(data, &nested); err == nil {
		if len(nested.Events) > 0 {
			var items []T
			if err := json.Unmarshal(nested.Events, &items); err == nil {
				return items
			}
		}
		if len(nested.FlaggedEvents) > 0 {
			var items []T
			if err := json.Unmarshal(nested.FlaggedEvents, &items); err == nil {
				return items
			}
		}
	}

	return []T{}
}
