package event

import (
	"time"
)

// Status values assigned by the upstream ingestion system. The service
// treats them as opaque labels except for Absent, which drives the
// attendance percentage math.
type Status string

const (
	StatusOnTime      Status = "on_time"
	StatusLate        Status = "late"
	StatusEarly       Status = "early"
	StatusAbsent      Status = "absent"
	StatusOutOfBounds Status = "out_of_bounds"
)

var validStatuses = []Status{
	StatusOnTime,
	StatusLate,
	StatusEarly,
	StatusAbsent,
	StatusOutOfBounds,
}

func (s Status) IsValid() bool {
	for _, v := range validStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// StatusValues returns the fixed status enumeration as strings.
func StatusValues() []string {
	out := make([]string, len(validStatuses))
	for i, s := range validStatuses {
		out[i] = string(s)
	}
	return out
}

// GeofenceRef is the nested geofence object some upstream payloads embed
// instead of (or in addition to) a flat id field.
type GeofenceRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// LocationRef is the nested location object variant of the same thing.
type LocationRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// AttendanceEvent is one clock-in (and optional clock-out) record for a
// user. The authoritative copy lives in the upstream HRIS backend; records
// held here are per-request copies and are never written back directly.
//
// The location of an event may arrive in any of five fields depending on
// which upstream code path produced the record; see aggregate.ResolveLocationID
// for the resolution order.
type AttendanceEvent struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	ShiftID        *string      `json:"shift_id,omitempty"`
	GeofenceID     *string      `json:"geofence_id,omitempty"`
	FenceID        *string      `json:"fence_id,omitempty"`
	LocationID     *string      `json:"location_id,omitempty"`
	Geofence       *GeofenceRef `json:"geofence,omitempty"`
	Location       *LocationRef `json:"location,omitempty"`
	CheckInAt      time.Time    `json:"check_in_at"`
	CheckOutAt     *time.Time   `json:"check_out_at,omitempty"`
	Status         Status       `json:"status"`
	WithinGeofence bool         `json:"within_geofence"`
	DistanceMeters *float64     `json:"distance_meters,omitempty"`
	Verified       bool         `json:"verified"`
	Source         string       `json:"source,omitempty"`
	Latitude       *float64     `json:"latitude,omitempty"`
	Longitude      *float64     `json:"longitude,omitempty"`
	BiometricScore *float64     `json:"biometric_score,omitempty"`
	SpoofFlagged   bool         `json:"spoof_flagged"`
	Notes          *string      `json:"notes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// IsAbsence reports whether the event counts against attendance.
func (e AttendanceEvent) IsAbsence() bool {
	return e.Status == StatusAbsent
}
