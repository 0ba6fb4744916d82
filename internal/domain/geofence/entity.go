package geofence

// Location is a registered geofenced site: a named circular zone used by
// the upstream ingestion system to decide whether a clock-in happened
// inside an authorized area. This service only reads the registry for
// display names and grouping; the distance math stays upstream.
type Location struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	Name           string  `json:"name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	RadiusMeters   float64 `json:"radius_meters"`
}
