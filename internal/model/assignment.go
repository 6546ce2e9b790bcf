package model

// Assignment is a conductor's duty for the day (`assignments` table):
// which bus they work, on which route, and the shift window.
type Assignment struct {
	ConductorID string `json:"conductor_id"` // assignments.conductor_id
	BusNumber   string `json:"bus_number"`   // assignments.bus_number
	RouteID     string `json:"route_id"`     // assignments.route_id
	RouteName   string `json:"route_name"`   // assignments.route_name
	StartTime   string `json:"start_time"`   // assignments.start_time (display, e.g. "06:30 AM")
	EndTime     string `json:"end_time"`     // assignments.end_time
	Status      string `json:"status"`       // assignments.status (ACTIVE, ON_BREAK, BREAKDOWN)
}
