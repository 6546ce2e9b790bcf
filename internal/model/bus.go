package model

// Bus is the live state of one fleet vehicle as stored in the `buses`
// table.  Position and occupancy are updated by conductors and by the
// movement simulator.  Status is one of MOVING, IDLE, STUCK, BREAKDOWN.
type Bus struct {
	ID               string  `json:"id"`                // buses.id (registration number)
	RouteID          string  `json:"route_id"`          // buses.route_id
	Status           string  `json:"status"`            // buses.status
	Lat              float64 `json:"lat"`               // buses.lat
	Lng              float64 `json:"lng"`               // buses.lng
	Speed            string  `json:"speed"`             // buses.speed (display string, e.g. "32km/h")
	OccupancyPercent int     `json:"occupancy_percent"` // buses.occupancy_percent (0-100)
	LastStop         string  `json:"last_stop"`         // buses.last_stop
}

// Bus status values.
const (
	BusMoving    = "MOVING"
	BusIdle      = "IDLE"
	BusStuck     = "STUCK"
	BusBreakdown = "BREAKDOWN"
)
