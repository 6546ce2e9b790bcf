package model

import "time"

// Ticket is one fare sale recorded in the ledger (`tickets` table).
// The wire names follow the ledger format the dashboards consume:
// boarding and alighting stops are "from"/"to".
type Ticket struct {
	TID      string    `json:"tid"`       // tickets.tid
	BusID    string    `json:"bus_id"`    // tickets.bus_id
	RouteID  string    `json:"route_id"`  // tickets.route_id
	From     string    `json:"from"`      // tickets.from_stop
	To       string    `json:"to"`        // tickets.to_stop
	Fare     int       `json:"fare"`      // tickets.fare (whole rupees, per ticket)
	IssuedAt time.Time `json:"timestamp"` // tickets.issued_at
}
