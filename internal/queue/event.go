// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// AlertRaisedEvent is published whenever an alert is created: a
// coordinator broadcast or a conductor SOS/traffic/breakdown report.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type AlertRaisedEvent struct {
	AlertID  string    `json:"alert_id"`
	BusID    string    `json:"bus_id,omitempty"`
	Type     string    `json:"type"`
	Priority string    `json:"priority"`
	Message  string    `json:"message"`
	Location []float64 `json:"location,omitempty"`
	RaisedAt string    `json:"raised_at"`
}
