package model

import "time"

// Alert is one notification row (`alerts` table): a coordinator
// broadcast or a conductor-raised SOS, traffic or breakdown report.
// Location is [lat, lng] on the wire and two nullable columns in the
// database; it is empty for broadcasts.
type Alert struct {
	ID        string    `json:"id"`                 // alerts.id
	Timestamp time.Time `json:"timestamp"`          // alerts.created_at
	Sender    string    `json:"sender"`             // alerts.sender
	Type      string    `json:"type"`               // alerts.type
	Priority  string    `json:"priority"`           // alerts.priority
	Message   string    `json:"message"`            // alerts.message
	Status    string    `json:"status"`             // alerts.status
	Location  []float64 `json:"location,omitempty"` // alerts.lat, alerts.lng
	BusID     string    `json:"bus_id,omitempty"`   // alerts.bus_id (nullable)
}

// Alert types.
const (
	AlertBroadcast = "BROADCAST"
	AlertSOS       = "SOS"
	AlertTraffic   = "TRAFFIC"
	AlertBreakdown = "BREAKDOWN"
)

// Alert priorities, lowest to highest.
const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

// Alert statuses.
const (
	AlertSent     = "SENT"
	AlertActive   = "ACTIVE"
	AlertResolved = "RESOLVED"
)
