// Package client is a typed HTTP client for the fleet API, used by the
// conductor and passenger device cores.  Every call returns the decoded
// payload or an error; the caller decides whether to substitute the
// static fallback datasets in fallback.go when a read fails.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/IRX358/RouteSaathi-2.0/internal/session"
)

// APIError carries the HTTP status and the backend's human-readable
// detail message for a failed call.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
}

// Client talks JSON to the fleet backend.  After a successful Login the
// access token is attached to every subsequent request.
type Client struct {
	base  string
	httpc *http.Client
	token string
}

// New builds a client for the given base URL (e.g. "http://host:8000").
// No request timeout is set on the underlying client; pass a context to
// individual calls to bound them.
func New(baseURL string) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{},
	}
}

// SetToken installs a bearer token for subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Route is a line with its ordered stop sequence.
type Route struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Stops []string `json:"stops"`
}

// Bus is the live state of one vehicle.
type Bus struct {
	ID               string  `json:"id"`
	RouteID          string  `json:"route_id"`
	Status           string  `json:"status"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Speed            string  `json:"speed"`
	OccupancyPercent int     `json:"occupancy_percent"`
	LastStop         string  `json:"last_stop"`
}

// Assignment is a conductor's duty for the day.
type Assignment struct {
	Date      string `json:"date"`
	BusNumber string `json:"bus_number"`
	RouteID   string `json:"route_id"`
	RouteName string `json:"route_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// Recommendation is one AI reallocation suggestion.
type Recommendation struct {
	RouteID          string  `json:"route_id"`
	RouteName        string  `json:"route_name"`
	Priority         string  `json:"priority"`
	CurrentBuses     int     `json:"current_buses"`
	RecommendedBuses int     `json:"recommended_buses"`
	Change           int     `json:"change"`
	AverageOccupancy float64 `json:"average_occupancy"`
	TicketCount      int     `json:"ticket_count"`
	Reason           string  `json:"reason"`
	Impact           string  `json:"impact"`
}

// Recommendations is the full AI analysis response.
type Recommendations struct {
	AnalysisSummary string           `json:"analysis_summary"`
	GeneratedAt     string           `json:"generated_at"`
	Recommendations []Recommendation `json:"recommendations"`
}

// IssueRequest is the payload for issuing tickets on a bus.
type IssueRequest struct {
	BusID    string `json:"bus_id"`
	RouteID  string `json:"route_id"`
	FromStop string `json:"from_stop"`
	ToStop   string `json:"to_stop"`
	Fare     int    `json:"fare"`
	Quantity int    `json:"quantity"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success     bool             `json:"success"`
	User        session.Identity `json:"user"`
	AccessToken string           `json:"access_token"`
	Message     string           `json:"message"`
}

// Login authenticates against the backend and, on success, installs
// the returned access token and yields the sanitized identity.
func (c *Client) Login(ctx context.Context, email, password string) (session.Identity, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return session.Identity{}, err
	}
	c.token = resp.AccessToken
	return resp.User, nil
}

// Route fetches a route with its stop sequence.
func (c *Client) Route(ctx context.Context, id string) (Route, error) {
	var r Route
	err := c.do(ctx, http.MethodGet, "/api/routes/"+id, nil, &r)
	return r, err
}

// Buses fetches the live bus list.
func (c *Client) Buses(ctx context.Context) ([]Bus, error) {
	var out []Bus
	err := c.do(ctx, http.MethodGet, "/api/buses", nil, &out)
	return out, err
}

// Assignment fetches a conductor's duty assignment.
func (c *Client) Assignment(ctx context.Context, conductorID string) (Assignment, error) {
	var a Assignment
	err := c.do(ctx, http.MethodGet, "/api/conductors/"+conductorID+"/assignment", nil, &a)
	return a, err
}

type issueResponse struct {
	Success   bool     `json:"success"`
	TicketIDs []string `json:"ticket_ids"`
	Message   string   `json:"message"`
}

// IssueTickets submits a ticket sale and returns the server-assigned
// ticket identifiers.
func (c *Client) IssueTickets(ctx context.Context, req IssueRequest) ([]string, error) {
	var resp issueResponse
	if err := c.do(ctx, http.MethodPost, "/api/tickets/issue", req, &resp); err != nil {
		return nil, err
	}
	return resp.TicketIDs, nil
}

type alertRequest struct {
	BusID    string    `json:"bus_id"`
	Location []float64 `json:"location"`
	Message  string    `json:"message,omitempty"`
}

type alertResponse struct {
	Success bool   `json:"success"`
	AlertID string `json:"alert_id"`
	Message string `json:"message"`
}

// SendSOS raises a critical emergency alert for a bus.
func (c *Client) SendSOS(ctx context.Context, busID string, location []float64, message string) (string, error) {
	var resp alertResponse
	err := c.do(ctx, http.MethodPost, "/api/notifications/sos", alertRequest{BusID: busID, Location: location, Message: message}, &resp)
	return resp.AlertID, err
}

// ReportTraffic reports a traffic condition observed on a route.
func (c *Client) ReportTraffic(ctx context.Context, busID string, location []float64, message string) (string, error) {
	var resp alertResponse
	err := c.do(ctx, http.MethodPost, "/api/notifications/traffic", alertRequest{BusID: busID, Location: location, Message: message}, &resp)
	return resp.AlertID, err
}

// ReportBreakdown reports a vehicle breakdown and takes the bus out of
// service on the backend.
func (c *Client) ReportBreakdown(ctx context.Context, busID string, location []float64, issue string) (string, error) {
	var resp alertResponse
	err := c.do(ctx, http.MethodPost, "/api/conductors/breakdown", alertRequest{BusID: busID, Location: location, Message: issue}, &resp)
	return resp.AlertID, err
}

// UpdateOccupancy reports the current passenger load of a bus.
func (c *Client) UpdateOccupancy(ctx context.Context, busID string, percent int) error {
	body := map[string]int{"occupancy_percent": percent}
	return c.do(ctx, http.MethodPatch, "/api/buses/"+busID+"/occupancy", body, nil)
}

// Recommendations fetches the AI reallocation suggestions.
func (c *Client) Recommendations(ctx context.Context) (Recommendations, error) {
	var r Recommendations
	err := c.do(ctx, http.MethodGet, "/api/ai/recommendations", nil, &r)
	return r, err
}

// ApplyAllocation applies one AI-suggested reallocation.
func (c *Client) ApplyAllocation(ctx context.Context, routeID string, change int) error {
	body := map[string]any{"route_id": routeID, "change": change}
	return c.do(ctx, http.MethodPost, "/api/ai/apply", body, nil)
}

// do performs one JSON round trip.  Non-2xx responses are decoded into
// an APIError using the backend's "detail" (or "error") field when
// present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Detail: errorDetail(data)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func errorDetail(data []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}
