// Package ticketing implements the conductor's ticket issuance
// workflow: price the trip, submit it to the ticketing backend, and
// record the sale locally no matter how the submission went.
//
// Issuance is deliberately best-effort toward the backend.  A network
// or server failure never blocks the sale: the ticket is still recorded
// locally with a synthesized identifier and the conductor sees a normal
// acknowledgment.  A failure after the server persisted the sale can
// therefore leave a duplicate in the remote ledger; the Confirmed flag
// on each local ticket records which side assigned the identifier.
package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/IRX358/RouteSaathi-2.0/internal/client"
	"github.com/IRX358/RouteSaathi-2.0/internal/fare"
)

// ErrInFlight is returned when Issue is entered while a previous
// submission has not resolved yet.  The caller should disable the
// submit control until the pending call returns.
var ErrInFlight = errors.New("ticketing: submission already in flight")

// Service is the remote ticketing collaborator.  *client.Client
// satisfies it.
type Service interface {
	IssueTickets(ctx context.Context, req client.IssueRequest) ([]string, error)
}

// Ticket is one locally recorded sale.  Immutable once created; it
// lives in the workflow's recently-issued list for the session and is
// not the ledger of record.
type Ticket struct {
	ID          string    `json:"id"`
	BusID       string    `json:"bus_id"`
	RouteID     string    `json:"route_id"`
	FromStop    string    `json:"from_stop"`
	ToStop      string    `json:"to_stop"`
	FarePerUnit int       `json:"fare_per_unit"`
	Quantity    int       `json:"quantity"`
	Total       int       `json:"total"`
	IssuedAt    time.Time `json:"issued_at"`
	Confirmed   bool      `json:"confirmed"`
}

// Workflow drives ticket sales for one conductor shift on one route.
// It is meant for a single-threaded event loop: no locking, one
// in-flight submission at a time.
type Workflow struct {
	remote   Service
	calc     fare.Calculator
	busID    string
	route    client.Route
	quantity int
	recent   []Ticket
	inFlight bool
	now      func() time.Time
}

// New builds a workflow for the given bus and route.  The quantity
// selector starts at 1 and pricing uses the default tariff.
func New(remote Service, busID string, route client.Route) *Workflow {
	return &Workflow{
		remote:   remote,
		calc:     fare.Default,
		busID:    busID,
		route:    route,
		quantity: 1,
		now:      time.Now,
	}
}

// SetCalculator overrides the tariff, e.g. from configuration.
func (w *Workflow) SetCalculator(c fare.Calculator) { w.calc = c }

// Route returns the route the workflow is selling on.
func (w *Workflow) Route() client.Route { return w.route }

// Quantity returns the current value of the quantity selector.
func (w *Workflow) Quantity() int { return w.quantity }

// AddQuantity raises the quantity selector by one.
func (w *Workflow) AddQuantity() { w.quantity++ }

// RemoveQuantity lowers the quantity selector by one, with a floor of 1.
func (w *Workflow) RemoveQuantity() {
	if w.quantity > 1 {
		w.quantity--
	}
}

// SetQuantity sets the quantity selector directly.
func (w *Workflow) SetQuantity(n int) error {
	if n < 1 {
		return fmt.Errorf("ticketing: quantity must be at least 1, got %d", n)
	}
	w.quantity = n
	return nil
}

// Quote prices the selected trip without issuing anything.  Recompute
// whenever either stop selection changes.
func (w *Workflow) Quote(from, to string) (fare.Quote, error) {
	return w.calc.Quote(w.route.Stops, from, to)
}

// InFlight reports whether a submission is awaiting its network result.
func (w *Workflow) InFlight() bool { return w.inFlight }

// Issue sells tickets for the selected trip at the current quantity.
//
// The trip is priced first; invalid or identical stops reject the sale
// before anything is sent.  The request is then submitted to the
// backend, and a local Ticket is recorded regardless of the outcome:
// the server-assigned identifier is preferred, otherwise a temporary
// one is synthesized from the current timestamp.  The new ticket is
// prepended to the recently-issued list and the quantity selector
// resets to 1.
func (w *Workflow) Issue(ctx context.Context, from, to string) (Ticket, error) {
	if w.inFlight {
		return Ticket{}, ErrInFlight
	}
	quote, err := w.Quote(from, to)
	if err != nil {
		return Ticket{}, err
	}
	quantity := w.quantity

	w.inFlight = true
	ids, remoteErr := w.remote.IssueTickets(ctx, client.IssueRequest{
		BusID:    w.busID,
		RouteID:  w.route.ID,
		FromStop: from,
		ToStop:   to,
		Fare:     quote.Amount,
		Quantity: quantity,
	})
	w.inFlight = false

	issuedAt := w.now()
	ticket := Ticket{
		ID:          fmt.Sprintf("T%d", issuedAt.UnixMilli()),
		BusID:       w.busID,
		RouteID:     w.route.ID,
		FromStop:    from,
		ToStop:      to,
		FarePerUnit: quote.Amount,
		Quantity:    quantity,
		Total:       quote.Amount * quantity,
		IssuedAt:    issuedAt,
	}
	if remoteErr == nil && len(ids) > 0 {
		ticket.ID = ids[0]
		ticket.Confirmed = true
	} else if remoteErr != nil {
		log.Printf("ticketing: remote issue failed, recorded locally as %s: %v", ticket.ID, remoteErr)
	}

	w.recent = append([]Ticket{ticket}, w.recent...)
	w.quantity = 1
	return ticket, nil
}

// Recent returns the recently issued tickets, most recent first.
func (w *Workflow) Recent() []Ticket {
	out := make([]Ticket, len(w.recent))
	copy(out, w.recent)
	return out
}
