package ticketing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IRX358/RouteSaathi-2.0/internal/client"
	"github.com/IRX358/RouteSaathi-2.0/internal/fare"
)

type stubService struct {
	ids    []string
	err    error
	calls  int
	gotReq client.IssueRequest
	during func(context.Context) // runs inside the call, mimics the suspended state
}

func (s *stubService) IssueTickets(ctx context.Context, req client.IssueRequest) ([]string, error) {
	s.calls++
	s.gotReq = req
	if s.during != nil {
		s.during(ctx)
	}
	return s.ids, s.err
}

func testRoute() client.Route {
	return client.Route{
		ID:    "335E",
		Name:  "Majestic → Electronic City",
		Stops: []string{"Majestic", "BTM Layout", "Silk Board", "HSR Layout", "Electronic City"},
	}
}

func TestIssueUsesServerIdentifier(t *testing.T) {
	svc := &stubService{ids: []string{"T-a1", "T-a2"}}
	w := New(svc, "KA-01-F-4532", testRoute())
	require.NoError(t, w.SetQuantity(2))

	ticket, err := w.Issue(context.Background(), "Majestic", "Silk Board")
	require.NoError(t, err)
	assert.Equal(t, "T-a1", ticket.ID)
	assert.True(t, ticket.Confirmed)
	assert.Equal(t, 20, ticket.FarePerUnit)
	assert.Equal(t, 2, ticket.Quantity)
	assert.Equal(t, 40, ticket.Total)

	assert.Equal(t, 20, svc.gotReq.Fare)
	assert.Equal(t, "335E", svc.gotReq.RouteID)
	assert.Equal(t, 1, w.Quantity(), "quantity selector resets after issue")
}

func TestIssueRecordsLocallyOnRemoteFailure(t *testing.T) {
	svc := &stubService{err: errors.New("connection refused")}
	w := New(svc, "KA-01-F-4532", testRoute())
	w.now = func() time.Time { return time.UnixMilli(1700000000000) }

	ticket, err := w.Issue(context.Background(), "Electronic City", "Majestic")
	require.NoError(t, err, "remote failure must not surface to the caller")
	assert.Equal(t, "T1700000000000", ticket.ID)
	assert.False(t, ticket.Confirmed)
	assert.Equal(t, 30, ticket.FarePerUnit)
	assert.Len(t, w.Recent(), 1, "exactly one ticket per invocation, win or lose")
}

func TestIssueQuantityTwoScenario(t *testing.T) {
	// Electronic City -> Majestic is 4 stops: fare 30, two tickets, 60 total.
	svc := &stubService{err: errors.New("backend down")}
	w := New(svc, "KA-01-F-4532", testRoute())
	require.NoError(t, w.SetQuantity(2))

	ticket, err := w.Issue(context.Background(), "Electronic City", "Majestic")
	require.NoError(t, err)
	assert.Equal(t, 60, ticket.Total)
}

func TestIssueRejectsInvalidSelections(t *testing.T) {
	svc := &stubService{}
	w := New(svc, "KA-01-F-4532", testRoute())

	_, err := w.Issue(context.Background(), "Majestic", "Majestic")
	var degenerate *fare.DegenerateTripError
	assert.ErrorAs(t, err, &degenerate)

	_, err = w.Issue(context.Background(), "Majestic", "Whitefield")
	var invalid *fare.InvalidStopError
	assert.ErrorAs(t, err, &invalid)

	assert.Zero(t, svc.calls, "validation failures must not reach the network")
	assert.Empty(t, w.Recent())
}

func TestIssueMostRecentFirst(t *testing.T) {
	svc := &stubService{ids: []string{"T-1"}}
	w := New(svc, "KA-01-F-4532", testRoute())

	_, err := w.Issue(context.Background(), "Majestic", "BTM Layout")
	require.NoError(t, err)
	svc.ids = []string{"T-2"}
	_, err = w.Issue(context.Background(), "BTM Layout", "Silk Board")
	require.NoError(t, err)

	recent := w.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "T-2", recent[0].ID)
	assert.Equal(t, "T-1", recent[1].ID)
}

func TestIssueGuardsAgainstReentry(t *testing.T) {
	svc := &stubService{ids: []string{"T-1"}}
	w := New(svc, "KA-01-F-4532", testRoute())
	svc.during = func(ctx context.Context) {
		// A second submit while the first is awaiting the network.
		_, err := w.Issue(ctx, "Majestic", "BTM Layout")
		assert.ErrorIs(t, err, ErrInFlight)
	}

	_, err := w.Issue(context.Background(), "Majestic", "Silk Board")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.calls)
	assert.Len(t, w.Recent(), 1)
	assert.False(t, w.InFlight())
}

func TestQuantitySelector(t *testing.T) {
	w := New(&stubService{}, "KA-01-F-4532", testRoute())
	w.RemoveQuantity()
	assert.Equal(t, 1, w.Quantity(), "floor of 1")
	w.AddQuantity()
	w.AddQuantity()
	assert.Equal(t, 3, w.Quantity())
	assert.Error(t, w.SetQuantity(0))
}

func TestQuoteMatchesFareCalculator(t *testing.T) {
	w := New(&stubService{}, "KA-01-F-4532", testRoute())
	q, err := w.Quote("Majestic", "Silk Board")
	require.NoError(t, err)
	assert.Equal(t, 2, q.Stops)
	assert.Equal(t, 20, q.Amount)
}
