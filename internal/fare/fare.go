// Package fare computes trip prices from a route's ordered stop
// sequence.  Amounts are whole currency units; the price is a base fare
// plus a fixed increment for every stop traversed, in either direction.
package fare

import "fmt"

// Default pricing constants, in whole rupees.
const (
	DefaultBase    = 10
	DefaultPerStop = 5
)

// InvalidStopError reports a stop name that does not appear in the
// route's stop sequence.
type InvalidStopError struct {
	Stop string
}

func (e *InvalidStopError) Error() string {
	return fmt.Sprintf("fare: stop %q is not on this route", e.Stop)
}

// DegenerateTripError reports a trip that boards and alights at the
// same stop, which has no defined fare.
type DegenerateTripError struct {
	Stop string
}

func (e *DegenerateTripError) Error() string {
	return fmt.Sprintf("fare: trip boards and alights at %q", e.Stop)
}

// Quote is the derived price for a stop-to-stop trip.  It is not
// persisted; recompute it whenever either stop changes.
type Quote struct {
	FromStop string `json:"from_stop"`
	ToStop   string `json:"to_stop"`
	Stops    int    `json:"distance_in_stops"`
	Amount   int    `json:"amount"`
}

// Calculator prices trips with configurable base and per-stop rates.
type Calculator struct {
	Base    int
	PerStop int
}

// Default is the calculator with the standard tariff.
var Default = Calculator{Base: DefaultBase, PerStop: DefaultPerStop}

// Quote prices a trip between two stops on the given ordered stop
// sequence.  Distance is the absolute index difference, so the fare is
// the same in both directions.  Returns InvalidStopError when a stop is
// not on the route and DegenerateTripError when from and to are equal.
func (c Calculator) Quote(stops []string, from, to string) (Quote, error) {
	fromIdx := indexOf(stops, from)
	if fromIdx < 0 {
		return Quote{}, &InvalidStopError{Stop: from}
	}
	toIdx := indexOf(stops, to)
	if toIdx < 0 {
		return Quote{}, &InvalidStopError{Stop: to}
	}
	if fromIdx == toIdx {
		return Quote{}, &DegenerateTripError{Stop: from}
	}
	dist := toIdx - fromIdx
	if dist < 0 {
		dist = -dist
	}
	return Quote{
		FromStop: from,
		ToStop:   to,
		Stops:    dist,
		Amount:   c.Base + dist*c.PerStop,
	}, nil
}

// QuoteTrip prices a trip with the default tariff.
func QuoteTrip(stops []string, from, to string) (Quote, error) {
	return Default.Quote(stops, from, to)
}

func indexOf(stops []string, name string) int {
	for i, s := range stops {
		if s == name {
			return i
		}
	}
	return -1
}
