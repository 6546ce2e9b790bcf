package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var route335E = []string{"Majestic", "BTM Layout", "Silk Board", "HSR Layout", "Electronic City"}

func TestQuoteConcreteScenarios(t *testing.T) {
	q, err := QuoteTrip(route335E, "Majestic", "Silk Board")
	require.NoError(t, err)
	assert.Equal(t, 2, q.Stops)
	assert.Equal(t, 20, q.Amount)

	q, err = QuoteTrip(route335E, "Electronic City", "Majestic")
	require.NoError(t, err)
	assert.Equal(t, 4, q.Stops)
	assert.Equal(t, 30, q.Amount)
}

func TestQuoteSymmetry(t *testing.T) {
	for _, from := range route335E {
		for _, to := range route335E {
			if from == to {
				continue
			}
			a, err := QuoteTrip(route335E, from, to)
			require.NoError(t, err)
			b, err := QuoteTrip(route335E, to, from)
			require.NoError(t, err)
			assert.Equal(t, a.Amount, b.Amount, "%s<->%s", from, to)
		}
	}
}

func TestQuoteMonotonicInDistance(t *testing.T) {
	prev := 0
	for i := 1; i < len(route335E); i++ {
		q, err := QuoteTrip(route335E, "Majestic", route335E[i])
		require.NoError(t, err)
		assert.Greater(t, q.Amount, prev)
		prev = q.Amount
	}
}

func TestQuoteDeterministic(t *testing.T) {
	first, err := QuoteTrip(route335E, "BTM Layout", "HSR Layout")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := QuoteTrip(route335E, "BTM Layout", "HSR Layout")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuoteInvalidStop(t *testing.T) {
	_, err := QuoteTrip(route335E, "Majestic", "Whitefield")
	var invalid *InvalidStopError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Whitefield", invalid.Stop)

	_, err = QuoteTrip(route335E, "", "Majestic")
	assert.ErrorAs(t, err, &invalid)
}

func TestQuoteDegenerateTrip(t *testing.T) {
	_, err := QuoteTrip(route335E, "Silk Board", "Silk Board")
	var degenerate *DegenerateTripError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, "Silk Board", degenerate.Stop)
}

func TestCustomTariff(t *testing.T) {
	calc := Calculator{Base: 4, PerStop: 3}
	q, err := calc.Quote(route335E, "Majestic", "BTM Layout")
	require.NoError(t, err)
	assert.Equal(t, 7, q.Amount)
}
