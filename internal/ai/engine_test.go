package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendHighOnOccupancy(t *testing.T) {
	recs := Recommend([]RouteLoad{
		{RouteID: "335E", RouteName: "Majestic → Electronic City", TicketCount: 40, BusCount: 4, AverageOccupancy: 88},
	})
	require.Len(t, recs, 1)
	assert.Equal(t, "HIGH", recs[0].Priority)
	assert.Equal(t, 5, recs[0].RecommendedBuses)
	assert.Equal(t, 1, recs[0].Change)
}

func TestRecommendHighOnDemandPerBus(t *testing.T) {
	// 70 tickets across 2 buses: 35 per bus exceeds the threshold even
	// with moderate occupancy.
	recs := Recommend([]RouteLoad{
		{RouteID: "R-276", TicketCount: 70, BusCount: 2, AverageOccupancy: 55},
	})
	require.Len(t, recs, 1)
	assert.Equal(t, "HIGH", recs[0].Priority)
}

func TestRecommendLowReleasesBus(t *testing.T) {
	recs := Recommend([]RouteLoad{
		{RouteID: "G-10", TicketCount: 5, BusCount: 3, AverageOccupancy: 18},
	})
	require.Len(t, recs, 1)
	assert.Equal(t, "LOW", recs[0].Priority)
	assert.Equal(t, 2, recs[0].RecommendedBuses)
	assert.Equal(t, -1, recs[0].Change)
}

func TestRecommendNeverDropsLastBus(t *testing.T) {
	recs := Recommend([]RouteLoad{
		{RouteID: "R-201", TicketCount: 2, BusCount: 1, AverageOccupancy: 10},
	})
	require.Len(t, recs, 1)
	assert.Equal(t, "MEDIUM", recs[0].Priority)
	assert.Equal(t, 1, recs[0].RecommendedBuses)
	assert.Zero(t, recs[0].Change)
}

func TestRecommendSortsHighFirst(t *testing.T) {
	recs := Recommend([]RouteLoad{
		{RouteID: "A", TicketCount: 10, BusCount: 2, AverageOccupancy: 50}, // MEDIUM
		{RouteID: "B", TicketCount: 5, BusCount: 3, AverageOccupancy: 15}, // LOW
		{RouteID: "C", TicketCount: 90, BusCount: 2, AverageOccupancy: 92}, // HIGH
	})
	require.Len(t, recs, 3)
	assert.Equal(t, "C", recs[0].RouteID)
	assert.Equal(t, "A", recs[1].RouteID)
	assert.Equal(t, "B", recs[2].RouteID)
}

func TestRecommendDeterministic(t *testing.T) {
	loads := []RouteLoad{
		{RouteID: "335E", TicketCount: 40, BusCount: 4, AverageOccupancy: 88},
		{RouteID: "G-10", TicketCount: 5, BusCount: 3, AverageOccupancy: 18},
	}
	assert.Equal(t, Recommend(loads), Recommend(loads))
}
