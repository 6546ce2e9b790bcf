package client

// Static fallback datasets for informational screens.  The client never
// substitutes these on its own: a failed read returns the error, and the
// view layer chooses whether to render fallback content so the screen
// stays usable.  Values mirror the demo fleet the dashboards ship with.

// FallbackRoute is the default conductor route when the assignment or
// route lookup is unavailable.
func FallbackRoute() Route {
	return Route{
		ID:    "335E",
		Name:  "Majestic → Electronic City",
		Stops: []string{"Majestic", "BTM Layout", "Silk Board", "HSR Layout", "Electronic City"},
	}
}

// FallbackBuses is a small static fleet for the live map when the bus
// feed is unavailable.
func FallbackBuses() []Bus {
	return []Bus{
		{ID: "KA-01-F-4532", RouteID: "335E", Status: "MOVING", Lat: 12.9716, Lng: 77.5946, Speed: "32km/h", OccupancyPercent: 64, LastStop: "Majestic"},
		{ID: "KA-01-F-1234", RouteID: "R-276", Status: "MOVING", Lat: 12.9352, Lng: 77.6245, Speed: "18km/h", OccupancyPercent: 82, LastStop: "BTM Layout"},
		{ID: "KA-22-W-7547", RouteID: "R-KBS-1", Status: "IDLE", Lat: 13.0358, Lng: 77.5970, Speed: "0km/h", OccupancyPercent: 21, LastStop: "Hebbal"},
	}
}

// FallbackRecommendations is shown when the AI engine is unreachable.
func FallbackRecommendations() Recommendations {
	return Recommendations{
		AnalysisSummary: "Showing cached analysis; the AI engine is currently unreachable.",
		Recommendations: []Recommendation{
			{
				RouteID:          "335E",
				RouteName:        "Majestic → Electronic City",
				Priority:         "HIGH",
				CurrentBuses:     4,
				RecommendedBuses: 5,
				Change:           1,
				AverageOccupancy: 88,
				Reason:           "High demand detected, capacity straining.",
				Impact:           "Reduce overcrowding, improve service.",
			},
			{
				RouteID:          "R-KBS-1",
				RouteName:        "Majestic → Hebbal → Yelahanka",
				Priority:         "MEDIUM",
				CurrentBuses:     3,
				RecommendedBuses: 3,
				Change:           0,
				AverageOccupancy: 55,
				Reason:           "Optimal allocation, maintaining current schedule.",
				Impact:           "Maintain 90%+ efficiency.",
			},
		},
	}
}
