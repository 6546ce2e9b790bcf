package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IRX358/RouteSaathi-2.0/internal/session"
)

func TestLoginSuccessInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ganesh@bmtc.gov.in", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"user":         map[string]string{"id": "U002", "name": "Ganesh Rao", "email": "ganesh@bmtc.gov.in", "role": "conductor"},
			"access_token": "tok-123",
			"message":      "Login successful",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	id, err := c.Login(context.Background(), "ganesh@bmtc.gov.in", "conductor123")
	require.NoError(t, err)
	assert.Equal(t, "U002", id.ID)
	assert.Equal(t, session.RoleConductor, id.Role)
	assert.Equal(t, "tok-123", c.token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid email or password"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "x@y.z", "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Detail)
}

func TestIssueTicketsSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tickets/issue", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var req IssueRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "335E", req.RouteID)
		assert.Equal(t, 2, req.Quantity)

		json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"ticket_ids": []string{"T-abc", "T-def"},
			"message":    "Issued 2 ticket(s) successfully",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")
	ids, err := c.IssueTickets(context.Background(), IssueRequest{
		BusID: "KA-01-F-4532", RouteID: "335E", FromStop: "Majestic", ToStop: "Silk Board", Fare: 20, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"T-abc", "T-def"}, ids)
}

func TestRouteFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/routes/335E", r.URL.Path)
		json.NewEncoder(w).Encode(FallbackRoute())
	}))
	defer srv.Close()

	route, err := New(srv.URL).Route(context.Background(), "335E")
	require.NoError(t, err)
	assert.Equal(t, "335E", route.ID)
	assert.Len(t, route.Stops, 5)
}

func TestErrorDetailFallsBackToErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Buses(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "forbidden", apiErr.Detail)
}

func TestFallbackDatasets(t *testing.T) {
	// Fallbacks are plain values: the caller decides when to use them.
	route := FallbackRoute()
	assert.Equal(t, []string{"Majestic", "BTM Layout", "Silk Board", "HSR Layout", "Electronic City"}, route.Stops)
	assert.NotEmpty(t, FallbackBuses())
	assert.NotEmpty(t, FallbackRecommendations().Recommendations)
}
