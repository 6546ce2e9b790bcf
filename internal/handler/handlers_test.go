package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IRX358/RouteSaathi-2.0/internal/config"
)

func testConfig() config.Config {
	return config.Config{FareBase: 10, FarePerStop: 5}
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestIssueRejectsMissingBusAndRoute(t *testing.T) {
	h := NewTicketHandler(testConfig(), nil, nil, nil)

	c, rec := newContext(http.MethodPost, "/api/tickets/issue", `{"from_stop":"Majestic","to_stop":"Silk Board"}`)
	require.NoError(t, h.Issue(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bus_id and route_id required")
}

func TestAlertByTypeRejectsUnknownType(t *testing.T) {
	h := NewAlertHandler(nil)

	c, rec := newContext(http.MethodGet, "/api/notifications/type/gossip", "")
	c.SetParamNames("type")
	c.SetParamValues("gossip")
	require.NoError(t, h.ByType(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBroadcastRequiresMessage(t *testing.T) {
	h := NewAlertHandler(nil)

	c, rec := newContext(http.MethodPost, "/api/notifications/broadcast", `{"message":"   "}`)
	require.NoError(t, h.Broadcast(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	h := NewRouteHandler(nil, nil, nil)

	c, rec := newContext(http.MethodGet, "/api/routes/search", "")
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLimitParam(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/tickets?limit=5", "")
	assert.Equal(t, 5, limitParam(c, 50))

	c, _ = newContext(http.MethodGet, "/api/tickets", "")
	assert.Equal(t, 50, limitParam(c, 50))

	c, _ = newContext(http.MethodGet, "/api/tickets?limit=-3", "")
	assert.Equal(t, 50, limitParam(c, 50))

	c, _ = newContext(http.MethodGet, "/api/tickets?limit=abc", "")
	assert.Equal(t, 50, limitParam(c, 50))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", timeAgo(now, now.Add(-30*time.Second)))
	assert.Equal(t, "5 min ago", timeAgo(now, now.Add(-5*time.Minute)))
	assert.Equal(t, "3 hr ago", timeAgo(now, now.Add(-3*time.Hour)))
	assert.Equal(t, "2 days ago", timeAgo(now, now.Add(-49*time.Hour)))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 66.7, round1(66.666))
	assert.Equal(t, 0.0, round1(0))
	assert.Equal(t, 80.0, round1(79.99))
}
