package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/IRX358/RouteSaathi-2.0/internal/config"
	"github.com/IRX358/RouteSaathi-2.0/internal/fare"
	"github.com/IRX358/RouteSaathi-2.0/internal/model"
	"github.com/IRX358/RouteSaathi-2.0/internal/repository"
)

// TicketHandler records fare sales and serves ledger statistics.  The
// fare for every sale is recomputed here from the route's stop order;
// the client-quoted amount is advisory only.
type TicketHandler struct {
	Cfg     config.Config
	Tickets *repository.TicketRepo
	Routes  *repository.RouteRepo
	Buses   *repository.BusRepo
}

func NewTicketHandler(cfg config.Config, t *repository.TicketRepo, r *repository.RouteRepo, b *repository.BusRepo) *TicketHandler {
	return &TicketHandler{Cfg: cfg, Tickets: t, Routes: r, Buses: b}
}

type issueReq struct {
	BusID    string `json:"bus_id"`
	RouteID  string `json:"route_id"`
	FromStop string `json:"from_stop"`
	ToStop   string `json:"to_stop"`
	Quantity int    `json:"quantity"`
	Fare     int    `json:"fare"` // client-side quote, ignored
}

// Issue records quantity tickets for one trip and bumps the bus
// occupancy estimate (roughly 2% load per passenger).  Each ticket gets
// its own ledger row and id.
func (h *TicketHandler) Issue(c echo.Context) error {
	var req issueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if req.BusID == "" || req.RouteID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "bus_id and route_id required"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Routes.Get(ctx, req.RouteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	calc := fare.Calculator{Base: h.Cfg.FareBase, PerStop: h.Cfg.FarePerStop}
	quote, err := calc.Quote(rt.Stops, req.FromStop, req.ToStop)
	if err != nil {
		var invalid *fare.InvalidStopError
		var degenerate *fare.DegenerateTripError
		if errors.As(err, &invalid) || errors.As(err, &degenerate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fare computation failed"})
	}

	issuedAt := time.Now().UTC()
	ids := make([]string, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		tid := "T" + strings.ToUpper(uuid.NewString()[:8])
		t := model.Ticket{
			TID:      tid,
			BusID:    req.BusID,
			RouteID:  req.RouteID,
			From:     quote.FromStop,
			To:       quote.ToStop,
			Fare:     quote.Amount,
			IssuedAt: issuedAt,
		}
		if err := h.Tickets.Insert(ctx, t); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "insert failed"})
		}
		ids = append(ids, tid)
	}

	// Each passenger adds roughly 2% load; a failed bump does not void
	// the sale, occupancy is an estimate anyway.
	if err := h.Buses.BumpOccupancy(ctx, req.BusID, 2*req.Quantity); err != nil {
		log.Printf("tickets: occupancy bump failed for bus %s: %v", req.BusID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"ticket_ids": ids,
		"message":    fmt.Sprintf("%d ticket(s) issued successfully", len(ids)),
	})
}

// List returns the newest tickets (?limit=, default 50).
func (h *TicketHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListRecent(ctx, limitParam(c, 50))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, tickets)
}

// ByBus returns the newest tickets issued on one bus.
func (h *TicketHandler) ByBus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListByBus(ctx, c.Param("bus_id"), limitParam(c, 50))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, tickets)
}

// ByRoute returns the newest tickets sold on one route.
func (h *TicketHandler) ByRoute(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListByRoute(ctx, c.Param("route_id"), limitParam(c, 50))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, tickets)
}

// Stats returns ledger totals for the coordinator dashboard.
func (h *TicketHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	count, revenue, err := h.Tickets.Totals(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	perRoute, err := h.Tickets.CountByRoute(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_tickets": count,
		"total_revenue": revenue,
		"by_route":      perRoute,
	})
}

// HourlyDemand returns ticket counts per hour of day for one route,
// the demand curve the coordinator dashboard charts.
func (h *TicketHandler) HourlyDemand(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	demand, err := h.Tickets.HourlyDemand(ctx, c.Param("route_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"route_id": c.Param("route_id"),
		"hourly":   demand,
	})
}

// limitParam parses ?limit= with a default, rejecting non-positives.
func limitParam(c echo.Context, def int) int {
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
