package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/IRX358/RouteSaathi-2.0/internal/config"
	"github.com/IRX358/RouteSaathi-2.0/internal/handler"
	"github.com/IRX358/RouteSaathi-2.0/internal/middleware"
	"github.com/IRX358/RouteSaathi-2.0/internal/session"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the root banner and the health check used
// by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	e.GET("/api/health", handler.Health)
}

// Handlers bundles every API handler for registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Routes     *handler.RouteHandler
	Buses      *handler.BusHandler
	Tickets    *handler.TicketHandler
	Alerts     *handler.AlertHandler
	Conductors *handler.ConductorHandler
	AI         *handler.AIHandler
}

// RegisterAPI registers the full API surface under /api.
//
// Write access follows the role model: conductors sell tickets and
// report incidents, coordinators broadcast and apply allocations,
// commuters may raise an SOS.  Hot read endpoints go through the Redis
// response cache; login is rate limited per client IP.
func RegisterAPI(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	api := e.Group("/api")

	// Auth.
	api.POST("/auth/login", h.Auth.Login, middleware.LoginRateLimit(config.LoadRateLimitConfig(), rdb))
	api.GET("/auth/users", h.Auth.ListUsers, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleCoordinator))
	api.GET("/auth/users/:id", h.Auth.GetUser, middleware.JWTAuth(cfg.JWTSecret))
	api.GET("/conductors", h.Auth.Conductors, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleCoordinator))

	// Routes.
	api.GET("/routes", h.Routes.List, cache)
	api.GET("/routes/search", h.Routes.Search)
	api.GET("/routes/:id", h.Routes.Get, cache)
	api.GET("/routes/:id/buses", h.Routes.BusesOnRoute)
	api.GET("/routes/:id/stats", h.Routes.Stats)

	// Buses.
	api.GET("/buses", h.Buses.List, cache)
	api.GET("/buses/stats", h.Buses.Stats)
	api.GET("/buses/route/:route_id", h.Buses.ByRoute)
	api.GET("/buses/:id", h.Buses.Get)
	api.PATCH("/buses/:id/status", h.Buses.UpdateStatus, middleware.JWTAuth(cfg.JWTSecret))
	api.PATCH("/buses/:id/location", h.Buses.UpdateLocation, middleware.JWTAuth(cfg.JWTSecret))
	api.PATCH("/buses/:id/occupancy", h.Buses.UpdateOccupancy, middleware.JWTAuth(cfg.JWTSecret))
	api.POST("/buses/simulate", h.Buses.SimulateMovement, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleCoordinator))

	// Tickets.
	api.POST("/tickets/issue", h.Tickets.Issue, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleConductor))
	api.GET("/tickets", h.Tickets.List)
	api.GET("/tickets/stats", h.Tickets.Stats)
	api.GET("/tickets/bus/:bus_id", h.Tickets.ByBus)
	api.GET("/tickets/route/:route_id", h.Tickets.ByRoute)
	api.GET("/tickets/demand/:route_id", h.Tickets.HourlyDemand)

	// Notifications.
	api.GET("/notifications", h.Alerts.List)
	api.GET("/notifications/recent", h.Alerts.Recent)
	api.GET("/notifications/stats", h.Alerts.Stats)
	api.GET("/notifications/type/:type", h.Alerts.ByType)
	api.POST("/notifications/broadcast", h.Alerts.Broadcast, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleCoordinator))
	api.POST("/notifications/sos", h.Alerts.SOS, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleConductor, session.RoleCommuter))
	api.POST("/notifications/traffic", h.Alerts.ReportTraffic, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleConductor))
	api.PATCH("/notifications/:id/resolve", h.Alerts.Resolve, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleCoordinator))

	// Conductor device.
	api.GET("/conductors/:id/assignment", h.Conductors.Assignment, middleware.JWTAuth(cfg.JWTSecret))
	api.GET("/conductors/:id/notifications", h.Conductors.Notifications, middleware.JWTAuth(cfg.JWTSecret))
	api.PATCH("/conductors/:id/status", h.Conductors.UpdateStatus, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleConductor))
	api.POST("/conductors/breakdown", h.Conductors.Breakdown, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleConductor))

	// AI engine.
	api.GET("/ai/recommendations", h.AI.Recommendations, cache)
	api.GET("/ai/recommendations/high", h.AI.HighPriority)
	api.GET("/ai/congestion", h.AI.CongestionAlerts)
	api.POST("/ai/apply", h.AI.ApplyAllocation, middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(session.RoleCoordinator))
}
