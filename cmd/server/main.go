package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/IRX358/RouteSaathi-2.0/internal/config"
	"github.com/IRX358/RouteSaathi-2.0/internal/database"
	"github.com/IRX358/RouteSaathi-2.0/internal/handler"
	"github.com/IRX358/RouteSaathi-2.0/internal/queue"
	"github.com/IRX358/RouteSaathi-2.0/internal/repository"
	"github.com/IRX358/RouteSaathi-2.0/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment
	// directly and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		cfg.DBMaxConns, time.Duration(cfg.DBConnTTLMin)*time.Minute)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: caching and rate limiting degrade to
	// pass-through when the client is nil.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	routes := repository.NewRouteRepo(db)
	buses := repository.NewBusRepo(db)
	tickets := repository.NewTicketRepo(db)
	alerts := repository.NewAlertRepo(db)
	assignments := repository.NewAssignmentRepo(db)

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users),
		Routes:     handler.NewRouteHandler(routes, buses, tickets),
		Buses:      handler.NewBusHandler(buses),
		Tickets:    handler.NewTicketHandler(cfg, tickets, routes, buses),
		Alerts:     handler.NewAlertHandler(alerts),
		Conductors: handler.NewConductorHandler(assignments, buses, alerts),
		AI:         handler.NewAIHandler(routes, buses, tickets, alerts),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, h, cfg, rdb)

	// Drain alert events in the background; the consumer reconnects on
	// its own if the broker goes away.
	go func() {
		if err := queue.StartAlertConsumer(); err != nil {
			log.Printf("alert consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
