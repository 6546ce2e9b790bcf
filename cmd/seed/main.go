// Command seed creates the database schema and loads a small demo
// dataset: three users (one per role), the Bengaluru demo routes, a
// handful of buses, and the conductor's duty assignment.  Running it
// twice is safe; existing rows are replaced.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/IRX358/RouteSaathi-2.0/internal/config"
	"github.com/IRX358/RouteSaathi-2.0/internal/database"
	"github.com/IRX358/RouteSaathi-2.0/internal/model"
	"github.com/IRX358/RouteSaathi-2.0/internal/utils"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(16) PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL,
		bus_id VARCHAR(16) NULL,
		route_id VARCHAR(16) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id VARCHAR(16) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		stops JSON NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS buses (
		id VARCHAR(16) PRIMARY KEY,
		route_id VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		lat DOUBLE NOT NULL,
		lng DOUBLE NOT NULL,
		speed VARCHAR(16) NOT NULL,
		occupancy_percent INT NOT NULL,
		last_stop VARCHAR(128) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		tid VARCHAR(16) PRIMARY KEY,
		bus_id VARCHAR(16) NOT NULL,
		route_id VARCHAR(16) NOT NULL,
		from_stop VARCHAR(128) NOT NULL,
		to_stop VARCHAR(128) NOT NULL,
		fare INT NOT NULL,
		issued_at DATETIME NOT NULL,
		INDEX idx_tickets_route (route_id),
		INDEX idx_tickets_bus (bus_id)
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id VARCHAR(16) PRIMARY KEY,
		created_at DATETIME NOT NULL,
		sender VARCHAR(128) NOT NULL,
		type VARCHAR(16) NOT NULL,
		priority VARCHAR(16) NOT NULL,
		message TEXT NOT NULL,
		status VARCHAR(16) NOT NULL,
		lat DOUBLE NULL,
		lng DOUBLE NULL,
		bus_id VARCHAR(16) NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assignments (
		conductor_id VARCHAR(16) PRIMARY KEY,
		bus_number VARCHAR(16) NOT NULL,
		route_id VARCHAR(16) NOT NULL,
		route_name VARCHAR(255) NOT NULL,
		start_time VARCHAR(16) NOT NULL,
		end_time VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL
	)`,
}

type seedUser struct {
	id, name, email, password, role, busID, routeID string
}

var users = []seedUser{
	{"U001", "Priya Sharma", "coordinator@routesaathi.com", "coord123", "coordinator", "", ""},
	{"U002", "Ramesh Kumar", "conductor@routesaathi.com", "cond123", "conductor", "KA01-F-1234", "335E"},
	{"U003", "Anita Desai", "commuter@routesaathi.com", "commute123", "commuter", "", ""},
}

var routes = []model.Route{
	{ID: "335E", Name: "Majestic - Electronic City", Stops: []string{"Majestic", "BTM Layout", "Silk Board", "HSR Layout", "Electronic City"}},
	{ID: "500D", Name: "Hebbal - Silk Board", Stops: []string{"Hebbal", "Mekhri Circle", "MG Road", "Koramangala", "Silk Board"}},
	{ID: "G4", Name: "Yeshwanthpur - Jayanagar", Stops: []string{"Yeshwanthpur", "Malleshwaram", "Majestic", "Lalbagh", "Jayanagar"}},
}

var buses = []model.Bus{
	{ID: "KA01-F-1234", RouteID: "335E", Status: model.BusMoving, Lat: 12.9716, Lng: 77.5946, Speed: "32km/h", OccupancyPercent: 65, LastStop: "Silk Board"},
	{ID: "KA01-F-5678", RouteID: "335E", Status: model.BusMoving, Lat: 12.9352, Lng: 77.6245, Speed: "28km/h", OccupancyPercent: 82, LastStop: "BTM Layout"},
	{ID: "KA02-G-1111", RouteID: "500D", Status: model.BusIdle, Lat: 13.0358, Lng: 77.5970, Speed: "0km/h", OccupancyPercent: 20, LastStop: "Hebbal"},
	{ID: "KA02-G-2222", RouteID: "500D", Status: model.BusMoving, Lat: 12.9757, Lng: 77.6050, Speed: "25km/h", OccupancyPercent: 45, LastStop: "MG Road"},
	{ID: "KA03-H-3333", RouteID: "G4", Status: model.BusMoving, Lat: 13.0280, Lng: 77.5400, Speed: "30km/h", OccupancyPercent: 55, LastStop: "Malleshwaram"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		cfg.DBMaxConns, time.Duration(cfg.DBConnTTLMin)*time.Minute)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}

	seedUsers(ctx, db, cfg.BcryptCost)
	seedRoutes(ctx, db)
	seedBuses(ctx, db)
	seedAssignment(ctx, db)

	log.Println("seed complete")
}

func seedUsers(ctx context.Context, db *sql.DB, cost int) {
	for _, u := range users {
		hash, err := utils.HashPassword(u.password, cost)
		if err != nil {
			log.Fatalf("hash password for %s: %v", u.email, err)
		}
		var busID, routeID any
		if u.busID != "" {
			busID = u.busID
		}
		if u.routeID != "" {
			routeID = u.routeID
		}
		if _, err := db.ExecContext(ctx,
			`REPLACE INTO users (id,name,email,password_hash,role,bus_id,route_id) VALUES (?,?,?,?,?,?,?)`,
			u.id, u.name, u.email, hash, u.role, busID, routeID); err != nil {
			log.Fatalf("seed user %s: %v", u.email, err)
		}
	}
	log.Printf("seeded %d users", len(users))
}

func seedRoutes(ctx context.Context, db *sql.DB) {
	for _, rt := range routes {
		stops, err := json.Marshal(rt.Stops)
		if err != nil {
			log.Fatalf("marshal stops for %s: %v", rt.ID, err)
		}
		if _, err := db.ExecContext(ctx,
			`REPLACE INTO routes (id,name,stops) VALUES (?,?,?)`,
			rt.ID, rt.Name, stops); err != nil {
			log.Fatalf("seed route %s: %v", rt.ID, err)
		}
	}
	log.Printf("seeded %d routes", len(routes))
}

func seedBuses(ctx context.Context, db *sql.DB) {
	for _, b := range buses {
		if _, err := db.ExecContext(ctx,
			`REPLACE INTO buses (id,route_id,status,lat,lng,speed,occupancy_percent,last_stop) VALUES (?,?,?,?,?,?,?,?)`,
			b.ID, b.RouteID, b.Status, b.Lat, b.Lng, b.Speed, b.OccupancyPercent, b.LastStop); err != nil {
			log.Fatalf("seed bus %s: %v", b.ID, err)
		}
	}
	log.Printf("seeded %d buses", len(buses))
}

func seedAssignment(ctx context.Context, db *sql.DB) {
	if _, err := db.ExecContext(ctx,
		`REPLACE INTO assignments (conductor_id,bus_number,route_id,route_name,start_time,end_time,status) VALUES (?,?,?,?,?,?,?)`,
		"U002", "KA01-F-1234", "335E", "Majestic - Electronic City", "06:30 AM", "02:30 PM", "ACTIVE"); err != nil {
		log.Fatalf("seed assignment: %v", err)
	}
	log.Println("seeded conductor assignment")
}
