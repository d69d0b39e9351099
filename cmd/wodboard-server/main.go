package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/wodboard/wodboard/internal/api"
	"github.com/wodboard/wodboard/internal/config"
	"github.com/wodboard/wodboard/internal/database"
	"github.com/wodboard/wodboard/internal/realtime"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

// main is the entry point for the WODBoard backend server.
func main() {
	// A .env file is a convenience for development; production deployments
	// set real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, using environment variables from the system.")
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("FATAL: Failed to load application configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DbPath, 0755); err != nil {
		log.Fatalf("FATAL: Failed to create database directory at %s: %v", cfg.DbPath, err)
	}

	log.Println("INFO: Application directories verified.")

	// The broker fans score-submission notifications out to connected
	// leaderboard views.
	broker := realtime.NewBroker()

	dbService, err := database.NewService(filepath.Join(cfg.DbPath, "wodboard.db"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database service: %v", err)
	}
	defer dbService.Close()

	log.Println("INFO: Database service initialized successfully.")

	// Creates tables if missing and seeds the event catalog; idempotent,
	// safe on every startup.
	if err := dbService.Init(); err != nil {
		log.Fatalf("FATAL: Failed to initialize database schema: %v", err)
	}

	log.Println("INFO: Database schema and event catalog verified.")

	serverAPI := api.NewServer(cfg, dbService, broker)

	router := chi.NewRouter()
	serverAPI.RegisterRoutes(router)

	log.Println("INFO: API routes registered.")

	log.Printf("INFO: WODBoard server starting on %s (competition year %d)", cfg.ServerAddr, cfg.CompetitionYear)

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		log.Fatalf("FATAL: Failed to start server: %v", err)
	}
}
