/*
main.go - Application entry point

PURPOSE:

	Initializes and starts the Proago CRM engine server.
	Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
 1. Load configuration (YAML file, .env, PROAGO_* environment)
 2. Apply command-line flags on top
 3. Initialize SQLite store
 4. Create API handler, optionally seed a demo scenario
 5. Start server with graceful shutdown

COMMAND-LINE FLAGS:

	-config  YAML configuration file (default: proago.yaml, optional)
	-addr    listen address (overrides addr / PROAGO_ADDR)
	-db      SQLite database path (overrides db_path / PROAGO_DB)
	         Use ":memory:" for in-memory database
	-seed    demo scenario to load at startup (overrides seed_scenario)

GRACEFUL SHUTDOWN:

	On SIGINT/SIGTERM:
	1. Stop accepting new connections
	2. Wait for active requests to complete (30s timeout)
	3. Close database connection

EXAMPLES:

	./server -db=":memory:" -seed=demo-season
	PROAGO_SNAPSHOT_RATES=true ./server -addr=:3000

SEE ALSO:
  - config/config.go: Configuration sources
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/proago/crm-engine/api"
	"github.com/proago/crm-engine/config"
	"github.com/proago/crm-engine/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "proago.yaml", "YAML configuration file")
	addr := flag.String("addr", "", "listen address")
	dbPath := flag.String("db", "", "SQLite database path")
	seed := flag.String("seed", "", "demo scenario to load at startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *seed != "" {
		cfg.SeedScenario = *seed
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(store, api.WithRateSnapshots(cfg.SnapshotRates))
	if cfg.SeedScenario != "" {
		if err := handler.Seed(context.Background(), cfg.SeedScenario); err != nil {
			log.Fatalf("Failed to seed: %v", err)
		}
		log.Printf("Loaded scenario %s", cfg.SeedScenario)
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewRouter(handler, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on %s (db: %s, rate snapshots: %t)", cfg.Addr, cfg.DBPath, cfg.SnapshotRates)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
