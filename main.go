// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/fivefourventures/vendor-survey/cliparse"
	"github.com/fivefourventures/vendor-survey/db"
	"github.com/fivefourventures/vendor-survey/middleware"
	"github.com/fivefourventures/vendor-survey/notify"
	"github.com/fivefourventures/vendor-survey/router"
	"github.com/fivefourventures/vendor-survey/store"
	"github.com/fivefourventures/vendor-survey/survey"
)

func main() {
	var err error

	// Load .env if present; real env variables win
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded configuration from .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the database (sqlite by default, postgres in production)
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if driver == "sqlite" {
		// sqlite serializes writers; a single pooled connection avoids
		// SQLITE_BUSY under concurrent requests
		dbConn.SetMaxOpenConns(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", driver)

	// Wire the stack
	st := store.New(dbConn, cfg.FallbackPath)
	notifier := notify.New(cfg)
	flow := survey.New(st, st, notifier)

	// Create router
	mux := router.NewRouter(st, flow, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
