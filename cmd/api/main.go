// Package main is the entry point for the fleet reservation API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"

	"github.com/flotar/fleet-reserve/internal/booking"
	"github.com/flotar/fleet-reserve/internal/catalog"
	"github.com/flotar/fleet-reserve/internal/config"
	"github.com/flotar/fleet-reserve/internal/handler"
	"github.com/flotar/fleet-reserve/internal/jobs"
	"github.com/flotar/fleet-reserve/internal/middleware"
	"github.com/flotar/fleet-reserve/internal/notify"
	"github.com/flotar/fleet-reserve/internal/repo"
	"github.com/flotar/fleet-reserve/internal/service"
	"github.com/flotar/fleet-reserve/migrations"
)

// maxBodySize caps incoming request bodies. The largest legitimate payload is
// a reservation with a full attendee and lodging block, well under this.
const maxBodySize = 1 << 20 // 1 MiB

// Authoring sessions abandoned mid-pipeline are swept after an hour of
// inactivity.
const (
	flowSweepInterval = 10 * time.Minute
	flowMaxIdle       = time.Hour
)

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a local development convenience; in production the variables
	// come from the environment and the file simply does not exist.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// --- Wiring -----------------------------------------------------------
	// The corrected vehicle catalog is loaded once at startup; the fleet only
	// changes by migration, so a restart picks up new vehicles.
	rawVehicles, err := repo.NewVehicleRepo(pool).List(context.Background())
	if err != nil {
		slog.Error("failed to load vehicle fleet", "error", err)
		os.Exit(1)
	}
	fleet := catalog.New(rawVehicles, catalog.DefaultCorrections())
	slog.Info("vehicle catalog loaded", "vehicles", len(rawVehicles))

	emailSender := notify.NewEmailSender(
		cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName,
		cfg.HotelDeskEmail, logger)

	reservations := service.NewReservationService(
		fleet, repo.NewReservationRepo(pool), emailSender, logger)
	if err := reservations.Refresh(context.Background()); err != nil {
		slog.Error("failed to load reservations", "error", err)
		os.Exit(1)
	}

	// Background workers stop when ctx is cancelled at shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := repo.NewListener(pool, logger)
	go listener.Run(ctx)

	refreshSignals, unsubscribe := listener.Subscribe()
	defer unsubscribe()
	go reservations.Watch(ctx, refreshSignals)

	statsService := service.NewStatsService(reservations)
	flows := booking.NewFlows(reservations)
	go flows.Janitor(ctx, flowSweepInterval, flowMaxIdle)

	// --- Scheduled jobs ---------------------------------------------------
	scheduler := cron.New()
	reporter := jobs.NewUsageReporter(statsService, emailSender, cfg.ReportRecipient, logger)
	if err := reporter.Schedule(scheduler, cfg.ReportSchedule); err != nil {
		slog.Error("failed to schedule usage report", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → CORS →
	// body limit. Recoverer catches panics and returns HTTP 500 instead of
	// crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	server := handler.NewServer(
		reservations, statsService, flows, listener, catalog.Destinations(), logger)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout stays 0: /api/events holds its response open indefinitely.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests up
	// to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending migrations. Goose drives database/sql, so
// a short-lived stdlib connection is opened alongside the pgx pool.
func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	if len(results) > 0 {
		slog.Info("migrations applied", "count", len(results))
	}
	return nil
}
