// Meal Cycle API
//
// REST API for postprandial glucose sampling cycles.
//
//	@title			Meal Cycle API
//	@version		1.0
//	@description	Track postprandial glucose sampling cycles with offline-first sync.
//
//	@BasePath	/v1
//
//	@tag.name			profile
//	@tag.description	Cycle profile
//
//	@tag.name			cycle
//	@tag.description	Active meal cycle endpoints
//
//	@tag.name			cycles
//	@tag.description	Past meal cycles
//
//	@tag.name			sync
//	@tag.description	Mutation queue and connectivity
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/meal-cycle/internal/api"
	"github.com/blaisecz/meal-cycle/internal/api/handler"
	"github.com/blaisecz/meal-cycle/internal/config"
	"github.com/blaisecz/meal-cycle/internal/localstore"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/internal/metrics"
	"github.com/blaisecz/meal-cycle/internal/notify"
	"github.com/blaisecz/meal-cycle/internal/repository"
	"github.com/blaisecz/meal-cycle/internal/seed"
	"github.com/blaisecz/meal-cycle/internal/session"
	"github.com/blaisecz/meal-cycle/internal/telemetry"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Dir: cfg.LogDir}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "meal-cycle-api")
	if err != nil {
		logger.Fatal("Failed to initialize tracer", "error", err)
	}
	defer shutdownTracer(context.Background())

	profile, err := config.LoadProfile(cfg)
	if err != nil {
		logger.Fatal("Failed to load cycle profile", "error", err)
	}
	logger.Info("Cycle profile loaded", "profile", profile.String())

	ownerID, err := uuid.Parse(cfg.OwnerID)
	if err != nil {
		logger.Fatal("Invalid OWNER_ID", "error", err)
	}

	// Connect to database. The connection is lazy so the agent starts offline.
	db, err := config.NewDatabase(cfg)
	if err != nil {
		logger.Fatal("Invalid database configuration", "error", err)
	}
	cycleRepo := repository.NewCycleRepository(db)

	// Schema migration and seeding run once the database is first reachable.
	prepare := func(ctx context.Context) error {
		if err := repository.Migrate(db.WithContext(ctx)); err != nil {
			return err
		}
		logger.Info("Database migration completed")
		if cfg.Seed {
			logger.Info("Seeding database with sample cycles (SEED=true)")
			if err := seed.Run(ctx, cycleRepo, ownerID, profile, time.Now().UTC()); err != nil {
				logger.Warn("Failed to seed database", "error", err)
			}
		}
		return nil
	}

	local, err := localstore.Open(cfg.QueueDBPath)
	if err != nil {
		logger.Fatal("Failed to open local queue", "path", cfg.QueueDBPath, "error", err)
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	notifier := notify.Multi{notify.NewConsole(nil, true)}
	if cfg.NATSURL != "" {
		natsNotifier, err := notify.DialNATS(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			logger.Warn("NATS unavailable, alerts stay local", "url", cfg.NATSURL, "error", err)
		} else {
			defer natsNotifier.Close()
			notifier = append(notifier, natsNotifier)
		}
	}

	clock := clockwork.NewRealClock()
	sess, err := session.New(session.Options{
		OwnerID:       ownerID,
		Profile:       profile,
		Local:         local,
		Remote:        cycleRepo,
		Notifier:      notifier,
		Clock:         clock,
		Recorder:      recorder,
		Migrate:       prepare,
		TickInterval:  cfg.TickInterval,
		FlushInterval: cfg.FlushInterval,
		ProbeInterval: cfg.ProbeInterval,
	})
	if err != nil {
		logger.Fatal("Failed to create session", "error", err)
	}
	if err := sess.Start(ctx); err != nil {
		logger.Fatal("Failed to start session", "error", err)
	}

	// Initialize handlers
	cycleHandler := handler.NewCycleHandler(sess.Cycles(), clock)
	syncHandler := handler.NewSyncHandler(sess)

	// Setup router
	router := api.NewRouter(cycleHandler, syncHandler, recorder.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if err := sess.Close(); err != nil {
		logger.Error("Session shutdown failed", "error", err)
	}
}
