package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/config"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/bootstrap"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/catalogue"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/engine"
	simhttp "github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/http"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/janitor"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/repository"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/service"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/storage/postgres"
)

const serviceName = "purple-team-sim"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New("api", logging.ParseLevel(cfg.App.LogLevel))
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	opts := []service.Option{service.WithLogger(logging.New("service", logging.ParseLevel(cfg.App.LogLevel)))}

	// Postgres is optional; without it reports are not archived and metric
	// history is not kept.
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		opts = append(opts,
			service.WithReportArchive(repository.NewReportRepository(db)),
			service.WithMetricHistory(repository.NewMetricsTimeseriesRepository(db)),
		)
		logger.LogInfof("startup", "report archive enabled")
	} else {
		logger.LogWarnf("startup", "no database configured, report archive disabled")
	}

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database, bootstrap.DBOptions{MaxConns: 4})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	if pool != nil {
		defer pool.Close()
	}

	if cfg.Simulation.ScenariosFile != "" {
		cat, err := catalogue.LoadFile(cfg.Simulation.ScenariosFile)
		if err != nil {
			log.Fatalf("scenarios: %v", err)
		}
		opts = append(opts, service.WithCatalogue(cat))
		logger.LogInfof("startup", "loaded %d scenarios from %s", cat.Len(), cfg.Simulation.ScenariosFile)
	}

	engCfg := engine.DefaultConfig()
	engCfg.TickInterval = cfg.Simulation.TickInterval
	engCfg.TickChance = cfg.Simulation.TickChance

	sessions, err := service.NewSessionService(service.Config{
		MaxSessions: cfg.Simulation.MaxSessions,
		IdleTTL:     cfg.Simulation.IdleTTL,
		Engine:      engCfg,
	}, repository.NewSessionRepository(rdb), opts...)
	if err != nil {
		log.Fatalf("session service: %v", err)
	}
	defer sessions.Close()

	sched, err := janitor.NewScheduler(cfg.Simulation.SweepSpec, sessions, logging.New("janitor", logging.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("janitor: %v", err)
	}
	sched.Start()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Redis:       rdb,
		DB:          pool,
		Sessions:    sessions,
		Limiter:     simhttp.NewRateLimiter(cfg.Simulation.RateLimit, cfg.Simulation.RateBurst),
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.LogInfof("startup", "listening on :%s (env=%s)", cfg.Server.Port, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError("listen", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.LogInfof("shutdown", "signal received, draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.LogError("shutdown", err)
	}
}
