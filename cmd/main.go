package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "pumpjack_simulator/docs"
	"pumpjack_simulator/internal/bridge"
	"pumpjack_simulator/internal/config"
	"pumpjack_simulator/internal/engine"
	"pumpjack_simulator/internal/handlers"
	"pumpjack_simulator/internal/logger"
	"pumpjack_simulator/internal/metrics"
	"pumpjack_simulator/internal/repository"
	"pumpjack_simulator/internal/repository/db"
	"pumpjack_simulator/internal/server"
	"pumpjack_simulator/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       Pumpjack Simulator API
// @version                     1.0
// @description                 Simulated beam pump unit: control, live state and event log.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml, .env and PUMPJACK_* overrides
	cfg, err := config.Load("configs", ".env")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	// open DB
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer closeDB(sqlDB, log)

	// build the engine
	var opts []engine.Option
	if cfg.Simulation.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Simulation.Seed))
	}
	eng, err := engine.New(cfg.Limits, opts...)
	if err != nil {
		log.Fatalw("failed to build engine", "err", err)
	}
	runner := service.NewRunner(eng)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	exporter := metrics.NewExporter(log.Component("metrics"))
	sinks := []service.SnapshotSink{exporter}

	var mqttBridge *bridge.Bridge
	if cfg.MQTT.Enabled {
		pump := service.NewPumpService(runner, repos.StateRepo, repos.EventRepo)
		mqttBridge, err = bridge.New(cfg.MQTT, pump, log.Component("mqtt"))
		if err != nil {
			log.Fatalw("invalid mqtt bridge config", "err", err)
		}
		if err := mqttBridge.Connect(ctx, cfg.MQTT); err != nil {
			log.Errorw("mqtt connect failed; bridge stays idle", "err", err, "broker", cfg.MQTT.Broker)
		}
		sinks = append(sinks, mqttBridge)
	}

	services := service.NewService(repos, runner, service.AuthConfig{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
	}, log.Component("simulator"), sinks...)

	if err := services.Simulator.Restore(ctx); err != nil {
		log.Errorw("failed to restore pump state; starting fresh", "err", err)
	}
	if cfg.Simulation.Autostart {
		if err := services.Pump.Start(ctx); err != nil {
			log.Errorw("autostart failed", "err", err)
		}
	}

	apiHandler := handlers.NewHandler(services, exporter.Handler(), log.Component("http"))

	// start simulator (via composed service)
	go services.Simulator.Run(ctx, cfg.Simulation.Tick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, mqttBridge, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, server.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, b *bridge.Bridge, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()
	if b != nil {
		b.Close()
	}

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

func closeDB(sqlDB *sql.DB, log *logger.Logger) {
	if err := sqlDB.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}
