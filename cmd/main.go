package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"heatman/internal/config"
	"heatman/internal/handlers"
	"heatman/internal/logger"
	"heatman/internal/metrics"
	"heatman/internal/models"
	"heatman/internal/remote"
	"heatman/internal/repository"
	"heatman/internal/repository/db"
	"heatman/internal/server"
	"heatman/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        heatman
// @version      1.0
// @description  Heater controller: reconciles a smart plug against room metrics and presence.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml and HEATMAN_* overrides
	settings, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(settings.LogLevel)

	// open the configuration store
	repos, closeStore, err := openRepository(settings, log)
	if err != nil {
		log.Fatalw("failed to open config store", "err", err)
	}
	defer closeStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	heaterCfg, err := repository.LoadOrDefault(ctx, repos.Config)
	if err != nil {
		log.Fatalw("failed to load heater config", "err", err)
	}
	logHeaterConfig(log, heaterCfg)

	// wire dependencies
	deps, err := newDeps(settings)
	if err != nil {
		log.Fatalw("failed to build remote clients", "err", err)
	}
	recorder := metrics.New()
	deps.Observer = recorder

	state := service.NewControllerState(heaterCfg)
	services := service.NewService(repos, state, deps, service.ReconcilerOptions{
		Interval:        settings.Heater.Interval,
		ProbeWhenForced: settings.Heater.ProbeWhenForced,
	}, log)
	apiHandler := handlers.NewHandler(services, log.Named("http"), handlers.Options{
		JWTSecret: settings.Auth.JWTSecret,
		Metrics:   recorder.Handler(),
	})

	// start the control loop
	loopDone := make(chan struct{})
	go func() {
		services.Run(ctx)
		close(loopDone)
	}()

	// start HTTP server
	srv := server.New(apiHandler.InitRoutes())
	runHTTPServer(srv, settings.Port, log)

	// graceful shutdown
	waitForShutdown(cancel, loopDone, srv, log)
}

func openRepository(s *config.Settings, log *logger.Logger) (*repository.Repository, func(), error) {
	if s.Storage.Driver != config.StorageSQLite {
		log.Infow("using config file", "path", s.Heater.ConfigPath)
		return repository.NewFileRepository(s.Heater.ConfigPath), func() {}, nil
	}

	log.Infow("using sqlite config store", "path", s.Storage.DBPath)
	conn, err := db.InitDB(s.Storage.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewSQLiteRepository(conn), func() { closeDB(conn, log) }, nil
}

func closeDB(conn *sql.DB, log *logger.Logger) {
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}

func newDeps(s *config.Settings) (service.Deps, error) {
	ip, err := s.PresenceIP()
	if err != nil {
		return service.Deps{}, err
	}
	client := &http.Client{Timeout: s.HTTPClient.Timeout}
	pinger := remote.NewICMPPinger(s.Presence.Timeout, s.Presence.Privileged)

	return service.Deps{
		Metrics:  remote.NewMetricGateway(s.MetricsSource.URL, client),
		Presence: remote.NewPresenceProbe(ip, s.Presence.LockURL, pinger, client),
		Plug:     remote.NewPlugClient(s.Plug.URL, s.Plug.SwitchID, client),
	}, nil
}

func logHeaterConfig(log *logger.Logger, cfg models.HeaterConfig) {
	co2 := "none"
	if cfg.CO2Target != nil {
		co2 = strconv.Itoa(*cfg.CO2Target)
	}
	log.Infow("heater_config_loaded",
		"master_switch", cfg.MasterSwitch,
		"force", cfg.Force,
		"target_temp", cfg.TargetTemp,
		"co2_target", co2,
	)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, log *logger.Logger) {
	go func() {
		if err := srv.Run(port); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	if addr := srv.Addr(); addr != nil {
		log.Infow("listening", "addr", addr.String())
	}
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, loopDone <-chan struct{}, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the control loop
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	select {
	case <-loopDone:
	case <-ctx.Done():
		log.Warnw("control loop did not stop in time")
	}
}
