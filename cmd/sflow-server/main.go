package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/easiio/sflow-server/pkg/api"
	"github.com/easiio/sflow-server/pkg/config"
	"github.com/easiio/sflow-server/pkg/observability"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	log := logrus.WithField("service", "sflow-server")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	server, err := api.NewServer(cfg, db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed and watch the runtime settings file if one is configured.
	if cfg.Auth.SettingsFile != "" {
		runtime := server.Runtime()
		if err := runtime.LoadFile(cfg.Auth.SettingsFile); err != nil {
			log.WithError(err).Warn("Failed to load settings file, using environment values")
		}
		if err := runtime.Watch(ctx, cfg.Auth.SettingsFile, log); err != nil {
			log.WithError(err).Fatal("Failed to watch settings file")
		}
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(log, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		cancel()
		return db.Close()
	})

	go func() {
		log.WithField("addr", httpServer.Addr).Info("Starting sflow server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	if err := shutdown.WaitForShutdown(); err != nil {
		log.WithError(err).Error("Shutdown finished with errors")
	}
}
