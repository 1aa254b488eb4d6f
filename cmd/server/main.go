package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"relocation_quest/internal/agent"
	"relocation_quest/internal/api"
	"relocation_quest/internal/config"
	"relocation_quest/internal/logging"
	"relocation_quest/internal/service"
	"relocation_quest/internal/session"
	"relocation_quest/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := logging.New("info", os.Stdout)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = logging.New(cfg.LogLevel, os.Stdout)

	if err := cfg.ValidateServer(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database", "host", postgres.HostOf(cfg.Database.DSN()))

	articleStore := postgres.NewArticleStore(db)
	destinationStore := postgres.NewDestinationStore(db)
	userDataStore := postgres.NewUserDataStore(db)
	userQueryStore := postgres.NewUserQueryStore(db)

	var searchAgent service.SearchAgent
	if cfg.Agent.URL != "" {
		searchAgent = agent.New(agent.Config{
			BaseURL:          cfg.Agent.URL,
			Timeout:          cfg.Agent.Timeout,
			MaxAttempts:      cfg.Agent.Retry.MaxAttempts,
			InitialBackoff:   cfg.Agent.Retry.InitialBackoff,
			MaxBackoff:       cfg.Agent.Retry.MaxBackoff,
			FailureThreshold: cfg.Agent.Breaker.FailureThreshold,
			OpenTimeout:      cfg.Agent.Breaker.OpenTimeout,
		}, logger)
	} else {
		logger.Warn("agent url not set, search served from database")
	}

	sessions, err := session.New(cfg.Auth)
	if err != nil {
		logger.Error("failed to configure sessions", "error", err)
		os.Exit(1)
	}
	if sessions == nil {
		logger.Warn("auth provider not set, profile routes will answer 503")
	}

	handler := api.NewHandler(
		service.NewContentService(articleStore, destinationStore, logger),
		service.NewUserService(userDataStore, userQueryStore, logger),
		service.NewSitemapService(articleStore, destinationStore, cfg.Site.BaseURL, logger),
		service.NewSearchService(searchAgent, articleStore, logger),
		db,
		logger,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "relocation_quest"),
	)

	e := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Handler:  handler,
		Sessions: sessions,
		Registry: registry,
		Debug:    cfg.Server.Debug,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting api server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
