// Package main provides the HTTP/WebSocket server for rebuttal.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raphaelgruber/rebuttal-go/internal/config"
	"github.com/raphaelgruber/rebuttal-go/internal/db"
	"github.com/raphaelgruber/rebuttal-go/internal/history"
	"github.com/raphaelgruber/rebuttal-go/internal/llm"
	"github.com/raphaelgruber/rebuttal-go/internal/metrics"
	"github.com/raphaelgruber/rebuttal-go/internal/server"
	"github.com/raphaelgruber/rebuttal-go/internal/service"
	"github.com/raphaelgruber/rebuttal-go/internal/session"
)

func main() {
	wipeDB := flag.Bool("wipe", false, "wipe all data from database on startup (testing only)")
	configFile := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	var cfg config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
		if err != nil {
			slog.Error("failed to load config file", "error", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Load()
	}

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()
	slog.SetDefault(logger)

	logger.Info("starting rebuttal-server", "port", cfg.ServerPort, "provider", cfg.LLMProvider)

	collector := metrics.NewCollector()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	dbClient, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger, collector)
	if err != nil {
		cancel()
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := dbClient.InitSchema(ctx); err != nil {
		cancel()
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}
	if *wipeDB || os.Getenv("REBUTTAL_WIPE_DB") == "true" {
		if err := dbClient.WipeData(ctx); err != nil {
			cancel()
			logger.Error("failed to wipe database", "error", err)
			os.Exit(1)
		}
	}
	if _, err := dbClient.EnsureProfile(ctx, cfg.Profile); err != nil {
		cancel()
		logger.Error("failed to ensure profile", "error", err)
		os.Exit(1)
	}
	cancel()
	defer func() {
		if err := dbClient.Close(context.Background()); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	generator, err := llm.NewGenerator(cfg, collector)
	if err != nil {
		logger.Error("failed to create generator", "error", err)
		os.Exit(1)
	}

	gateway := history.NewGateway(dbClient, cfg.Profile, logger)
	debates := service.NewDebateService(session.NewStore(nil, nil), generator, gateway, logger)
	stats := service.NewStatsService(dbClient, collector)

	srv := server.New(debates, stats, cfg.Profile, cfg.ServerPort, logger)

	// Serve until interrupted.
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(runCtx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
