// Command httpd runs the fake job posting detector HTTP service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jobtegrity/detector/internal/api"
	"github.com/jobtegrity/detector/internal/config"
	"github.com/jobtegrity/detector/internal/database"
	"github.com/jobtegrity/detector/internal/detector"
	"github.com/jobtegrity/detector/internal/logging"
	"github.com/jobtegrity/detector/internal/metrics"
	"github.com/jobtegrity/detector/internal/model"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("JOBTEGRITY_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	m := metrics.New()

	var history *database.HistoryRepository
	if cfg.HistoryDBPath != "" {
		db, dbErr := database.NewSQLiteConnection(cfg.HistoryDBPath)
		if dbErr != nil {
			return fmt.Errorf("open history database: %w", dbErr)
		}
		defer db.Close()

		history = database.NewHistoryRepository(db)
		if migrateErr := history.Migrate(context.Background()); migrateErr != nil {
			return fmt.Errorf("migrate history database: %w", migrateErr)
		}
		logger.Info("prediction history enabled", zap.String("path", cfg.HistoryDBPath))
	}

	det := detector.New(logger, model.BackendLoader(cfg.ModelPath))
	handler := api.NewHandler(det, history, m, logging.NewAdapter(logger))
	server := api.NewServer(handler, m, api.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Debug:        cfg.Debug,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()
	logger.Info("detector http server started",
		zap.Int("port", cfg.Port),
		zap.String("model_path", cfg.ModelPath),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
