package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"manufacturing/cmd"
	apihttp "manufacturing/internal/adapters/in/http"
	"manufacturing/internal/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments pass MFG_ variables directly.
	_ = godotenv.Load(".env")

	cfg, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zl, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, cfg, zl)
	if err != nil {
		zl.Error("failed to build application", zap.Error(err))
		return err
	}
	defer func() {
		if closeErr := app.Close(context.Background()); closeErr != nil {
			zl.Error("failed to release resources", zap.Error(closeErr))
		}
	}()

	e, err := apihttp.NewRouter(apihttp.NewServer(app.HTTPHandlers(), zl), app.Metrics(), zl)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	jobManager := app.JobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		zl.Info("http server started", zap.String("port", cfg.HTTPPort))
		serverErr <- e.Start(":" + cfg.HTTPPort)
	}()

	select {
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
