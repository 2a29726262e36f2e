package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcfadden20/Swim-meet-timer/internal/bootstrap"
	"github.com/mcfadden20/Swim-meet-timer/internal/concurrency"
	"github.com/mcfadden20/Swim-meet-timer/internal/config"
	"github.com/mcfadden20/Swim-meet-timer/internal/database"
	"github.com/mcfadden20/Swim-meet-timer/internal/ledger"
	"github.com/mcfadden20/Swim-meet-timer/internal/results"
	"github.com/mcfadden20/Swim-meet-timer/internal/server"
	"github.com/mcfadden20/Swim-meet-timer/internal/snapshot"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg, newLoggerConfig(cfg))
	if err != nil {
		return err
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		if !cfg.IsDevelopment() {
			return err
		}
		slog.Warn("Environment validation failed, continuing in development", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.PoolSettings())
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return err
	}
	repos := bootstrap.InitializeRepositories(dbPool)

	writer := snapshot.NewWriter(cfg.MeetDataDir, concurrency.NewLockManager())
	if err := writer.CheckDataRoot(); err != nil {
		dbPool.Close()
		return fmt.Errorf("%s: %w", bootstrap.ErrMsgDataDirUnusable, err)
	}

	ingestion, err := bootstrap.StartIngestion(ctx, cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	resultsSvc := results.NewService(repos.Meets, repos.Results, writer)
	ledgerSvc := ledger.NewService(repos.Meets, repos.Receipts, ledger.Config{
		DataRoot:          cfg.MeetDataDir,
		CacheSize:         cfg.AuthCacheSize,
		CacheTTL:          cfg.AuthCacheTTL,
		FailuresPerMinute: cfg.AuthFailuresPerMinute,
	})

	srv := server.NewServer(cfg.Port, server.Dependencies{
		DB:             dbPool,
		DataDir:        writer,
		Status:         ingestion.Ingestor,
		Results:        resultsSvc,
		Ledger:         ledgerSvc,
		TrustedProxies: cfg.TrustedProxies,
		RequestLimit:   cfg.RequestLimit,
		RequestWindow:  cfg.RequestWindow,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Ingestion: ingestion,
		DB:        dbPool,
	})
	return err
}
