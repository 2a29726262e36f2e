package bootstrap

import (
	"context"
	"log/slog"

	"github.com/mcfadden20/Swim-meet-timer/internal/database"
	"github.com/mcfadden20/Swim-meet-timer/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Ingestion *Ingestion
	DB        database.Pool
}

// GracefulShutdown stops the HTTP server first so no new mutations arrive,
// then background ingestion, then the database pool.
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Ingestion != nil {
		components.Ingestion.Stop()
	}

	if components.DB != nil {
		components.DB.Close()
	}

	slog.Info(LogMsgServerStopped)
}
