// Command server runs a local OutbreakWatch API backed by SQLite, for
// development against the outbreakwatch client and MCP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rpggio/outbreakwatch/internal/config"
	"github.com/rpggio/outbreakwatch/internal/repository"
	"github.com/rpggio/outbreakwatch/internal/sqlite"
	"github.com/rpggio/outbreakwatch/internal/transport"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Sandbox.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.Sandbox.DBPath); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.Sandbox.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	handler, err := newHandler(context.Background(), db, cfg.Sandbox.APIKey, logger)
	if err != nil {
		logger.Error("failed to register api key", "error", err)
		os.Exit(1)
	}

	addr := cfg.Sandbox.Addr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("sandbox api listening", "addr", addr, "db", cfg.Sandbox.DBPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// newHandler registers apiKey if the database does not know it yet and
// returns the API router.
func newHandler(ctx context.Context, db *sqlite.DB, apiKey string, logger *slog.Logger) (http.Handler, error) {
	keys := sqlite.NewAPIKeyRepository(db)
	err := keys.Verify(ctx, apiKey)
	if errors.Is(err, repository.ErrUnknownKey) {
		err = keys.Add(ctx, apiKey, "sandbox")
	}
	if err != nil {
		return nil, err
	}

	return transport.NewServer(transport.Repositories{
		Outbreaks:  sqlite.NewOutbreakRepository(db),
		Facilities: sqlite.NewFacilityRepository(db),
		CaseStats:  sqlite.NewCaseStatRepository(db),
	}, transport.APIKeyMiddleware(keys), logger), nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
