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

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/outbreakwatch/internal/dashboard"
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/mcp"
	"github.com/rpggio/outbreakwatch/internal/telemetry"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var (
		transport string
		host      string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the API operations as MCP tools",
		Long: `Serve the API operations as MCP tools over stdio (default) or streamable
HTTP. In HTTP mode /health is always served and /metrics when metrics are
enabled; set mcp.token to require a bearer token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("transport") {
				a.cfg.MCP.Transport = transport
			}
			if flags.Changed("host") {
				a.cfg.MCP.Host = host
			}
			if flags.Changed("port") {
				a.cfg.MCP.Port = port
			}
			if a.cfg.Metrics.Enabled {
				a.metrics = telemetry.New()
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			outbreaks := outbreak.NewService(client)
			facilities := facility.NewService(client)
			stats := casestat.NewService(client)

			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{
					Outbreaks:  outbreaks,
					Facilities: facilities,
					CaseStats:  stats,
					Dashboard:  dashboard.NewService(outbreaks, facilities, stats, a.logger),
				},
				Token:         a.cfg.MCP.Token,
				TransportMode: a.cfg.MCP.Transport,
				Version:       version,
				Logger:        a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.MCP.Transport == "http" {
				return runHTTPMode(ctx, a, server)
			}
			return runStdioMode(ctx, a.logger, server)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "stdio or http (default $OUTBREAKWATCH_MCP_TRANSPORT or stdio)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP listen host")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP listen port")
	return cmd
}

func runStdioMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTPMode(ctx context.Context, a *app, server *sdkmcp.Server) error {
	opts := mcp.HTTPOptions{}
	if a.metrics != nil {
		opts.Metrics = a.metrics.Handler()
	}

	httpServer := &http.Server{
		Addr:              a.cfg.MCP.Addr(),
		Handler:           mcp.NewHTTPHandler(server, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", httpServer.Addr, "auth", a.cfg.MCP.Token != "", "metrics", a.metrics != nil)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
