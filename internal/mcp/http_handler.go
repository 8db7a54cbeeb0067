package mcp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HTTPOptions configures the HTTP transport.
type HTTPOptions struct {
	// Metrics is mounted at /metrics when set.
	Metrics        http.Handler
	SessionTimeout time.Duration
}

// NewHTTPHandler serves the MCP server over streamable HTTP at /mcp
// alongside /health.
func NewHTTPHandler(server *sdkmcp.Server, opts HTTPOptions) http.Handler {
	timeout := opts.SessionTimeout
	if timeout == 0 {
		timeout = 30 * time.Minute
	}

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: timeout,
		},
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/mcp", mcpHandler)
	r.Handle("/mcp/*", mcpHandler)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	return r
}
