package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/summary"
)

// ResourceService defines the operations MCP needs for one resource kind.
type ResourceService[L, D, P any] interface {
	List(ctx context.Context) ([]L, error)
	Get(ctx context.Context, id int64) (*D, error)
	Create(ctx context.Context, payload P) (*D, error)
	Replace(ctx context.Context, id int64, payload P) error
	PatchField(ctx context.Context, id int64, field, raw string) (patch.Operation, error)
	Delete(ctx context.Context, id int64) error
	Fields() patch.Schema
}

type (
	OutbreakService = ResourceService[outbreak.ListItem, outbreak.Detail, outbreak.Payload]
	FacilityService = ResourceService[facility.Facility, facility.Facility, facility.Payload]
	CaseStatService = ResourceService[casestat.CaseStat, casestat.CaseStat, casestat.Payload]
)

// DashboardService computes the overview.
type DashboardService interface {
	Overview(ctx context.Context) (*summary.Overview, error)
}

// Services contains all client services needed by MCP.
type Services struct {
	Outbreaks  OutbreakService
	Facilities FacilityService
	CaseStats  CaseStatService
	Dashboard  DashboardService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Token         string // required bearer token in http mode; empty disables auth
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "outbreakwatch",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server, cfg.Services)

	// Stdio is local only and never authenticates.
	if cfg.TransportMode == "http" && cfg.Token != "" {
		server.AddReceivingMiddleware(authMiddleware(cfg.Token))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
