package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rpggio/outbreakwatch/internal/apiclient"
	"github.com/rpggio/outbreakwatch/internal/config"
	"github.com/rpggio/outbreakwatch/internal/patch"
	"github.com/rpggio/outbreakwatch/internal/telemetry"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	a := &app{}
	root := newRootCmd(a)
	if err := root.Execute(); err != nil {
		a.reportError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// app carries the global flags and the state built from them.
type app struct {
	configPath   string
	baseURL      string
	apiKey       string
	keyPlacement string
	logLevel     string

	cfg     config.Config
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "outbreakwatch",
		Short: "Client for the OutbreakWatch outbreak tracking API",
		Long: `outbreakwatch reads and edits outbreaks, facilities and case statistics
through the OutbreakWatch REST API, prints the dashboard overview, and can
serve the same operations as MCP tools.

Results are printed as JSON on stdout; logs go to stderr.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file (default $OUTBREAKWATCH_CONFIG_PATH)")
	flags.StringVar(&a.baseURL, "base-url", "", "API base URL (default $OUTBREAKWATCH_API_BASE_URL)")
	flags.StringVar(&a.apiKey, "api-key", "", "API key (default $OUTBREAKWATCH_API_KEY)")
	flags.StringVar(&a.keyPlacement, "key-placement", "", "send the API key as a header or query parameter")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newOutbreaksCmd(a),
		newFacilitiesCmd(a),
		newCaseStatsCmd(a),
		newOverviewCmd(a),
		newMCPCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.API.BaseURL = a.baseURL
	}
	if flags.Changed("api-key") {
		cfg.API.Key = a.apiKey
	}
	if flags.Changed("key-placement") {
		cfg.API.KeyPlacement = a.keyPlacement
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	a.cfg = cfg
	return nil
}

// client builds the API client from the loaded configuration.
func (a *app) client() (*apiclient.Client, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	placement, err := apiclient.ParseKeyPlacement(a.cfg.API.KeyPlacement)
	if err != nil {
		return nil, err
	}

	opts := []apiclient.Option{
		apiclient.WithAPIKey(a.cfg.API.Key),
		apiclient.WithKeyPlacement(placement),
		apiclient.WithUserAgent("outbreakwatch/" + version),
	}
	if a.metrics != nil {
		opts = append(opts, apiclient.WithHTTPClient(a.metrics.HTTPClient()))
	}
	opts = append(opts, apiclient.WithTimeout(a.cfg.API.Timeout))

	client, err := apiclient.New(a.cfg.API.BaseURL, opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("api client ready", "base_url", client.BaseURL(), "key_placement", placement, "authenticated", a.cfg.API.Key != "")
	return client, nil
}

// reportError logs a failed command with the details a user acts on.
func (a *app) reportError(w io.Writer, err error) {
	logger := a.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(w, nil))
	}

	var reqErr *apiclient.RequestError
	var validation *patch.ValidationError
	switch {
	case errors.As(err, &reqErr):
		logger.Error("request failed", "status", reqErr.StatusCode, "message", reqErr.Message, "method", reqErr.Method, "url", reqErr.URL)
	case errors.As(err, &validation):
		logger.Error("invalid value", "field", validation.Field, "input", validation.Input, "reason", validation.Reason)
	default:
		logger.Error("command failed", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("usage: "+format, args...)
}
