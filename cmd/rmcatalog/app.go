package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/api"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/config"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/drilldown"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/enrich"
	rmlog "github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/log"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/report"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/view"
)

// catalog bundles the API client and the view controller built on it.
type catalog struct {
	client     *api.Client
	controller *view.Controller
}

// newCatalog wires the client, both engines and the controller from cfg.
func newCatalog(cfg *config.Config, logger *slog.Logger) (*catalog, error) {
	filter, _ := model.ParseFilter(cfg.Filter)

	opts := append(cfg.ClientOptions(), api.WithLogger(logger))
	client, err := api.NewClient(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	episodes := enrich.NewEngine(client,
		enrich.WithLogger(logger),
		enrich.WithConcurrency(cfg.Concurrency),
	)
	locations := drilldown.NewEngine(client,
		drilldown.WithLogger(logger),
		drilldown.WithConcurrency(cfg.Concurrency),
	)

	controller := view.NewController(client, episodes, locations,
		view.WithLogger(logger),
		view.WithFilter(filter),
	)

	return &catalog{client: client, controller: controller}, nil
}

// addCatalogFlags registers the flags shared by every command that talks
// to the API.
func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .rmcatalog in current or home directory)")
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"API base URL")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request (0 disables it)")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Maximum in-flight requests per pass (0 means unbounded)")
	cmd.Flags().StringP("proxy", "x", "",
		"SOCKS5 proxy address (host:port)")
	cmd.Flags().StringP("filter", "f", config.DefaultFilter,
		"Status filter: all, alive or dead")
}

// buildConfig layers defaults, the config file, the environment and the
// explicitly set flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly named file must exist; a searched-for one is optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(cf)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(env)

	if flags.Changed("base-url") {
		if cfg.BaseURL, err = flags.GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.Proxy, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("filter") {
		if cfg.Filter, err = flags.GetString("filter"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting logger used by every component.
// Configured custom header names are masked alongside the built-in ones.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	headerNames := make([]string, 0, len(cfg.Headers))
	for name := range cfg.Headers {
		headerNames = append(headerNames, name)
	}
	return rmlog.NewSecureLogger(w, cfg.Verbose, headerNames...)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// reportFormat maps the output flags to a report format.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// writeReport renders snap in the configured format to cfg.ReportFile,
// or to stdout when no file is set.
func writeReport(cfg *config.Config, snap *model.Snapshot, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer, err := report.NewWriter(reportFormat(cfg), output)
	if err != nil {
		return err
	}
	_, err = writer.Write(snap)
	return err
}
