package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/config"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/database"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Render the character catalog once",
		Long: `Browse loads the first listing page, waits until every character's first
episode is resolved and renders the result.

With --location the view switches to the residents of that location
before rendering. The status filter applies to whichever set is shown.

Examples:
  # Show the first page of characters
  rmcatalog browse

  # Only living characters, as Markdown
  rmcatalog browse --filter alive --markdown

  # Residents of Citadel of Ricks, as JSON, saved to the snapshot log
  rmcatalog browse -l https://rickandmortyapi.com/api/location/3 --json --save`,
		Args: cobra.NoArgs,
		RunE: runBrowseCmd,
	}

	addCatalogFlags(cmd)

	cmd.Flags().StringP("location", "l", "",
		"Show the residents of the location at this URL")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("save", "s", false,
		"Save the rendered snapshot to the snapshot log")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the snapshot log")

	return cmd
}

// runBrowseCmd executes the browse command.
func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBrowseConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)
	ctx, stop := signalContext(cmd.Context(), logger)
	defer stop()

	return runBrowse(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildBrowseConfig adds the browse-only flags to the shared config.
func buildBrowseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if cfg.Location, err = flags.GetString("location"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Save, err = flags.GetBool("save"); err != nil {
		return nil, err
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runBrowse loads the view, optionally drills into cfg.Location, waits
// for enrichment and writes one report.
func runBrowse(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	cat, err := newCatalog(cfg, logger)
	if err != nil {
		return err
	}
	controller := cat.controller

	logger.Debug("loading characters", "url", cat.client.ListingURL())
	if err := controller.Load(ctx); err != nil {
		return fmt.Errorf("failed to load characters: %w", err)
	}

	if cfg.Location != "" {
		if err := controller.SelectLocation(ctx, cfg.Location); err != nil {
			return fmt.Errorf("failed to open location: %w", err)
		}
	}

	// A one-shot render shows every first appearance, not the pending label.
	controller.Wait()

	snap := controller.Snapshot()
	if err := writeReport(cfg, snap, stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Save {
		id, err := saveSnapshot(ctx, cfg.DBDir, snap)
		if err != nil {
			return err
		}
		logger.Info("snapshot saved", "id", id, "dir", cfg.DBDir)
		fmt.Fprintf(stderr, "Snapshot saved: %s\n", id)
	}

	return nil
}

// saveSnapshot appends snap to the snapshot log in dbDir.
func saveSnapshot(ctx context.Context, dbDir string, snap *model.Snapshot) (string, error) {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveSnapshot(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return id, nil
}
