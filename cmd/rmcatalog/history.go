package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/config"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [snapshot-id]",
		Short: "List or re-render saved snapshots",
		Long: `History reads the snapshot log written by 'rmcatalog browse --save'.

Without an argument it lists saved snapshots, newest first. With a
snapshot ID it renders that snapshot again in the requested format.
Saved snapshots are never used to answer a live browse.

Examples:
  # List the 10 most recent snapshots
  rmcatalog history --limit 10

  # Render a saved snapshot as Markdown
  rmcatalog history 2b1f0c7e-6d0e-4b8e-9d59-0d3a1e4f5c11 --markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the snapshot log")
	cmd.Flags().IntP("limit", "n", 0,
		"Maximum number of snapshots to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false,
		"Render the snapshot as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Render the snapshot as Markdown (mutually exclusive with --json)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	cfg := config.NewConfig()
	var err error
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}

	// Reading history never creates the log.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved snapshots found.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'rmcatalog browse --save' to save one.")
		return nil
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 1 {
		snap, err := db.GetSnapshot(ctx, args[0])
		if err != nil {
			return err
		}
		return writeReport(cfg, snap, cmd.OutOrStdout())
	}

	return listSnapshots(ctx, db, limit, cmd.OutOrStdout())
}

// listSnapshots prints the snapshot log as a table.
func listSnapshots(ctx context.Context, db *database.SnapshotDB, limit int, out io.Writer) error {
	records, err := db.ListSnapshots(ctx, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No saved snapshots found.")
		fmt.Fprintln(out, "\nUse 'rmcatalog browse --save' to save one.")
		return nil
	}

	fmt.Fprintf(out, "Saved snapshots (%d):\n\n", len(records))
	fmt.Fprintf(out, "  %-36s  %-19s  %-6s  %-7s  %s\n", "ID", "Taken", "Filter", "Shown", "View")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 90))

	for _, rec := range records {
		viewLabel := "All characters"
		if rec.Location != "" {
			viewLabel = "Residents of " + rec.Location
		}
		fmt.Fprintf(out, "  %-36s  %-19s  %-6s  %-7s  %s\n",
			rec.ID,
			rec.TakenAt.Local().Format("2006-01-02 15:04:05"),
			rec.Filter,
			fmt.Sprintf("%d/%d", rec.ShownCount, rec.TotalCount),
			viewLabel,
		)
	}

	fmt.Fprintln(out, "\nUse 'rmcatalog history <id>' to render a snapshot.")
	return nil
}
