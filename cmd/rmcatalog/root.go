package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for rmcatalog.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rmcatalog",
		Short: "Browse the Rick and Morty character catalog",
		Long: `rmcatalog browses the character catalog of The Rick and Morty API.

It loads the first listing page, looks up the episode each character
first appeared in, filters by life status and drills into a location
to list the characters who live there.`,
		Version:       readBuildDetails().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewBrowseCmd())
	cmd.AddCommand(NewShellCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
