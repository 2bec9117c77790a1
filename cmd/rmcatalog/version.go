package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/config"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// shortCommitLen is the number of revision characters shown.
const shortCommitLen = 7

// buildDetails describes the running binary.
type buildDetails struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// readBuildDetails resolves build details with ldflags taking priority
// over the module build info embedded by the Go toolchain.
func readBuildDetails() buildDetails {
	d := buildDetails{
		Version:   "(devel)",
		Commit:    "unknown",
		Date:      "unknown",
		GoVersion: runtime.Version(),
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" {
			d.Version = info.Main.Version
		}
		if rev := vcsSetting(info, "vcs.revision"); rev != "" {
			d.Commit = shortRevision(rev)
		}
		if t := vcsSetting(info, "vcs.time"); t != "" {
			d.Date = t
		}
	}

	if version != "" {
		d.Version = version
	}
	if commit != "" {
		d.Commit = commit
	}
	if date != "" {
		d.Date = date
	}
	return d
}

func vcsSetting(info *debug.BuildInfo, key string) string {
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func shortRevision(rev string) string {
	if len(rev) > shortCommitLen {
		return rev[:shortCommitLen]
	}
	return rev
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and default API of rmcatalog.`,
		Run: func(cmd *cobra.Command, _ []string) {
			d := readBuildDetails()
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, d.Version)
				return
			}
			fmt.Fprintf(out, "rmcatalog version %s\n", d.Version)
			fmt.Fprintf(out, "  commit: %s\n", d.Commit)
			fmt.Fprintf(out, "  built:  %s\n", d.Date)
			fmt.Fprintf(out, "  go:     %s\n", d.GoVersion)
			fmt.Fprintf(out, "  api:    %s\n", config.DefaultBaseURL)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
