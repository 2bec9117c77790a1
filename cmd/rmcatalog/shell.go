package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/report"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/view"
)

const shellPrompt = "rmcatalog> "

const shellHelp = `Commands:
  show                      render the current view
  filter <all|alive|dead>   change the status filter
  location <url|id>         show the residents of a location URL, or of the
                            location of the character with this id
  enrich                    resolve first appearances now and render
  reset                     reload the first page and clear filter and location
  help                      show this help
  quit                      leave the shell`

// NewShellCmd creates the shell command.
func NewShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Browse the catalog interactively",
		Long: `Shell loads the first listing page and reads commands line by line.

First appearances are resolved in the background, so "show" right after a
load or a location change may still print "Loading..." for some
characters. "enrich" resolves them before rendering.

` + shellHelp,
		Args: cobra.NoArgs,
		RunE: runShellCmd,
	}

	addCatalogFlags(cmd)

	return cmd
}

// runShellCmd executes the shell command.
func runShellCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)
	ctx, stop := signalContext(cmd.Context(), logger)
	defer stop()

	cat, err := newCatalog(cfg, logger)
	if err != nil {
		return err
	}
	if err := cat.controller.Load(ctx); err != nil {
		return fmt.Errorf("failed to load characters: %w", err)
	}
	defer cat.controller.Wait()

	sh := &shell{
		controller: cat.controller,
		logger:     logger,
		in:         cmd.InOrStdin(),
		out:        cmd.OutOrStdout(),
	}
	return sh.run(ctx)
}

// shell is a line-oriented front end for a view controller.
type shell struct {
	controller *view.Controller
	logger     *slog.Logger
	in         io.Reader
	out        io.Writer
}

// errQuit ends the read loop without an error.
var errQuit = errors.New("quit")

// run reads commands until EOF, quit or cancellation.
func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, `Type "help" for commands.`)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := s.exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// exec runs one command line.
func (s *shell) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "show", "ls":
		return s.show()
	case "filter":
		if len(args) != 1 {
			return errors.New("usage: filter <all|alive|dead>")
		}
		f := s.controller.SetFilter(args[0])
		fmt.Fprintf(s.out, "Filter: %s\n", f)
		return s.show()
	case "location", "loc":
		if len(args) != 1 {
			return errors.New("usage: location <url|character-id>")
		}
		return s.location(ctx, args[0])
	case "enrich":
		index := s.controller.Enrich(ctx)
		fmt.Fprintf(s.out, "Resolved %d first appearances\n", len(index))
		return s.show()
	case "reset":
		if err := s.controller.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "View reset")
		return s.show()
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (type help)", name)
	}
}

// location drills into target, which is a location URL or the id of a
// character in the current view.
func (s *shell) location(ctx context.Context, target string) error {
	locationURL := target
	if id, err := strconv.Atoi(target); err == nil {
		ref, err := s.controller.LocationOf(id)
		if err != nil {
			return err
		}
		locationURL = ref.URL
	}

	if err := s.controller.SelectLocation(ctx, locationURL); err != nil {
		return err
	}
	return s.show()
}

// show renders the current snapshot as text.
func (s *shell) show() error {
	_, err := report.NewSimpleWriter(s.out).Write(s.controller.Snapshot())
	return err
}
