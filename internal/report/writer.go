package report

import (
	"fmt"
	"io"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// Writer renders a snapshot to its destination.
type Writer interface {
	// Write outputs the snapshot and returns the number of bytes written.
	Write(snapshot *model.Snapshot) (int, error)
}

// Format selects a Writer implementation.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// NewWriter returns the Writer for format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewSimpleWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// locationLabel returns the heading for the character set on display.
func locationLabel(s *model.Snapshot) string {
	if s.SelectedLocation == "" {
		return "All characters (page 1)"
	}
	return "Residents of " + s.SelectedLocation
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
