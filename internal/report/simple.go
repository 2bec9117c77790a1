package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// SimpleWriter outputs a plain text catalog for terminal display.
type SimpleWriter struct {
	baseWriter

	// showImages adds the image URL under each card.
	showImages bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithImages includes image URLs in the output.
func WithImages(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showImages = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the snapshot as text.
func (w *SimpleWriter) Write(snapshot *model.Snapshot) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, snapshot)
	w.writeCards(&sb, snapshot)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the title and the filter/count summary.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *model.Snapshot) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      THE RICK AND MORTY API\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Filter:           %s\n", s.Filter)
	fmt.Fprintf(sb, "Total Characters: %d\n", s.TotalCount)
	fmt.Fprintf(sb, "Showing:          %d of %d (%s)\n", len(s.Cards), s.CharacterCount, locationLabel(s))
	if pending := s.PendingCount(); pending > 0 {
		fmt.Fprintf(sb, "Pending:          %d first appearance(s) not resolved\n", pending)
	}
	sb.WriteString("\n")
}

// writeCards writes one block per card.
func (w *SimpleWriter) writeCards(sb *strings.Builder, s *model.Snapshot) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	if len(s.Cards) == 0 {
		sb.WriteString("No characters match the current filter.\n")
		return
	}

	for _, c := range s.Cards {
		fmt.Fprintf(sb, "#%-4d %s\n", c.ID, c.Name)
		fmt.Fprintf(sb, "      %s\n", c.Species)
		fmt.Fprintf(sb, "      Last Known Location: %s\n", locationText(c))
		fmt.Fprintf(sb, "      First Seen In:       %s\n", c.FirstSeenIn)
		fmt.Fprintf(sb, "      Status:              %s [%s]\n", c.Status, c.StatusColor)
		if w.showImages && c.Image != "" {
			fmt.Fprintf(sb, "      Image:               %s\n", c.Image)
		}
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
	}
}

// locationText renders a card's location with its URL when drillable.
func locationText(c model.Card) string {
	if c.LocationURL == "" {
		return c.LocationName
	}
	return fmt.Sprintf("%s <%s>", c.LocationName, c.LocationURL)
}
