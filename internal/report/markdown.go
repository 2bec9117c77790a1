package report

import (
	"io"
	"strconv"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs snapshots as GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the snapshot in Markdown format.
func (w *MarkdownWriter) Write(snapshot *model.Snapshot) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, snapshot)
	w.writeStatusChart(md, snapshot)
	w.writeCards(md, snapshot)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *model.Snapshot) {
	md.H1("The Rick and Morty API")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Filter", string(s.Filter)},
			{"Total Characters", strconv.Itoa(s.TotalCount)},
			{"Showing", strconv.Itoa(len(s.Cards)) + " of " + strconv.Itoa(s.CharacterCount)},
			{"View", locationLabel(s)},
			{"Taken At", s.TakenAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	if pending := s.PendingCount(); pending > 0 {
		md.Note(strconv.Itoa(pending) + " first appearance(s) could not be resolved and show \"" + model.PendingLabel + "\".")
		md.PlainText("")
	}
}

// writeStatusChart writes a mermaid pie chart of the displayed statuses.
func (w *MarkdownWriter) writeStatusChart(md *markdown.Markdown, s *model.Snapshot) {
	if len(s.Cards) == 0 {
		return
	}

	counts := s.StatusCounts()
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Status Distribution"),
		piechart.WithShowData(true),
	)
	for _, status := range []model.Status{model.StatusAlive, model.StatusDead, model.StatusUnknown, model.StatusOther} {
		if n := counts[status]; n > 0 {
			chart.LabelAndIntValue(status.Label(), uint64(n))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeCards writes the character table.
func (w *MarkdownWriter) writeCards(md *markdown.Markdown, s *model.Snapshot) {
	md.H2(locationLabel(s))
	md.PlainText("")

	if len(s.Cards) == 0 {
		md.Tip("No characters match the current filter.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(s.Cards))
	for _, c := range s.Cards {
		location := c.LocationName
		if c.LocationURL != "" {
			location = "[" + c.LocationName + "](" + c.LocationURL + ")"
		}
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			truncateString(c.Name, 40),
			c.Species,
			statusBadge(c),
			location,
			c.FirstSeenIn,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Name", "Species", "Status", "Last Known Location", "First Seen In"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusBadge prefixes the status with a colored marker.
func statusBadge(c model.Card) string {
	switch c.StatusColor {
	case model.ColorAffirmative:
		return "🟢 " + c.Status
	case model.ColorNegative:
		return "🔴 " + c.Status
	default:
		return "⚪ " + c.Status
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Data from [The Rick and Morty API](https://rickandmortyapi.com)*")
}
