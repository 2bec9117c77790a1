// Package report renders view snapshots.
//
// This package contains writers for different output formats:
//   - SimpleWriter: fixed-width text for terminal display
//   - MarkdownWriter: GitHub Flavored Markdown with a status pie chart
//   - JSONWriter: structured JSON for tool integration
//
// The snapshot types themselves live in the model package; writers only
// format them.
package report
