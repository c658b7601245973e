// Package report renders the summary of a scrape run.
//
// Writers for each output format:
//   - SimpleWriter: plain text for terminal display
//   - MarkdownWriter: GitHub flavored Markdown with a mermaid outcome chart
//   - JSONWriter: a single JSON document for tool integration
//
// NewWriter picks the writer for a configured summary format.
package report
