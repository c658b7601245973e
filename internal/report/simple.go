package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// dateLayout formats run timestamps.
const dateLayout = "2006-01-02 15:04:05 MST"

// SimpleWriter outputs a plain text summary for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose lists every failure instead of only the first few.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose lists every failure.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// maxListedFailures bounds the failure list in non-verbose mode.
const maxListedFailures = 10

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

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeCounts(&sb, summary)
	w.writeFailures(&sb, summary)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         SCRAPE SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Site:           %s\n", s.Site)
	fmt.Fprintf(sb, "Collection:     %s\n", s.Site.Collection())
	fmt.Fprintf(sb, "Started:        %s\n", s.StartedAt.Format(dateLayout))
	fmt.Fprintf(sb, "Elapsed:        %s\n", s.Elapsed.Round(time.Second))
	fmt.Fprintf(sb, "Status:         %s\n", statusText(s))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCounts(sb *strings.Builder, s *model.Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	rows := []struct {
		label string
		value int
	}{
		{"Targets", s.Targets},
		{"Attempted", s.Attempted},
		{"Succeeded", s.Succeeded},
		{"  without records", s.Empty},
		{"Fetch failures", s.FetchFailures},
		{"Parse failures", s.ParseFailures},
		{"Store failures", s.StoreFailures},
		{"Records stored", s.RecordsStored},
	}
	for _, r := range rows {
		fmt.Fprintf(sb, "%-20s %8d\n", r.label, r.value)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFailures(sb *strings.Builder, s *model.Summary) {
	if s.Failed() == 0 {
		return
	}

	sb.WriteString("FAILURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	failures := s.Failures
	if !w.verbose && len(failures) > maxListedFailures {
		failures = failures[:maxListedFailures]
	}
	for _, f := range failures {
		fmt.Fprintf(sb, "[%s] %s\n", f.Stage, f.URL)
		fmt.Fprintf(sb, "    %s\n", truncateString(f.Err.Error(), 120))
	}
	if hidden := s.Failed() - len(failures); hidden > 0 {
		fmt.Fprintf(sb, "... and %d more (use --verbose to list all)\n", hidden)
	}
	sb.WriteString("\n")
}
