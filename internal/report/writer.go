package report

import (
	"fmt"
	"io"

	"github.com/nao1215/hockeyscrape/internal/config"
	"github.com/nao1215/hockeyscrape/internal/model"
)

// Writer renders a run summary.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.Summary) (int, error)
}

// NewWriter returns the Writer for a config summary format.
// config.SummaryNone yields a Writer that writes nothing.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case config.SummaryText:
		return NewSimpleWriter(output), nil
	case config.SummaryMarkdown:
		return NewMarkdownWriter(output), nil
	case config.SummaryJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case config.SummaryNone:
		return nopWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidSummaryFormat, format)
	}
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Returns the total bytes written; stops on the first error.
func (m *MultiWriter) Write(summary *model.Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type nopWriter struct{}

func (nopWriter) Write(*model.Summary) (int, error) {
	return 0, nil
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// statusText describes how the run ended.
func statusText(s *model.Summary) string {
	switch {
	case s.Cancelled:
		return fmt.Sprintf("Interrupted (%d of %d targets attempted)", s.Attempted, s.Targets)
	case s.Failed() > 0:
		return fmt.Sprintf("Completed with %d failure(s)", s.Failed())
	default:
		return "Complete"
	}
}

// truncateString truncates a string to maxLen bytes with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
