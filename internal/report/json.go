package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// JSONWriter outputs the summary as JSON for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonSummary is the serialized form of model.Summary.
type jsonSummary struct {
	Site          string        `json:"site"`
	Collection    string        `json:"collection"`
	StartedAt     time.Time     `json:"started_at"`
	ElapsedMillis int64         `json:"elapsed_ms"`
	Targets       int           `json:"targets"`
	Attempted     int           `json:"attempted"`
	Succeeded     int           `json:"succeeded"`
	Empty         int           `json:"empty"`
	FetchFailures int           `json:"fetch_failures"`
	ParseFailures int           `json:"parse_failures"`
	StoreFailures int           `json:"store_failures"`
	RecordsStored int           `json:"records_stored"`
	Cancelled     bool          `json:"cancelled"`
	Failures      []jsonFailure `json:"failures"`
}

type jsonFailure struct {
	URL        string `json:"url"`
	Stage      string `json:"stage"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error"`
}

// Write outputs the summary as a single JSON document.
func (w *JSONWriter) Write(summary *model.Summary) (int, error) {
	out := jsonSummary{
		Site:          summary.Site.String(),
		Collection:    summary.Site.Collection(),
		StartedAt:     summary.StartedAt,
		ElapsedMillis: summary.Elapsed.Milliseconds(),
		Targets:       summary.Targets,
		Attempted:     summary.Attempted,
		Succeeded:     summary.Succeeded,
		Empty:         summary.Empty,
		FetchFailures: summary.FetchFailures,
		ParseFailures: summary.ParseFailures,
		StoreFailures: summary.StoreFailures,
		RecordsStored: summary.RecordsStored,
		Cancelled:     summary.Cancelled,
		Failures:      make([]jsonFailure, 0, summary.Failed()),
	}
	for _, f := range summary.Failures {
		out.Failures = append(out.Failures, jsonFailure{
			URL:        f.URL,
			Stage:      f.Stage.String(),
			StatusCode: f.StatusCode,
			Error:      f.Err.Error(),
		})
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(out, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
