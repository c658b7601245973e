package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/hockeyscrape/internal/model"
)

// MarkdownWriter outputs the summary as GitHub flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeCounts(md, summary)
	w.writeFailures(md, summary)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *model.Summary) {
	md.H1("Scrape Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + s.Site.String() + "`"},
			{"Collection", "`" + s.Site.Collection() + "`"},
			{"Started", s.StartedAt.Format(dateLayout)},
			{"Elapsed", s.Elapsed.Round(time.Second).String()},
			{"Status", statusText(s)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, s *model.Summary) {
	md.H2("Results")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Targets", strconv.Itoa(s.Targets)},
			{"Attempted", strconv.Itoa(s.Attempted)},
			{"Succeeded", strconv.Itoa(s.Succeeded)},
			{"Succeeded without records", strconv.Itoa(s.Empty)},
			{"Fetch failures", strconv.Itoa(s.FetchFailures)},
			{"Parse failures", strconv.Itoa(s.ParseFailures)},
			{"Store failures", strconv.Itoa(s.StoreFailures)},
			{"**Records stored**", "**" + strconv.Itoa(s.RecordsStored) + "**"},
		},
	})
	md.PlainText("")

	if s.Attempted > 0 {
		w.writePieChart(md, s)
	}

	switch {
	case s.Cancelled:
		md.Warningf("The run was interrupted after %d of %d targets.", s.Attempted, s.Targets)
	case s.Failed() > 0:
		md.Importantf("%d target(s) failed. Re-running appends duplicates for targets that succeeded.", s.Failed())
	default:
		md.Tip("Every target was scraped.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Outcomes"),
		piechart.WithShowData(true),
	)

	slices := []struct {
		label string
		count int
	}{
		{"Stored", s.Succeeded - s.Empty},
		{"Empty", s.Empty},
		{"Fetch failed", s.FetchFailures},
		{"Parse failed", s.ParseFailures},
		{"Store failed", s.StoreFailures},
	}
	for _, sl := range slices {
		if sl.count > 0 {
			chart.LabelAndIntValue(sl.label, uint64(sl.count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, s *model.Summary) {
	md.H2("Failures")
	md.PlainText("")

	if s.Failed() == 0 {
		md.PlainText("No failures.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(s.Failures))
	for i, f := range s.Failures {
		rows[i] = []string{
			f.Stage.String(),
			truncateString(f.URL, 80),
			truncateString(f.Err.Error(), 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Stage", "URL", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}
