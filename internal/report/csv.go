package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hanselhansel/agentlens/internal/model"
)

// CSVWriter outputs reports as CSV for spreadsheet analysis.
// Site reports get one row per page followed by a summary block; page
// reports get a single row.
//
// Design decision: We use the standard encoding/csv package because CSV
// output here is plain rows with no schema inference or streaming needs
// that would call for a third-party library.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteSite outputs the site report as per-page rows plus a summary block.
func (w *CSVWriter) WriteSite(report *model.SiteAuditReport) (int, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	records := [][]string{
		{"url", "schema_score", "content_score", "content_words", "errors"},
	}
	for _, page := range report.Pages {
		records = append(records, []string{
			page.URL,
			formatScore(page.Schema.Score),
			formatScore(page.Content.Score),
			strconv.Itoa(page.Content.WordCount),
			strconv.Itoa(len(page.Errors)),
		})
	}

	records = append(records,
		[]string{},
		[]string{"summary_url", "overall_score", "robots_score", "llms_txt_score", "schema_avg", "content_avg"},
		[]string{
			report.URL,
			formatScore(report.OverallScore),
			formatScore(report.Robots.Score),
			formatScore(report.ContextFile.Score),
			formatScore(report.Schema.Score),
			formatScore(report.Content.Score),
		},
	)

	if err := cw.WriteAll(records); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}

// WritePage outputs the single-page report as a header plus one row.
func (w *CSVWriter) WritePage(report *model.AuditReport) (int, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	records := [][]string{
		{"url", "overall_score", "robots_score", "llms_txt_score", "schema_score", "content_score", "content_words"},
		{
			report.URL,
			formatScore(report.OverallScore),
			formatScore(report.Robots.Score),
			formatScore(report.ContextFile.Score),
			formatScore(report.Schema.Score),
			formatScore(report.Content.Score),
			strconv.Itoa(report.Content.WordCount),
		},
	}

	if err := cw.WriteAll(records); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}

// formatScore renders a score without trailing zeros, matching the other
// output formats.
func formatScore(score float64) string {
	return fmt.Sprintf("%v", score)
}
