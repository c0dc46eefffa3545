package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/scoring"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteSite outputs the site report in Markdown format.
func (w *MarkdownWriter) WriteSite(report *model.SiteAuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Agent Readiness Site Audit")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + report.URL + "`"},
			{"Domain", report.Domain},
			{"Audit Date", report.AuditedAt.Format("2006-01-02 15:04:05 MST")},
			{"Discovery", report.Discovery.Method + " (" + report.Discovery.Detail + ")"},
			{"Pages Audited", strconv.Itoa(report.PagesAudited)},
			{"Pages Failed", strconv.Itoa(report.PagesFailed)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")

	md.H2("Site-Wide Scores")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Pillar", "Score", "Max", "Detail"},
		Rows: [][]string{
			pillarRow("Robots.txt AI Access", report.Robots.Score, scoring.MaxRobotsScore, report.Robots.Detail),
			pillarRow("llms.txt Presence", report.ContextFile.Score, scoring.MaxContextFileScore, report.ContextFile.Detail),
		},
	})
	md.PlainText("")

	md.H2("Aggregate Page Scores")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Pillar", "Avg Score", "Max", "Detail"},
		Rows: [][]string{
			pillarRow("Schema.org JSON-LD", report.Schema.Score, scoring.MaxSchemaScore, report.Schema.Detail),
			pillarRow("Content Density", report.Content.Score, scoring.MaxContentScore, report.Content.Detail),
		},
	})
	md.PlainText("")

	w.writePieChart(md,
		report.Robots.Score, report.ContextFile.Score,
		report.Schema.Score, report.Content.Score,
	)

	if len(report.Pages) > 0 {
		w.writePagesTable(md, report.Pages)
	}

	md.H2("Overall Score")
	md.PlainText("")
	md.PlainTextf("**%v / 100**", report.OverallScore)
	md.PlainText("")
	w.writeAlert(md, report.OverallScore)

	w.writeErrors(md, report.Errors)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WritePage outputs the single-page report in Markdown format.
func (w *MarkdownWriter) WritePage(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Agent Readiness Audit: " + report.URL)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Pillar", "Score", "Max", "Detail"},
		Rows: [][]string{
			pillarRow("Robots.txt AI Access", report.Robots.Score, scoring.MaxRobotsScore, report.Robots.Detail),
			pillarRow("llms.txt Presence", report.ContextFile.Score, scoring.MaxContextFileScore, report.ContextFile.Detail),
			pillarRow("Schema.org JSON-LD", report.Schema.Score, scoring.MaxSchemaScore, report.Schema.Detail),
			pillarRow("Content Density", report.Content.Score, scoring.MaxContentScore, report.Content.Detail),
		},
	})
	md.PlainText("")

	md.PlainTextf("**Overall Score: %v / 100**", report.OverallScore)
	md.PlainText("")
	w.writeAlert(md, report.OverallScore)

	w.writeErrors(md, report.Errors)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// pillarRow builds one pillar table row.
func pillarRow(name string, score, max float64, detail string) []string {
	return []string{
		name,
		fmt.Sprintf("%v", score),
		fmt.Sprintf("%.0f", max),
		truncateString(detail, 80),
	}
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.SiteAuditReport) string {
	if report.Discovery.Method == model.DiscoveryMethodTimeout {
		return "⚠️ Timed Out (partial results)"
	}
	if len(report.Errors) > 0 {
		return fmt.Sprintf("⚠️ Complete with %d error(s)", len(report.Errors))
	}
	return "✅ Complete"
}

// writePieChart writes a mermaid pie chart of the pillar contributions.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, robots, contextFile, schema, content float64) {
	if robots+contextFile+schema+content == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Score Contribution by Pillar"),
		piechart.WithShowData(true),
	)

	if robots > 0 {
		chart.LabelAndIntValue("Robots.txt", uint64(math.Round(robots)))
	}
	if contextFile > 0 {
		chart.LabelAndIntValue("llms.txt", uint64(math.Round(contextFile)))
	}
	if schema > 0 {
		chart.LabelAndIntValue("Schema.org", uint64(math.Round(schema)))
	}
	if content > 0 {
		chart.LabelAndIntValue("Content", uint64(math.Round(content)))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the overall score.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, overall float64) {
	switch {
	case overall >= 80:
		md.Tip("This site is well prepared for AI agents.")
	case overall >= 60:
		md.Note("This site is mostly agent-ready. Review the lower-scoring pillars for improvements.")
	case overall >= 40:
		md.Importantf(
			"This site scores %v/100. AI agents can use it, but significant readiness gaps remain.",
			overall,
		)
	default:
		md.Cautionf(
			"This site scores %v/100. AI agents will struggle to access or understand it.",
			overall,
		)
	}
	md.PlainText("")
}

// writePagesTable writes the per-page breakdown table.
func (w *MarkdownWriter) writePagesTable(md *markdown.Markdown, pages []model.PageScore) {
	md.H2("Per-Page Breakdown")
	md.PlainText("")

	rows := make([][]string, len(pages))
	for i, page := range pages {
		status := "ok"
		if len(page.Errors) > 0 {
			status = truncateString(page.Errors[0], 40)
		}
		rows[i] = []string{
			truncateString(page.URL, 60),
			fmt.Sprintf("%v", page.Schema.Score),
			fmt.Sprintf("%v", page.Content.Score),
			fmt.Sprintf("%v", page.Schema.Score+page.Content.Score),
			status,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Schema", "Content", "Total", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeErrors writes the errors section, if any errors were recorded.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, errs []string) {
	if len(errs) == 0 {
		return
	}

	md.H2("Errors")
	md.PlainText("")
	md.BulletList(errs...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [agentlens](https://github.com/hanselhansel/agentlens)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
