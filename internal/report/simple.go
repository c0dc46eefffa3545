package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/scoring"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showPages controls whether the per-page breakdown is shown.
	showPages bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowPages configures the writer to show the per-page breakdown.
func WithShowPages(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showPages = show
	}
}

// WithVerbose enables verbose output with additional details such as
// per-agent robots.txt decisions.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showPages:  true,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteSite outputs the site report in human-readable format.
func (w *SimpleWriter) WriteSite(report *model.SiteAuditReport) (int, error) {
	var sb strings.Builder

	w.writeSiteHeader(&sb, report)
	w.writeSitePillars(&sb, report)
	if w.showPages {
		w.writePages(&sb, report.Pages)
	}
	w.writeOverall(&sb, report.OverallScore)
	w.writeErrors(&sb, report.Errors)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WritePage outputs the single-page report in human-readable format.
func (w *SimpleWriter) WritePage(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      AGENT READINESS AUDIT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("URL:        %s\n", report.URL))
	sb.WriteString(fmt.Sprintf("Audit Date: %s\n", report.AuditedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString("\n")

	w.writePillarSection(&sb, "PILLAR SCORES", []pillarLine{
		{"Robots.txt AI Access", report.Robots.Score, scoring.MaxRobotsScore, report.Robots.Detail},
		{"llms.txt Presence", report.ContextFile.Score, scoring.MaxContextFileScore, report.ContextFile.Detail},
		{"Schema.org JSON-LD", report.Schema.Score, scoring.MaxSchemaScore, report.Schema.Detail},
		{"Content Density", report.Content.Score, scoring.MaxContentScore, report.Content.Detail},
	})
	if w.verbose {
		w.writeAgents(&sb, report.Robots.Agents)
	}

	w.writeOverall(&sb, report.OverallScore)
	w.writeErrors(&sb, report.Errors)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// pillarLine is one row of a pillar section.
type pillarLine struct {
	name   string
	score  float64
	max    float64
	detail string
}

// writeSiteHeader writes the report header with audit information.
func (w *SimpleWriter) writeSiteHeader(sb *strings.Builder, report *model.SiteAuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                    AGENT READINESS SITE AUDIT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Site:          %s\n", report.URL))
	sb.WriteString(fmt.Sprintf("Domain:        %s\n", report.Domain))
	sb.WriteString(fmt.Sprintf("Audit Date:    %s\n", report.AuditedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Discovery:     %s (%s)\n", report.Discovery.Method, report.Discovery.Detail))
	sb.WriteString(fmt.Sprintf("Pages Audited: %d (%d failed)\n", report.PagesAudited, report.PagesFailed))

	if report.Discovery.Method == model.DiscoveryMethodTimeout {
		sb.WriteString("Status:        TIMED OUT (partial results)\n")
	} else if len(report.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Status:        Complete with %d error(s)\n", len(report.Errors)))
	} else {
		sb.WriteString("Status:        Complete\n")
	}

	sb.WriteString("\n")
}

// writeSitePillars writes the site-wide and aggregated pillar sections.
func (w *SimpleWriter) writeSitePillars(sb *strings.Builder, report *model.SiteAuditReport) {
	w.writePillarSection(sb, "SITE-WIDE SCORES", []pillarLine{
		{"Robots.txt AI Access", report.Robots.Score, scoring.MaxRobotsScore, report.Robots.Detail},
		{"llms.txt Presence", report.ContextFile.Score, scoring.MaxContextFileScore, report.ContextFile.Detail},
	})
	if w.verbose {
		w.writeAgents(sb, report.Robots.Agents)
	}

	w.writePillarSection(sb, "AGGREGATE PAGE SCORES", []pillarLine{
		{"Schema.org JSON-LD", report.Schema.Score, scoring.MaxSchemaScore, report.Schema.Detail},
		{"Content Density", report.Content.Score, scoring.MaxContentScore, report.Content.Detail},
	})
}

// writePillarSection writes one titled pillar table.
func (w *SimpleWriter) writePillarSection(sb *strings.Builder, title string, lines []pillarLine) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  %-22s %5.1f / %2.0f\n", line.name, line.score, line.max))
		if line.detail != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", line.detail))
		}
	}
	sb.WriteString("\n")
}

// writeAgents writes the per-agent robots.txt decisions.
func (w *SimpleWriter) writeAgents(sb *strings.Builder, agents []model.AgentAccess) {
	if len(agents) == 0 {
		return
	}

	sb.WriteString("  Agent access:\n")
	for _, agent := range agents {
		mark := "+"
		if !agent.Allowed {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("    [%s] %s\n", mark, agent.Agent))
	}
	sb.WriteString("\n")
}

// writePages writes the per-page breakdown section.
func (w *SimpleWriter) writePages(sb *strings.Builder, pages []model.PageScore) {
	if len(pages) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PER-PAGE BREAKDOWN\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, page := range pages {
		total := page.Schema.Score + page.Content.Score
		sb.WriteString(fmt.Sprintf("  %s\n", page.URL))
		sb.WriteString(fmt.Sprintf("    schema %5.1f  content %5.1f  total %5.1f",
			page.Schema.Score, page.Content.Score, total))
		if len(page.Errors) > 0 {
			sb.WriteString(fmt.Sprintf("  [%s]", strings.Join(page.Errors, "; ")))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeOverall writes the overall score line.
func (w *SimpleWriter) writeOverall(sb *strings.Builder, overall float64) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("OVERALL SCORE: %v / 100\n", overall))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
}

// writeErrors writes the accumulated non-fatal errors, if any.
func (w *SimpleWriter) writeErrors(sb *strings.Builder, errs []string) {
	if len(errs) == 0 {
		return
	}

	sb.WriteString("\nERRORS\n\n")
	for _, err := range errs {
		sb.WriteString(fmt.Sprintf("  * %s\n", err))
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString("Report generated by agentlens\n")
	sb.WriteString("https://github.com/hanselhansel/agentlens\n")
}
