package report

import (
	"encoding/json"
	"io"

	"github.com/hanselhansel/agentlens/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteSite outputs the site report in JSON format.
func (w *JSONWriter) WriteSite(report *model.SiteAuditReport) (int, error) {
	return w.writeJSON(report)
}

// WritePage outputs the single-page report in JSON format.
func (w *JSONWriter) WritePage(report *model.AuditReport) (int, error) {
	return w.writeJSON(report)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v interface{}) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// VersionedReport wraps a report with tool metadata.
// This is used when writing the complete report with contextual information.
//
// Design decision: We wrap the report rather than adding a version field to
// the model types because this allows us to add output-specific fields
// without polluting the core data structures.
type VersionedReport struct {
	// Version is the agentlens version that generated this report.
	Version string `json:"version"`

	// Site is the site audit report, when the run was a site audit.
	Site *model.SiteAuditReport `json:"site,omitempty"`

	// Page is the single-page report, when the run was a page audit.
	Page *model.AuditReport `json:"page,omitempty"`
}

// VersionedJSONWriter outputs reports wrapped with version metadata.
type VersionedJSONWriter struct {
	*JSONWriter

	// version is the agentlens version string.
	version string
}

// NewVersionedJSONWriter creates a writer for reports with version metadata.
func NewVersionedJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *VersionedJSONWriter {
	return &VersionedJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// WriteSite outputs the site report wrapped with metadata.
func (w *VersionedJSONWriter) WriteSite(report *model.SiteAuditReport) (int, error) {
	return w.writeJSON(&VersionedReport{Version: w.version, Site: report})
}

// WritePage outputs the page report wrapped with metadata.
func (w *VersionedJSONWriter) WritePage(report *model.AuditReport) (int, error) {
	return w.writeJSON(&VersionedReport{Version: w.version, Page: report})
}
