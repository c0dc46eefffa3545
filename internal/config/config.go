package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values balance audit completeness against run time on typical
// public websites.
const (
	// DefaultTimeout is the per-request HTTP timeout. Public sites usually
	// respond well under 15 seconds; anything slower is effectively
	// unusable for an AI crawler anyway.
	DefaultTimeout = 15 * time.Second

	// DefaultDeadline bounds the whole site audit. When it expires the run
	// is abandoned and a synthetic timeout report is produced so batch
	// audits are never stalled by a single slow site.
	DefaultDeadline = 90 * time.Second

	// DefaultMaxPages is the page budget for a multi-page audit, seed
	// included. Ten diversely sampled pages are enough to characterize a
	// site without turning the audit into a full crawl.
	DefaultMaxPages = 10

	// DefaultCrawlDelay is the minimum spacing between crawl requests.
	// This is a politeness setting to avoid hammering audited sites.
	// Can be adjusted via the --crawl-delay CLI flag.
	DefaultCrawlDelay = 1 * time.Second

	// DefaultConcurrency is the number of pages fetched in parallel during
	// the crawl phase. Three keeps the audit fast while the shared rate
	// limiter still enforces the crawl delay across workers.
	DefaultConcurrency = 3

	// DefaultBatchSize is the number of concurrent site audits when
	// processing a URL list. Audits are network-bound, so a small batch
	// keeps memory and socket usage predictable.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies agentlens in HTTP requests. A descriptive
	// User-Agent lets site operators identify audit traffic in their logs.
	DefaultUserAgent = "agentlens/1.0 (+https://github.com/hanselhansel/agentlens)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "agentlens"
)

// Config holds all configuration options for agentlens.
// It is populated from CLI flags and the optional config file, then passed
// through the application via dependency injection rather than global state.
//
// Design decision: a single flat struct instead of nested sub-structs. The
// number of options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Targets is the list of URLs to audit. Must contain at least one
	// entry; bare hostnames are accepted and get https prepended.
	Targets []string

	// Single restricts the audit to the seed URL only: no sitemap
	// discovery, no crawling, just the four pillar checks on one page.
	Single bool

	// MaxPages is the page budget for multi-page audits, seed included.
	// A value of 0 means use DefaultMaxPages.
	MaxPages int

	// Timeout is the timeout for each individual HTTP request.
	Timeout time.Duration

	// Deadline is the overall time budget for a single site audit.
	// When it expires, the audit returns a synthetic timeout report.
	Deadline time.Duration

	// CrawlDelay is the delay between HTTP requests during crawling.
	// This is a politeness setting; lower values may trigger rate limiting
	// on the audited site.
	CrawlDelay time.Duration

	// Concurrency is the number of pages fetched in parallel per audit.
	Concurrency int

	// BatchSize is the number of concurrent site audits when processing
	// a URL list supplied via --input.
	BatchSize int

	// Agents overrides the default AI agent list checked against
	// robots.txt. Empty means use checks.DefaultAgents.
	Agents []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport and CSVReport.
	JSONReport bool

	// MarkdownReport enables GitHub Flavored Markdown report output.
	// Mutually exclusive with JSONReport and CSVReport.
	MarkdownReport bool

	// CSVReport enables CSV report output, one row per audited page.
	// Mutually exclusive with JSONReport and MarkdownReport.
	CSVReport bool

	// ReportFile is the output file path for the report. When set, the
	// report is written to this file instead of stdout. Directories are
	// created automatically if they don't exist.
	ReportFile string

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .agentlens in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the
	// config file. Populated by LoadConfigFile and consulted per target.
	SiteConfigs *File

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/agentlens on Linux).
	DBDir string

	// SaveToDB indicates whether to save audit results to the history
	// database. Disabled via the --no-save CLI flag.
	SaveToDB bool

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. 0 means DefaultMaxBodySize.
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: a constructor function instead of relying on zero values
// because many defaults are non-zero (timeouts, page budgets). It also
// serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		MaxPages:    DefaultMaxPages,
		Timeout:     DefaultTimeout,
		Deadline:    DefaultDeadline,
		CrawlDelay:  DefaultCrawlDelay,
		Concurrency: DefaultConcurrency,
		BatchSize:   DefaultBatchSize,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for agentlens.
// On Linux: ~/.local/share/agentlens
// On macOS: ~/Library/Application Support/agentlens
// On Windows: %LOCALAPPDATA%\agentlens
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for agentlens.
// On Linux: ~/.config/agentlens
// On macOS: ~/Library/Application Support/agentlens
// On Windows: %APPDATA%\agentlens
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: validation happens at the config level rather than at
// each point of use to fail fast with a clear message. It runs once after
// CLI parsing, before any auditing begins. The first error found is
// returned because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Deadline <= 0 {
		return ErrInvalidDeadline
	}

	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// Only one report format flag may be set
	formats := 0
	for _, set := range []bool{c.JSONReport, c.MarkdownReport, c.CSVReport} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
