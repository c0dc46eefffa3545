package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hanselhansel/agentlens/internal/config"
	"github.com/hanselhansel/agentlens/internal/crawler"
	"github.com/hanselhansel/agentlens/internal/database"
	"github.com/hanselhansel/agentlens/internal/discovery"
	"github.com/hanselhansel/agentlens/internal/fetch"
	applog "github.com/hanselhansel/agentlens/internal/log"
	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/pipeline"
	"github.com/hanselhansel/agentlens/internal/report"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [url...]",
		Short: "Audit a website for AI-agent readiness",
		Long: `Audit measures how prepared a website is for AI agents.

It checks four pillars:
- robots.txt access for common AI crawlers (GPTBot, ClaudeBot, ...)
- llms.txt presence at the well-known paths
- Schema.org JSON-LD structured data on sampled pages
- Content density after markdown extraction

Site audits discover pages via the sitemap (falling back to spidering the
seed page), sample up to --max-pages diverse pages, and aggregate the
per-page scores weighted by URL depth.

Examples:
  # Audit a site (sitemap discovery + page sampling)
  agentlens audit example.com

  # Audit just one page, no discovery
  agentlens audit --single https://example.com/pricing

  # Audit a list of sites concurrently
  agentlens audit --input sites.txt

  # Output JSON to a file
  agentlens audit --json --output report.json example.com

Configuration file (.agentlens) example:
  defaults:
    maxPages: 10
  sites:
    example.com:
      maxPages: 25
      crawlDelay: 2s
      agents: [GPTBot, ClaudeBot]`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Audit behavior flags
	cmd.Flags().BoolP("single", "s", false,
		"Audit only the given URL, without discovery or crawling")
	cmd.Flags().StringP("input", "i", "",
		"URL list file: .txt with one URL per line, or .csv with URLs in the first column")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to sample per site, seed included")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().DurationP("deadline", "D", config.DefaultDeadline,
		"Overall time budget per site audit")
	cmd.Flags().Duration("crawl-delay", config.DefaultCrawlDelay,
		"Delay between crawl requests")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of pages fetched in parallel per audit")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent site audits for --input lists")
	cmd.Flags().StringSlice("agents", nil,
		"AI agent list checked against robots.txt (default: built-in list)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .agentlens in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --csv)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --csv)")
	cmd.Flags().Bool("csv", false,
		"Output CSV report (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not save the report to the history database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := applog.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Single, err = cmd.Flags().GetBool("single")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Deadline, err = cmd.Flags().GetDuration("deadline")
	if err != nil {
		return nil, err
	}

	cfg.CrawlDelay, err = cmd.Flags().GetDuration("crawl-delay")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.Agents, err = cmd.Flags().GetStringSlice("agents")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.CSVReport, err = cmd.Flags().GetBool("csv")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments plus the optional URL list file
	cfg.Targets = args

	inputFile, err := cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}
	if inputFile != "" {
		fromFile, err := parseURLFile(inputFile)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, fromFile...)
	}

	return cfg, nil
}

// parseURLFile reads audit targets from a .txt or .csv URL list.
func parseURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return parseCSVURLs(f)
	}
	return parseTextURLs(f)
}

// parseTextURLs reads one URL per line, skipping blanks and # comments.
func parseTextURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}

	return urls, nil
}

// parseCSVURLs reads the first column of a CSV file as URLs. A header row
// is detected by the common column names and skipped.
func parseCSVURLs(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var urls []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read URL list: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" || strings.HasPrefix(cell, "#") {
			continue
		}
		switch strings.ToLower(cell) {
		case "url", "urls", "uri", "link", "website":
			continue
		}
		urls = append(urls, cell)
	}

	return urls, nil
}

// runAudit executes the audit.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"targets", cfg.Targets,
		"single", cfg.Single,
		"maxPages", cfg.MaxPages,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	targets := make([]model.AuditTarget, 0, len(cfg.Targets))
	for _, raw := range cfg.Targets {
		target, err := buildTarget(cfg, raw)
		if err != nil {
			return fmt.Errorf("invalid target %q: %w", raw, err)
		}
		targets = append(targets, target)
	}

	if cfg.Single {
		return runPageAudits(ctx, cfg, targets, db, logger)
	}

	// Use batch processor for parallel audits if multiple targets
	if len(targets) > 1 && cfg.BatchSize > 1 {
		return runBatchAudits(ctx, cfg, targets, db, logger)
	}

	return runSequentialAudits(ctx, cfg, targets, db, logger)
}

// buildTarget creates an AuditTarget for a raw URL, applying site-specific
// configuration overrides on top of the global config.
func buildTarget(cfg *config.Config, rawURL string) (model.AuditTarget, error) {
	target, err := model.NewAuditTarget(rawURL)
	if err != nil {
		return model.AuditTarget{}, err
	}

	site := cfg.SiteConfigs.GetSiteConfig(target.Domain)

	target.MaxPages = cfg.MaxPages
	if site.MaxPages > 0 {
		target.MaxPages = site.MaxPages
	}
	target.Timeout = cfg.Timeout
	if site.Timeout > 0 {
		target.Timeout = site.Timeout
	}
	target.CrawlDelay = cfg.CrawlDelay
	if site.CrawlDelay > 0 {
		target.CrawlDelay = site.CrawlDelay
	}
	target.Deadline = cfg.Deadline
	target.Agents = cfg.Agents
	if len(site.Agents) > 0 {
		target.Agents = site.Agents
	}

	return target, nil
}

// newAuditor wires an Auditor for the given target.
// The HTTP client and crawl batch are per-auditor because their timeout
// and delay settings can differ per site.
func newAuditor(cfg *config.Config, target model.AuditTarget, logger *slog.Logger) *pipeline.Auditor {
	client := fetch.NewClient(
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithTimeout(target.Timeout),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)
	batch := crawler.NewBatch(client,
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithDelay(target.CrawlDelay),
		crawler.WithPageTimeout(target.Timeout),
		crawler.WithLogger(logger),
	)
	disc := discovery.New(client, discovery.WithLogger(logger))

	return pipeline.NewAuditor(client, batch, disc,
		pipeline.WithDeadline(target.Deadline),
		pipeline.WithAuditorLogger(logger),
	)
}

// runSequentialAudits audits site targets one at a time.
func runSequentialAudits(ctx context.Context, cfg *config.Config, targets []model.AuditTarget, db *database.HistoryDB, logger *slog.Logger) error {
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprintf(os.Stderr, "Auditing %s...\n", target.URL)
		startTime := time.Now()

		auditor := newAuditor(cfg, target, logger)
		siteReport := auditor.AuditSite(ctx, target)

		elapsed := time.Since(startTime)
		fmt.Fprintf(os.Stderr, "Audit completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputSiteReport(cfg, siteReport); err != nil {
			logger.Error("report failed", "target", target.URL, "error", err)
		}

		if err := saveSiteReport(ctx, db, siteReport, logger); err != nil {
			logger.Error("failed to save report", "target", target.URL, "error", err)
		}
	}

	return nil
}

// runBatchAudits audits multiple sites concurrently using BatchProcessor.
func runBatchAudits(ctx context.Context, cfg *config.Config, targets []model.AuditTarget, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Starting batch audit of %d targets (concurrency: %d)...\n\n",
		len(targets), cfg.BatchSize)

	startTime := time.Now()

	// Batch mode shares one auditor, so per-site timeout and crawl delay
	// overrides are not applied. Page budgets, deadlines, and agent lists
	// travel with each target and are still honored.
	if len(cfg.SiteConfigs.Sites) > 0 {
		logger.Warn("batch mode ignores per-site timeout and crawl delay overrides",
			"siteCount", len(cfg.SiteConfigs.Sites))
	}

	auditor := newAuditor(cfg, defaultTarget(cfg), logger)
	bp := pipeline.NewBatchProcessor(auditor,
		pipeline.WithBatchConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	reports := bp.ProcessBatch(ctx, targets)

	for i, siteReport := range reports {
		fmt.Fprintf(os.Stderr, "[%d/%d] Audit completed: %s\n", i+1, len(reports), siteReport.URL)

		if err := outputSiteReport(cfg, siteReport); err != nil {
			logger.Error("report failed", "target", siteReport.URL, "error", err)
		}

		if err := saveSiteReport(ctx, db, siteReport, logger); err != nil {
			logger.Error("failed to save report", "target", siteReport.URL, "error", err)
		}
	}

	fmt.Fprintf(os.Stderr, "\nBatch summary:\n")
	var total float64
	for _, siteReport := range reports {
		fmt.Fprintf(os.Stderr, "  %-50s %v / 100\n", siteReport.URL, siteReport.OverallScore)
		total += siteReport.OverallScore
	}
	if len(reports) > 0 {
		fmt.Fprintf(os.Stderr, "  Average score: %.1f / 100\n", total/float64(len(reports)))
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "\nBatch audit completed in %s\n", elapsed.Round(time.Millisecond))

	return nil
}

// runPageAudits audits each target as a single page, without discovery.
func runPageAudits(ctx context.Context, cfg *config.Config, targets []model.AuditTarget, db *database.HistoryDB, logger *slog.Logger) error {
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		auditor := newAuditor(cfg, target, logger)
		pageReport := auditor.AuditPage(ctx, target)

		if err := outputPageReport(cfg, pageReport); err != nil {
			logger.Error("report failed", "target", target.URL, "error", err)
		}

		if db != nil {
			if _, err := db.SavePageReport(ctx, pageReport); err != nil {
				logger.Error("failed to save report", "target", target.URL, "error", err)
			}
		}
	}

	return nil
}

// defaultTarget builds a pseudo-target carrying only the global run
// configuration, for auditor construction in batch mode.
func defaultTarget(cfg *config.Config) model.AuditTarget {
	return model.AuditTarget{
		Timeout:    cfg.Timeout,
		CrawlDelay: cfg.CrawlDelay,
		Deadline:   cfg.Deadline,
	}
}

// outputSiteReport outputs the site report in the requested format.
func outputSiteReport(cfg *config.Config, siteReport *model.SiteAuditReport) error {
	output, closer, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closer()

	_, err = newReportWriter(cfg, output).WriteSite(siteReport)
	return err
}

// outputPageReport outputs the single-page report in the requested format.
func outputPageReport(cfg *config.Config, pageReport *model.AuditReport) error {
	output, closer, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closer()

	_, err = newReportWriter(cfg, output).WritePage(pageReport)
	return err
}

// openOutput returns the report destination: the --output file when set,
// stdout otherwise. The returned closer is a no-op for stdout.
func openOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.ReportFile == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newReportWriter selects the report writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewVersionedJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case cfg.CSVReport:
		return report.NewCSVWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// saveSiteReport saves the site report to the database if enabled.
// If db is nil, this function is a no-op.
func saveSiteReport(ctx context.Context, db *database.HistoryDB, siteReport *model.SiteAuditReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveSiteReport(ctx, siteReport)
	if err != nil {
		return fmt.Errorf("failed to save site report: %w", err)
	}

	logger.Info("audit report saved", "target", siteReport.URL, "id", id)
	return nil
}
