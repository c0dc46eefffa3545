package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hanselhansel/agentlens/internal/config"
	"github.com/hanselhansel/agentlens/internal/extract"
	"github.com/hanselhansel/agentlens/internal/fetch"
	"github.com/hanselhansel/agentlens/internal/model"
)

// Batch crawls a fixed list of URLs concurrently. Workers share a rate
// limiter so the politeness delay holds across the whole batch, not per
// worker.
type Batch struct {
	// client performs the HTTP requests.
	client *fetch.Client

	// concurrency is the number of parallel fetch workers.
	concurrency int

	// delay is the minimum spacing between requests across all workers.
	delay time.Duration

	// timeout bounds each individual page fetch.
	timeout time.Duration

	// stripSelectors configures boilerplate removal during markdown
	// extraction. Nil means the default selector list.
	stripSelectors []string

	// logger receives per-page progress at debug level.
	logger *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithConcurrency sets the number of parallel fetch workers.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithDelay sets the minimum spacing between requests.
func WithDelay(d time.Duration) BatchOption {
	return func(b *Batch) {
		b.delay = d
	}
}

// WithPageTimeout sets the per-page fetch timeout.
func WithPageTimeout(d time.Duration) BatchOption {
	return func(b *Batch) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithStripSelectors sets the boilerplate selectors removed before
// markdown conversion.
func WithStripSelectors(selectors []string) BatchOption {
	return func(b *Batch) {
		b.stripSelectors = selectors
	}
}

// WithLogger sets the logger for crawl progress.
func WithLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatch creates a Batch crawler around the given HTTP client.
func NewBatch(client *fetch.Client, opts ...BatchOption) *Batch {
	b := &Batch{
		client:      client,
		concurrency: config.DefaultConcurrency,
		delay:       config.DefaultCrawlDelay,
		timeout:     config.DefaultTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Crawl fetches every URL in the list and returns one result per input
// URL, in input order. A failed page yields a result with Success=false
// and the error message; it never fails the batch.
func (b *Batch) Crawl(ctx context.Context, urls []string) []model.CrawlResult {
	results := make([]model.CrawlResult, len(urls))

	limiter := rate.NewLimiter(rate.Every(b.delay), 1)
	if b.delay <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, pageURL := range urls {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				results[i] = model.CrawlResult{URL: pageURL, Error: err.Error()}
				return nil //nolint:nilerr // One abandoned page must not cancel the batch
			}
			results[i] = b.crawlPage(gctx, pageURL)
			return nil
		})
	}

	// Workers never return errors, so Wait only synchronizes.
	_ = g.Wait()

	return results
}

// CrawlOne fetches a single URL. The seed page uses this path so its
// result is available before discovery runs.
func (b *Batch) CrawlOne(ctx context.Context, pageURL string) model.CrawlResult {
	return b.crawlPage(ctx, pageURL)
}

// dedupe removes duplicate links, preserving first-seen order.
func dedupe(links []string) []string {
	seen := make(map[string]bool, len(links))
	unique := make([]string, 0, len(links))
	for _, l := range links {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	return unique
}

// crawlPage fetches one page, parses its links, and extracts markdown.
func (b *Batch) crawlPage(ctx context.Context, pageURL string) model.CrawlResult {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	result := model.CrawlResult{URL: pageURL}

	resp, err := b.client.Get(ctx, pageURL)
	if err != nil {
		result.Error = err.Error()
		b.logger.Debug("page fetch failed", "url", pageURL, "error", err)
		return result
	}

	result.StatusCode = resp.StatusCode
	if !resp.OK() {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		b.logger.Debug("page fetch failed", "url", pageURL, "status", resp.StatusCode)
		return result
	}

	result.HTML = string(resp.Body)

	if parser, err := NewParser(pageURL); err == nil {
		if parsed, err := parser.Parse(strings.NewReader(result.HTML)); err == nil {
			result.Links = dedupe(parsed.InternalLinks)
		}
	}

	markdown, err := extract.MarkdownFromHTML(result.HTML, b.stripSelectors)
	if err != nil {
		result.Error = fmt.Sprintf("markdown extraction failed: %v", err)
		return result
	}
	result.Markdown = markdown
	result.Success = true

	b.logger.Debug("page crawled",
		"url", pageURL,
		"status", resp.StatusCode,
		"links", len(result.Links),
		"markdown_chars", len(markdown),
	)

	return result
}
