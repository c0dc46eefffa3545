package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hanselhansel/agentlens/internal/checks"
	"github.com/hanselhansel/agentlens/internal/config"
	"github.com/hanselhansel/agentlens/internal/crawler"
	"github.com/hanselhansel/agentlens/internal/discovery"
	"github.com/hanselhansel/agentlens/internal/fetch"
	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/scoring"
)

// Auditor runs complete audits. It owns the step wiring so callers only
// deal with targets and reports.
type Auditor struct {
	// client performs all HTTP probes.
	client *fetch.Client

	// batch crawls pages.
	batch *crawler.Batch

	// discoverer builds page samples.
	discoverer *discovery.Discoverer

	// deadline bounds a site audit when the target carries none.
	deadline time.Duration

	// logger receives audit progress.
	logger *slog.Logger
}

// AuditorOption configures an Auditor.
type AuditorOption func(*Auditor)

// WithDeadline sets the default overall audit deadline.
func WithDeadline(d time.Duration) AuditorOption {
	return func(a *Auditor) {
		if d > 0 {
			a.deadline = d
		}
	}
}

// WithAuditorLogger sets the audit logger.
func WithAuditorLogger(logger *slog.Logger) AuditorOption {
	return func(a *Auditor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAuditor creates an Auditor from its collaborators.
func NewAuditor(client *fetch.Client, batch *crawler.Batch, discoverer *discovery.Discoverer, opts ...AuditorOption) *Auditor {
	a := &Auditor{
		client:     client,
		batch:      batch,
		discoverer: discoverer,
		deadline:   config.DefaultDeadline,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuditSite runs a multi-page audit against the target. The whole run is
// bounded by the target's deadline (or the auditor default): when it
// expires, a synthetic timeout report is returned instead of blocking a
// batch on one slow site.
func (a *Auditor) AuditSite(ctx context.Context, target model.AuditTarget) *model.SiteAuditReport {
	deadline := target.Deadline
	if deadline <= 0 {
		deadline = a.deadline
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	// The pipeline runs in its own goroutine so the deadline can abandon
	// it. The channel is buffered: a result arriving after the deadline
	// must not leak the goroutine.
	done := make(chan *model.SiteAuditReport, 1)
	go func() {
		state := NewState(target)
		p := a.buildSitePipeline()
		_ = p.Execute(ctx, state)
		done <- state.Report
	}()

	select {
	case report := <-done:
		return report
	case <-ctx.Done():
		a.logger.Warn("site audit timed out", "url", target.URL, "deadline", deadline)
		return a.timeoutReport(target, deadline)
	}
}

// AuditPage runs a single-page audit: all four pillars against the seed
// URL, with no discovery or crawling beyond it.
func (a *Auditor) AuditPage(ctx context.Context, target model.AuditTarget) *model.AuditReport {
	report := model.NewAuditReport(target.URL)
	origin := target.Origin()

	var seed model.CrawlResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		robots, _ := checks.CheckRobots(gctx, a.client, origin, target.Agents)
		report.Robots = robots
		return nil
	})
	g.Go(func() error {
		report.ContextFile = checks.CheckContextFile(gctx, a.client, origin)
		return nil
	})
	g.Go(func() error {
		seed = a.batch.CrawlOne(gctx, target.URL)
		return nil
	})
	_ = g.Wait()

	if !report.Robots.Found {
		report.Errors = append(report.Errors, "Robots check: "+report.Robots.Detail)
	}
	if !seed.Success {
		report.Errors = append(report.Errors, "Crawl error: "+seed.Error)
	}

	report.Schema = checks.CheckSchema(seed.HTML)
	report.Content = checks.CheckContent(seed.Markdown)
	report.OverallScore = scoring.Overall(
		report.Robots.Score,
		report.ContextFile.Score,
		report.Schema.Score,
		report.Content.Score,
	)

	return report
}

// buildSitePipeline assembles the step sequence for a site audit. Steps
// record their own failures in the report, so the pipeline continues past
// individual step errors.
func (a *Auditor) buildSitePipeline() *Pipeline {
	p := New(WithLogger(a.logger), WithContinueOnError(true))
	p.AddSteps(
		NewSiteWideChecksStep(a.client, a.batch, WithSiteWideLogger(a.logger)),
		NewDiscoveryStep(a.discoverer),
		NewCrawlStep(a.batch),
		NewScorePagesStep(),
		NewAggregateStep(),
	)
	return p
}

// timeoutReport builds the synthetic report returned when the audit
// deadline expires.
func (a *Auditor) timeoutReport(target model.AuditTarget, deadline time.Duration) *model.SiteAuditReport {
	report := model.NewSiteAuditReport(target.URL, target.Domain)
	report.Robots = model.RobotsReport{Detail: "Timed out"}
	report.ContextFile = model.ContextFileReport{Detail: "Timed out"}
	report.Schema = model.SchemaReport{Detail: "Timed out"}
	report.Content = model.ContentReport{Detail: "Timed out"}
	report.Discovery = model.DiscoveryResult{
		Method: model.DiscoveryMethodTimeout,
		Detail: "Timed out",
	}
	report.AddError(fmt.Sprintf("Audit timed out after %s, returning partial results", deadline))
	return report
}
