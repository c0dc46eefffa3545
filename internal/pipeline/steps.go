package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/hanselhansel/agentlens/internal/checks"
	"github.com/hanselhansel/agentlens/internal/crawler"
	"github.com/hanselhansel/agentlens/internal/discovery"
	"github.com/hanselhansel/agentlens/internal/fetch"
	"github.com/hanselhansel/agentlens/internal/model"
)

// SiteWideChecksStep runs the origin-level probes: robots.txt, the context
// file, and the seed page crawl. The three tasks are independent network
// calls, so they run concurrently; a failure in one never blocks the
// others, it just leaves a "Check failed" report behind.
type SiteWideChecksStep struct {
	// client performs the robots and context file probes.
	client *fetch.Client

	// batch crawls the seed page so markdown extraction matches the
	// later page crawls exactly.
	batch *crawler.Batch

	// logger receives progress at debug level.
	logger *slog.Logger
}

// SiteWideChecksOption configures a SiteWideChecksStep.
type SiteWideChecksOption func(*SiteWideChecksStep)

// WithSiteWideLogger sets the step logger.
func WithSiteWideLogger(logger *slog.Logger) SiteWideChecksOption {
	return func(s *SiteWideChecksStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSiteWideChecksStep creates the site-wide checks step.
func NewSiteWideChecksStep(client *fetch.Client, batch *crawler.Batch, opts ...SiteWideChecksOption) *SiteWideChecksStep {
	s := &SiteWideChecksStep{
		client: client,
		batch:  batch,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *SiteWideChecksStep) Name() string {
	return "site_wide_checks"
}

// Do runs the robots, context file, and seed crawl tasks concurrently.
// Task panics are not expected; task failures surface as report errors,
// never as a step error, so one dead probe cannot abort the audit.
func (s *SiteWideChecksStep) Do(ctx context.Context, state *State) error {
	origin := state.Target.Origin()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, raw := checks.CheckRobots(gctx, s.client, origin, state.Target.Agents)
		state.Report.Robots = report
		state.RobotsRaw = raw
		return nil
	})

	g.Go(func() error {
		state.Report.ContextFile = checks.CheckContextFile(gctx, s.client, origin)
		return nil
	})

	g.Go(func() error {
		state.Seed = s.batch.CrawlOne(gctx, state.Target.URL)
		return nil
	})

	// Each task writes its own field; Wait only synchronizes. Error
	// accumulation happens after the join to keep the slice single-writer.
	_ = g.Wait()

	if !state.Report.Robots.Found {
		state.Report.AddError("Robots check: " + state.Report.Robots.Detail)
	}
	if !state.Seed.Success {
		state.Report.AddError("Seed crawl error: " + state.Seed.Error)
	}

	s.logger.Debug("site-wide checks complete",
		"url", state.Target.URL,
		"robots_found", state.Report.Robots.Found,
		"context_file_found", state.Report.ContextFile.Found,
		"seed_success", state.Seed.Success,
	)

	return nil
}

// DiscoveryStep builds the page sample from the sitemap or, failing that,
// the seed page's links. Single-page audits skip this step entirely.
type DiscoveryStep struct {
	// discoverer performs sitemap fetching and sampling.
	discoverer *discovery.Discoverer
}

// NewDiscoveryStep creates the discovery step.
func NewDiscoveryStep(d *discovery.Discoverer) *DiscoveryStep {
	return &DiscoveryStep{discoverer: d}
}

// Name returns the step name.
func (s *DiscoveryStep) Name() string {
	return "discovery"
}

// Do discovers and samples the pages to audit.
func (s *DiscoveryStep) Do(ctx context.Context, state *State) error {
	var seedLinks []string
	if state.Seed.Success {
		seedLinks = state.Seed.Links
	}

	state.Report.Discovery = s.discoverer.Discover(
		ctx,
		state.Target.URL,
		state.Target.MaxPages,
		state.RobotsRaw,
		seedLinks,
	)
	return nil
}

// CrawlStep fetches the sampled pages, excluding the seed which the
// site-wide checks step already crawled.
type CrawlStep struct {
	// batch performs the concurrent crawl.
	batch *crawler.Batch
}

// NewCrawlStep creates the crawl step.
func NewCrawlStep(batch *crawler.Batch) *CrawlStep {
	return &CrawlStep{batch: batch}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do crawls the non-seed sampled pages in sample order.
func (s *CrawlStep) Do(ctx context.Context, state *State) error {
	remaining := make([]string, 0, len(state.Report.Discovery.URLsSampled))
	for _, u := range state.Report.Discovery.URLsSampled {
		if u != state.Target.URL {
			remaining = append(remaining, u)
		}
	}

	if len(remaining) == 0 {
		return nil
	}

	state.Crawled = s.batch.Crawl(ctx, remaining)
	return nil
}

// ScorePagesStep turns crawl results into per-page pillar scores.
type ScorePagesStep struct{}

// NewScorePagesStep creates the page scoring step.
func NewScorePagesStep() *ScorePagesStep {
	return &ScorePagesStep{}
}

// Name returns the step name.
func (s *ScorePagesStep) Name() string {
	return "score_pages"
}

// Do scores the seed page and every crawled page. The seed always yields
// a PageScore: when its crawl failed, the entry carries the error with
// zeroed pillars instead of being dropped, so the page list always
// reflects the full sample.
func (s *ScorePagesStep) Do(_ context.Context, state *State) error {
	pages := make([]model.PageScore, 0, 1+len(state.Crawled))
	pages = append(pages, scorePage(state.Target.URL, state.Seed))

	for _, crawled := range state.Crawled {
		pages = append(pages, scorePage(crawled.URL, crawled))
	}

	state.Report.Pages = pages
	state.Report.PagesAudited = len(pages)
	for _, p := range pages {
		if len(p.Errors) > 0 {
			state.Report.PagesFailed++
		}
	}

	return nil
}

// scorePage runs the page-level pillar checks on one crawl result.
func scorePage(url string, crawled model.CrawlResult) model.PageScore {
	if !crawled.Success {
		errMsg := crawled.Error
		if errMsg == "" {
			errMsg = "Unknown crawl error"
		}
		return model.PageScore{
			URL:    url,
			Schema: model.SchemaReport{Detail: "Crawl failed"},
			Content: model.ContentReport{
				Detail: "Crawl failed",
			},
			Errors: []string{errMsg},
		}
	}

	return model.PageScore{
		URL:     url,
		Schema:  checks.CheckSchema(crawled.HTML),
		Content: checks.CheckContent(crawled.Markdown),
	}
}

// AggregateStep folds per-page scores and site-wide pillars into the final
// report.
type AggregateStep struct{}

// NewAggregateStep creates the aggregation step.
func NewAggregateStep() *AggregateStep {
	return &AggregateStep{}
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do computes the aggregate pillar reports and the overall score.
func (s *AggregateStep) Do(_ context.Context, state *State) error {
	schema, content, overall := Aggregate(state.Report.Pages, state.Report.Robots, state.Report.ContextFile)
	state.Report.Schema = schema
	state.Report.Content = content
	state.Report.OverallScore = overall
	return nil
}
