package pipeline

import "github.com/hanselhansel/agentlens/internal/model"

// State is the shared audit state passed through the pipeline steps.
// Each step reads what earlier steps produced and fills in its own part.
// Steps run sequentially, so no locking is needed; concurrency lives
// inside individual steps.
type State struct {
	// Target is the immutable audit configuration.
	Target model.AuditTarget

	// Report accumulates the audit result. Never nil.
	Report *model.SiteAuditReport

	// RobotsRaw is the raw robots.txt text, kept so discovery can filter
	// URLs without a second fetch. Empty when robots.txt was not found.
	RobotsRaw string

	// Seed is the crawl result of the seed page. Filled by the site-wide
	// checks step.
	Seed model.CrawlResult

	// Crawled holds the crawl results of the non-seed sampled pages, in
	// sample order.
	Crawled []model.CrawlResult
}

// NewState creates the pipeline state for a target.
func NewState(target model.AuditTarget) *State {
	return &State{
		Target: target,
		Report: model.NewSiteAuditReport(target.URL, target.Domain),
	}
}
