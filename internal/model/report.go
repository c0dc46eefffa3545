package model

import "time"

// AuditReport is the result of a single-page audit: the four pillar
// reports for one URL plus the overall score.
type AuditReport struct {
	// URL is the audited URL.
	URL string `json:"url"`

	// AuditedAt is when the audit ran.
	AuditedAt time.Time `json:"audited_at"`

	// OverallScore is the sum of the four pillar scores.
	OverallScore float64 `json:"overall_score"`

	// Robots is the crawler-access pillar.
	Robots RobotsReport `json:"robots"`

	// ContextFile is the context-file pillar.
	ContextFile ContextFileReport `json:"context_file"`

	// Schema is the structured-data pillar.
	Schema SchemaReport `json:"schema"`

	// Content is the content-density pillar.
	Content ContentReport `json:"content"`

	// Errors accumulates non-fatal failures in the order they occurred.
	Errors []string `json:"errors,omitempty"`
}

// NewAuditReport creates an empty AuditReport for the given URL with the
// audit timestamp set.
func NewAuditReport(url string) *AuditReport {
	return &AuditReport{
		URL:       url,
		AuditedAt: time.Now(),
	}
}

// SiteAuditReport is the result of a multi-page site audit. Robots and
// ContextFile are site-wide; Schema and Content are depth-weighted
// aggregates over the sampled pages.
type SiteAuditReport struct {
	// URL is the seed URL of the audit.
	URL string `json:"url"`

	// Domain is the host of the seed URL.
	Domain string `json:"domain"`

	// AuditedAt is when the audit ran.
	AuditedAt time.Time `json:"audited_at"`

	// OverallScore is the sum of the four pillar scores.
	OverallScore float64 `json:"overall_score"`

	// Robots is the site-wide crawler-access pillar.
	Robots RobotsReport `json:"robots"`

	// ContextFile is the site-wide context-file pillar.
	ContextFile ContextFileReport `json:"context_file"`

	// Schema is the aggregated structured-data pillar.
	Schema SchemaReport `json:"schema"`

	// Content is the aggregated content-density pillar.
	Content ContentReport `json:"content"`

	// Discovery records how the page sample was built.
	Discovery DiscoveryResult `json:"discovery"`

	// Pages holds one PageScore per sampled URL, seed first.
	Pages []PageScore `json:"pages,omitempty"`

	// PagesAudited is the number of sampled pages, successful or not.
	PagesAudited int `json:"pages_audited"`

	// PagesFailed is the number of pages whose PageScore carries errors.
	PagesFailed int `json:"pages_failed"`

	// Errors accumulates non-fatal failures in the order they occurred.
	Errors []string `json:"errors,omitempty"`
}

// NewSiteAuditReport creates an empty SiteAuditReport for the given seed
// URL and domain with the audit timestamp set.
func NewSiteAuditReport(url, domain string) *SiteAuditReport {
	return &SiteAuditReport{
		URL:       url,
		Domain:    domain,
		AuditedAt: time.Now(),
	}
}

// AddError appends a non-fatal error message to the report.
func (r *SiteAuditReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}
