package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// AuditTarget describes a single audit run: the seed URL plus the run
// configuration. It is immutable once created; concurrent pipeline tasks
// share it read-only.
type AuditTarget struct {
	// URL is the seed URL, the single entry point of the audit.
	URL string

	// Domain is the host portion of the seed URL, kept for reporting.
	Domain string

	// MaxPages is the page budget: the maximum number of pages sampled
	// for a multi-page audit, seed included.
	MaxPages int

	// Timeout applies to each individual HTTP request.
	Timeout time.Duration

	// CrawlDelay is the minimum spacing between crawl requests.
	// This is a politeness setting, not a correctness requirement.
	CrawlDelay time.Duration

	// Deadline bounds the whole site audit. When it expires the run is
	// abandoned and a synthetic timeout report is returned.
	Deadline time.Duration

	// Agents overrides the default AI agent list checked against
	// robots.txt. Empty means use the built-in default list.
	Agents []string
}

// NewAuditTarget creates an AuditTarget for the given URL, deriving the
// domain. Bare hostnames get an https scheme prepended. The caller fills
// in run configuration afterwards; zero values are replaced with defaults
// by the pipeline.
func NewAuditTarget(rawURL string) (AuditTarget, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return AuditTarget{}, ErrInvalidURL
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return AuditTarget{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Host == "" {
		return AuditTarget{}, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, rawURL)
	}
	return AuditTarget{
		URL:    rawURL,
		Domain: u.Host,
	}, nil
}

// Origin returns the scheme://host prefix of the target URL.
// Well-known probes (robots.txt, llms.txt, sitemaps) are rooted here.
func (t AuditTarget) Origin() string {
	u, err := url.Parse(t.URL)
	if err != nil {
		return t.URL
	}
	return u.Scheme + "://" + u.Host
}
