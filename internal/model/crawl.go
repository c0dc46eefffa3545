package model

// CrawlResult is the outcome of fetching and extracting a single page.
// It is produced once by the crawler and read-only afterwards; each
// concurrent crawl task owns its own CrawlResult until the single-threaded
// merge in aggregation.
type CrawlResult struct {
	// URL is the page URL as requested.
	URL string `json:"url"`

	// StatusCode is the HTTP response status, zero when the request
	// never completed.
	StatusCode int `json:"status_code"`

	// HTML is the raw response body.
	HTML string `json:"-"`

	// Markdown is the cleaned, structured text extracted from HTML via
	// the extraction fallback chain.
	Markdown string `json:"-"`

	// Links are the same-site outbound links discovered on the page,
	// absolute and deduplicated. Used by spider-fallback discovery.
	Links []string `json:"links,omitempty"`

	// Success reports whether the fetch and extraction produced usable
	// content.
	Success bool `json:"success"`

	// Error holds the failure reason when Success is false.
	Error string `json:"error,omitempty"`
}
