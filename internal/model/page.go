package model

import (
	"net/url"
	"strings"
)

// PageScore holds the page-level pillar outputs for one sampled URL.
// Every sampled URL yields exactly one PageScore: fetch failures produce
// an entry carrying the error instead of being dropped.
type PageScore struct {
	// URL is the audited page URL.
	URL string `json:"url"`

	// Schema is the page's structured-data pillar result.
	Schema SchemaReport `json:"schema"`

	// Content is the page's content-density pillar result.
	Content ContentReport `json:"content"`

	// Errors lists non-fatal failures encountered for this page.
	Errors []string `json:"errors,omitempty"`
}

// Successful reports whether the page counts toward aggregation.
//
// A page with an error still counts as successful when it yielded a
// nonzero word count: partial content is usable content. This predicate
// is intentional; do not "fix" it to require an empty error list.
func (p PageScore) Successful() bool {
	return len(p.Errors) == 0 || p.Content.WordCount > 0
}

// Weight returns the aggregation weight of the page based on URL path
// depth. Shallower pages are more representative of a site's readiness:
// depth 0-1 weighs 3, depth 2 weighs 2, depth 3+ weighs 1.
func (p PageScore) Weight() int {
	u, err := url.Parse(p.URL)
	if err != nil {
		return 1
	}
	path := strings.Trim(u.Path, "/")
	depth := 0
	if path != "" {
		depth = len(strings.Split(path, "/"))
	}
	switch {
	case depth <= 1:
		return 3
	case depth == 2:
		return 2
	default:
		return 1
	}
}
