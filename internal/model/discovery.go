package model

// Discovery methods. Timeout is set only on synthetic reports produced
// when the audit deadline expires.
const (
	DiscoveryMethodSitemap = "sitemap"
	DiscoveryMethodSpider  = "spider"
	DiscoveryMethodTimeout = "timeout"
)

// DiscoveryResult records how the page sample was built, for caller
// transparency: which method won, how many candidates existed before
// sampling, and the final sampled list.
type DiscoveryResult struct {
	// Method is "sitemap", "spider", or "timeout".
	Method string `json:"method"`

	// URLsFound is the candidate count before robots filtering and
	// sampling.
	URLsFound int `json:"urls_found"`

	// URLsSampled is the final bounded sample. The seed URL is always
	// first.
	URLsSampled []string `json:"urls_sampled,omitempty"`

	// Detail is a human-readable summary.
	Detail string `json:"detail"`
}
