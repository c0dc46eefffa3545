package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"sort"
	"strings"

	"github.com/temoto/robotstxt"

	"github.com/hanselhansel/agentlens/internal/fetch"
	"github.com/hanselhansel/agentlens/internal/model"
)

// defaultFilterAgent is the user-agent candidate URLs are checked against
// when a robots.txt is available. GPTBot is the most widely referenced AI
// crawler, so its rules are the best proxy for "what AI agents may fetch".
const defaultFilterAgent = "GPTBot"

// Discoverer builds the page sample for a site audit.
type Discoverer struct {
	// client fetches sitemaps.
	client *fetch.Client

	// filterAgent is the user-agent used for robots.txt URL filtering.
	filterAgent string

	// rng drives the shuffle inside diverse sampling. Seedable for
	// deterministic tests.
	rng *rand.Rand

	// logger receives discovery progress at debug level.
	logger *slog.Logger
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithFilterAgent sets the user-agent used for robots.txt filtering.
func WithFilterAgent(agent string) Option {
	return func(d *Discoverer) {
		if agent != "" {
			d.filterAgent = agent
		}
	}
}

// WithRand sets the random source used by diverse sampling.
func WithRand(rng *rand.Rand) Option {
	return func(d *Discoverer) {
		if rng != nil {
			d.rng = rng
		}
	}
}

// WithLogger sets the logger for discovery progress.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discoverer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Discoverer around the given HTTP client.
func New(client *fetch.Client, opts ...Option) *Discoverer {
	d := &Discoverer{
		client:      client,
		filterAgent: defaultFilterAgent,
		rng:         rand.New(rand.NewSource(rand.Int63())), //nolint:gosec // Sampling variety, not cryptography
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Discover builds the audit page sample for seedURL.
//
// Strategy:
//  1. Sitemap discovery from the seed's origin.
//  2. If the sitemap yields nothing, fall back to seedLinks (the same-site
//     links found while crawling the seed page).
//  3. Filter candidates through robotsTxt, if provided.
//  4. Normalize and deduplicate.
//  5. Select a diverse sample of at most maxPages, seed always first.
func (d *Discoverer) Discover(ctx context.Context, seedURL string, maxPages int, robotsTxt string, seedLinks []string) model.DiscoveryResult {
	origin := originOf(seedURL)
	method := model.DiscoveryMethodSitemap

	candidates := FetchSitemapURLs(ctx, d.client, origin)
	if len(candidates) == 0 {
		method = model.DiscoveryMethodSpider
		candidates = seedLinks
	}
	urlsFound := len(candidates)

	if robotsTxt != "" && len(candidates) > 0 {
		candidates = d.filterByRobots(candidates, robotsTxt)
	}

	candidates = dedupeNormalized(candidates)
	sampled := d.selectDiversePages(candidates, seedURL, maxPages)

	d.logger.Debug("pages discovered",
		"method", method,
		"found", urlsFound,
		"sampled", len(sampled),
	)

	return model.DiscoveryResult{
		Method:      method,
		URLsFound:   urlsFound,
		URLsSampled: sampled,
		Detail:      fmt.Sprintf("method=%s, found=%d, sampled=%d", method, urlsFound, len(sampled)),
	}
}

// NormalizeURL normalizes a URL for deduplication: lowercased scheme and
// host, trailing slash stripped, fragment dropped.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		path = "/"
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path
}

// filterByRobots removes candidate URLs the filter agent may not fetch.
// An unparseable robots.txt filters nothing.
func (d *Discoverer) filterByRobots(urls []string, robotsTxt string) []string {
	data, err := robotstxt.FromString(robotsTxt)
	if err != nil {
		return urls
	}

	allowed := make([]string, 0, len(urls))
	for _, rawURL := range urls {
		u, err := url.Parse(rawURL)
		if err != nil {
			continue
		}
		path := u.Path
		if path == "" {
			path = "/"
		}
		if data.TestAgent(path, d.filterAgent) {
			allowed = append(allowed, rawURL)
		}
	}
	return allowed
}

// dedupeNormalized removes URLs that normalize to the same form, keeping
// the first occurrence in its original spelling.
func dedupeNormalized(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	unique := make([]string, 0, len(urls))
	for _, rawURL := range urls {
		norm := NormalizeURL(rawURL)
		if !seen[norm] {
			seen[norm] = true
			unique = append(unique, rawURL)
		}
	}
	return unique
}

// selectDiversePages picks at most maxPages URLs, always starting with the
// seed. Candidates are grouped by first path segment and drawn round-robin
// across groups so the sample covers different sections of the site
// instead of, say, fifty consecutive blog posts.
func (d *Discoverer) selectDiversePages(urls []string, seedURL string, maxPages int) []string {
	selected := []string{seedURL}
	seen := map[string]bool{NormalizeURL(seedURL): true}

	if maxPages <= 1 {
		return selected
	}

	groups := make(map[string][]string)
	for _, rawURL := range urls {
		norm := NormalizeURL(rawURL)
		if seen[norm] {
			continue
		}
		groups[firstPathSegment(rawURL)] = append(groups[firstPathSegment(rawURL)], rawURL)
	}

	// Shuffle within each group for variety
	for _, group := range groups {
		d.rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Round-robin across groups until the budget fills or groups drain
	for len(selected) < maxPages && len(keys) > 0 {
		remaining := keys[:0]
		for _, key := range keys {
			if len(selected) >= maxPages {
				break
			}
			group := groups[key]
			if len(group) == 0 {
				continue
			}
			rawURL := group[0]
			groups[key] = group[1:]

			norm := NormalizeURL(rawURL)
			if !seen[norm] {
				seen[norm] = true
				selected = append(selected, rawURL)
			}
			if len(groups[key]) > 0 {
				remaining = append(remaining, key)
			}
		}
		keys = remaining
	}

	return selected
}

// firstPathSegment returns the first path segment of a URL, or "" for the
// root.
func firstPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return ""
	}
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[:idx]
	}
	return path
}

// originOf returns the scheme://host prefix of a URL.
func originOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Scheme + "://" + u.Host
}
