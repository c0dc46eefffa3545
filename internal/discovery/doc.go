// Package discovery builds the page sample for multi-page audits.
// It is sitemap-first with a spider fallback: candidates come from
// /sitemap.xml (or /sitemap_index.xml), and when no sitemap exists, from
// the same-site links found on the seed page. Candidates are filtered
// through robots.txt, normalized, deduplicated, and sampled for diversity
// across site sections.
package discovery
