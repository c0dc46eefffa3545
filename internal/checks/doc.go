// Package checks implements the four audit pillars: robots.txt access for
// AI agents, context file (llms.txt) presence, embedded JSON-LD structured
// data, and content density of extracted markdown.
//
// The network-facing checks (robots, context file) probe well-known paths
// rooted at the site origin. The page-level checks (schema, content) are
// pure functions over already-fetched HTML or extracted markdown, which
// keeps them trivially testable.
package checks
