// Package model defines the data structures shared across the audit
// pipeline: the audit target, per-page crawl results, pillar reports,
// and the final report types consumed by formatters and the history store.
package model
