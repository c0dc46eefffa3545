// Package pipeline orchestrates site audits as a sequence of steps over a
// shared audit state: site-wide checks, page discovery, batch crawling,
// page scoring, and aggregation. The Auditor wraps the pipeline with the
// overall deadline and the single-page audit path; BatchProcessor runs
// whole audits concurrently for URL lists.
package pipeline
