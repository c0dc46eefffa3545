package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: package-level sentinel errors rather than new error
// instances in Validate(). Callers can use errors.Is() for programmatic
// handling while the messages stay human-readable. errors.New() suffices
// because none of these messages needs dynamic values.
var (
	// ErrNoTarget is returned when no target URL or list file is specified.
	// This error occurs when neither --input nor a positional argument
	// provides a target.
	ErrNoTarget = errors.New("no target specified: provide a URL or use --input")

	// ErrInvalidTimeout is returned when the per-request timeout is not
	// positive. A zero or negative timeout would fail every request.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDeadline is returned when the audit deadline is not
	// positive. Every audit needs an overall time budget.
	ErrInvalidDeadline = errors.New("invalid deadline: must be positive")

	// ErrInvalidMaxPages is returned when the page budget is not positive.
	// An audit always covers at least the seed page.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidConcurrency is returned when the crawl concurrency is not
	// positive. Zero workers would mean no pages get fetched.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent audits at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when more than one of
	// --json, --markdown, and --csv is specified. Only one output format
	// can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json, --markdown, and --csv cannot be combined")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
