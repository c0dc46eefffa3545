// Package log provides logging for agentlens, built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized attribute values (HTML bodies,
//     extracted markdown, sitemap payloads)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Audit runs routinely pass page content through log attributes at debug
// level. Without truncation a single verbose run can emit megabytes of
// HTML into the terminal, burying the useful lines.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("page fetched",
//	    "url", "https://example.com",
//	    "body", html, // truncated if oversized
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
