// Package crawler fetches audit pages and extracts their links and
// content. The Batch type crawls a fixed URL list concurrently with a
// shared politeness rate limit; Parser pulls the title and same-site
// links out of fetched HTML.
package crawler
