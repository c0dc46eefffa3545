// Package fetch provides the HTTP client used by all audit probes and
// crawling. It centralizes the User-Agent, timeouts, redirect policy, and
// response body size limits so every phase of an audit hits the network
// the same way.
package fetch
