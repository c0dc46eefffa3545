// Package main provides the entry point for the agentlens CLI.
//
// agentlens audits websites for AI-agent readiness: robots.txt access for
// AI crawlers, llms.txt presence, Schema.org structured data, and content
// density after markdown extraction.
//
// Usage:
//
//	agentlens audit <url>
//	agentlens audit --input <file>
//
// See --help for all available options.
package main

// main is the entry point for agentlens.
func main() {
	Execute()
}
