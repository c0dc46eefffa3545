// Package extract turns raw page HTML into clean markdown for content
// analysis. Extraction locates the main content through a layered fallback
// chain, sanitization strips boilerplate elements, and conversion produces
// normalized markdown with structure (headings, lists, code fences, links,
// tables) preserved.
package extract
