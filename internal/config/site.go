package config

import "time"

// SiteConfig holds site-specific configuration for a single domain.
// This allows customizing audit behavior per site from the config file.
type SiteConfig struct {
	// MaxPages overrides the global page budget for this site.
	// If zero, the global MaxPages is used.
	MaxPages int `yaml:"maxPages,omitempty"`

	// Timeout overrides the global per-request timeout for this site.
	// If zero, the global Timeout is used.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// CrawlDelay overrides the global crawl delay for this site.
	// If zero, the global CrawlDelay is used.
	CrawlDelay time.Duration `yaml:"crawlDelay,omitempty"`

	// Agents overrides the default AI agent list checked against
	// robots.txt for this site.
	Agents []string `yaml:"agents,omitempty"`
}

// File represents the structure of the .agentlens configuration file.
type File struct {
	// Sites maps domains to their site-specific configurations.
	// Keys should be the bare host (e.g., "example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a specific domain.
// It merges the site-specific configuration with defaults.
func (cf *File) GetSiteConfig(domain string) SiteConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with site-specific configuration if present
	if siteConfig, ok := cf.Sites[domain]; ok {
		if siteConfig.MaxPages != 0 {
			result.MaxPages = siteConfig.MaxPages
		}
		if siteConfig.Timeout != 0 {
			result.Timeout = siteConfig.Timeout
		}
		if siteConfig.CrawlDelay != 0 {
			result.CrawlDelay = siteConfig.CrawlDelay
		}
		if len(siteConfig.Agents) > 0 {
			result.Agents = siteConfig.Agents
		}
	}

	return result
}
