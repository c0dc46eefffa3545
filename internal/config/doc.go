// Package config provides configuration structures and utilities for agentlens.
// It defines the main options for site audits, crawling behavior, and report
// generation preferences.
package config
