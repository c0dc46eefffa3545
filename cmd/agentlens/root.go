// Package main provides the entry point for the agentlens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for agentlens.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentlens",
		Short: "Audit websites for AI-agent readiness",
		Long: `agentlens audits websites for AI-agent readiness.

It scores four pillars: robots.txt access for AI crawlers, llms.txt
presence, Schema.org structured data, and content density after markdown
extraction. Site audits sample pages from the sitemap (or spider the seed
page when no sitemap exists) and aggregate per-page scores weighted by
URL depth.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
