package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanselhansel/agentlens/internal/config"
	"github.com/hanselhansel/agentlens/internal/database"
	"github.com/hanselhansel/agentlens/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Show stored audit history",
		Long: `History lists previously saved site audits, most recent first.

Without arguments, entries for all audited sites are shown. With a URL
argument, only that site's history is shown. Use --show with a report ID
to print a full stored report.

Examples:
  # Recent audits across all sites
  agentlens history

  # History for one site
  agentlens history https://example.com

  # Print a full stored report as JSON
  agentlens history --show 2f3a7c1e-8b4d-4a9f-9c2e-1d5b6a7f8e90`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum number of entries to show (0 for all)")
	cmd.Flags().BoolP("json", "j", false, "Output entries as JSON")
	cmd.Flags().String("show", "", "Print the full stored report with the given ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetString("show")
	if err != nil {
		return err
	}

	// History only reads; never create a database just to find it empty.
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no audit history found (run an audit first): %w", err)
	}
	defer db.Close()

	if showID != "" {
		return showReport(cmd, db, showID)
	}

	var url string
	if len(args) == 1 {
		target, err := model.NewAuditTarget(args[0])
		if err != nil {
			return err
		}
		url = target.URL
	}

	entries, err := db.GetHistory(cmd.Context(), url, limit)
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored audits found.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-40s %7s %6s %7s  %s\n",
		"DATE", "URL", "SCORE", "DELTA", "PAGES", "ID")
	for i, entry := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-40s %7v %6s %7d  %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.URL,
			entry.OverallScore,
			scoreDelta(entries, i),
			entry.PagesAudited,
			entry.ID,
		)
	}

	return nil
}

// scoreDelta formats the score change against the previous run of the same
// site. Entries arrive newest first, so the previous run is the next entry
// in the list with a matching URL. Runs with no visible predecessor get an
// empty column.
func scoreDelta(entries []database.HistoryEntry, i int) string {
	for j := i + 1; j < len(entries); j++ {
		if entries[j].URL != entries[i].URL {
			continue
		}
		return fmt.Sprintf("%+.1f", entries[i].OverallScore-entries[j].OverallScore)
	}
	return ""
}

// showReport prints a full stored site report by ID.
func showReport(cmd *cobra.Command, db *database.HistoryDB, id string) error {
	stored, err := db.GetSiteReportByID(cmd.Context(), id)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("no stored report with ID %s", id)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(stored)
}
