package main

import (
	"testing"
	"time"

	"github.com/hanselhansel/agentlens/internal/database"
)

func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()

		if got := cmd.Use; got != "history [url]" {
			t.Errorf("Use = %q, want %q", got, "history [url]")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"limit", "json", "show"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("missing flag %q", name)
			}
		}
	})

	t.Run("limit defaults to 10", func(t *testing.T) {
		t.Parallel()

		if got := cmd.Flags().Lookup("limit").DefValue; got != "10" {
			t.Errorf("limit default = %q, want %q", got, "10")
		}
	})
}

func TestScoreDelta(t *testing.T) {
	t.Parallel()

	now := time.Now()
	entries := []database.HistoryEntry{
		{URL: "https://a.example", OverallScore: 72.5, Timestamp: now},
		{URL: "https://b.example", OverallScore: 40, Timestamp: now.Add(-time.Hour)},
		{URL: "https://a.example", OverallScore: 70, Timestamp: now.Add(-2 * time.Hour)},
		{URL: "https://b.example", OverallScore: 45, Timestamp: now.Add(-3 * time.Hour)},
	}

	tests := []struct {
		name string
		i    int
		want string
	}{
		{name: "improvement against previous run", i: 0, want: "+2.5"},
		{name: "regression against previous run", i: 1, want: "-5.0"},
		{name: "oldest run of a site has no delta", i: 2, want: ""},
		{name: "other site's oldest run has no delta", i: 3, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scoreDelta(entries, tt.i); got != tt.want {
				t.Errorf("scoreDelta(%d) = %q, want %q", tt.i, got, tt.want)
			}
		})
	}
}
