package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hanselhansel/agentlens/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// testSiteReport builds a minimal site report for storage tests.
func testSiteReport(url, domain string, score float64) *model.SiteAuditReport {
	report := model.NewSiteAuditReport(url, domain)
	report.OverallScore = score
	report.PagesAudited = 5
	report.PagesFailed = 1
	report.Robots = model.RobotsReport{Found: true, Score: 25, Detail: "robots.txt found"}
	return report
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		dbPath := filepath.Join(dbDir, "agentlens.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")
		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}

		_, err := Open(dbDir, opts)
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected error to mention missing database, got %q", err.Error())
		}
	})
}

// TestSaveSiteReport tests saving and retrieving site reports.
func TestSaveSiteReport(t *testing.T) {
	t.Parallel()

	t.Run("save and get latest", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		id, err := db.SaveSiteReport(ctx, testSiteReport("https://example.com", "example.com", 67.5))
		if err != nil {
			t.Fatalf("SaveSiteReport() error = %v", err)
		}
		if id == "" {
			t.Fatal("SaveSiteReport() returned empty ID")
		}

		got, err := db.GetLatestSiteReport(ctx, "https://example.com")
		if err != nil {
			t.Fatalf("GetLatestSiteReport() error = %v", err)
		}
		if got == nil {
			t.Fatal("GetLatestSiteReport() returned nil")
		}
		if got.OverallScore != 67.5 {
			t.Errorf("OverallScore = %v, want 67.5", got.OverallScore)
		}
		if !got.Robots.Found {
			t.Error("Robots.Found lost in round trip")
		}
	})

	t.Run("get by ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		id, err := db.SaveSiteReport(ctx, testSiteReport("https://example.com", "example.com", 50))
		if err != nil {
			t.Fatalf("SaveSiteReport() error = %v", err)
		}

		got, err := db.GetSiteReportByID(ctx, id)
		if err != nil {
			t.Fatalf("GetSiteReportByID() error = %v", err)
		}
		if got == nil || got.URL != "https://example.com" {
			t.Errorf("GetSiteReportByID() = %+v, want the saved report", got)
		}
	})

	t.Run("missing report returns nil without error", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		got, err := db.GetLatestSiteReport(context.Background(), "https://nowhere.example")
		if err != nil {
			t.Fatalf("GetLatestSiteReport() error = %v", err)
		}
		if got != nil {
			t.Errorf("GetLatestSiteReport() = %+v, want nil", got)
		}
	})
}

// TestSavePageReport tests saving single-page reports.
func TestSavePageReport(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	report := model.NewAuditReport("https://example.com/pricing")
	report.OverallScore = 42

	id, err := db.SavePageReport(ctx, report)
	if err != nil {
		t.Fatalf("SavePageReport() error = %v", err)
	}
	if id == "" {
		t.Fatal("SavePageReport() returned empty ID")
	}
}

// TestGetHistory tests history summary queries.
func TestGetHistory(t *testing.T) {
	t.Parallel()

	t.Run("entries for one site, most recent first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		for _, score := range []float64{40, 55, 70} {
			if _, err := db.SaveSiteReport(ctx, testSiteReport("https://example.com", "example.com", score)); err != nil {
				t.Fatalf("SaveSiteReport() error = %v", err)
			}
		}
		if _, err := db.SaveSiteReport(ctx, testSiteReport("https://other.example", "other.example", 10)); err != nil {
			t.Fatalf("SaveSiteReport() error = %v", err)
		}

		entries, err := db.GetHistory(ctx, "https://example.com", 0)
		if err != nil {
			t.Fatalf("GetHistory() error = %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("len(entries) = %d, want 3", len(entries))
		}
		for _, entry := range entries {
			if entry.URL != "https://example.com" {
				t.Errorf("entry.URL = %q, want filtered site only", entry.URL)
			}
			if entry.PagesAudited != 5 || entry.PagesFailed != 1 {
				t.Errorf("entry pages = %d/%d, want 5/1", entry.PagesAudited, entry.PagesFailed)
			}
			if entry.ID == "" {
				t.Error("entry.ID is empty")
			}
		}
	})

	t.Run("limit bounds the result", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		for range 5 {
			if _, err := db.SaveSiteReport(ctx, testSiteReport("https://example.com", "example.com", 50)); err != nil {
				t.Fatalf("SaveSiteReport() error = %v", err)
			}
		}

		entries, err := db.GetHistory(ctx, "https://example.com", 2)
		if err != nil {
			t.Fatalf("GetHistory() error = %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("len(entries) = %d, want 2", len(entries))
		}
	})

	t.Run("empty url returns all sites", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		if _, err := db.SaveSiteReport(ctx, testSiteReport("https://a.example", "a.example", 30)); err != nil {
			t.Fatalf("SaveSiteReport() error = %v", err)
		}
		if _, err := db.SaveSiteReport(ctx, testSiteReport("https://b.example", "b.example", 60)); err != nil {
			t.Fatalf("SaveSiteReport() error = %v", err)
		}

		entries, err := db.GetHistory(ctx, "", 0)
		if err != nil {
			t.Fatalf("GetHistory() error = %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("len(entries) = %d, want 2", len(entries))
		}
	})
}

// TestListAuditedSites tests the distinct site listing.
func TestListAuditedSites(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	for _, url := range []string{"https://b.example", "https://a.example", "https://b.example"} {
		if _, err := db.SaveSiteReport(ctx, testSiteReport(url, "x", 1)); err != nil {
			t.Fatalf("SaveSiteReport() error = %v", err)
		}
	}

	sites, err := db.ListAuditedSites(ctx)
	if err != nil {
		t.Fatalf("ListAuditedSites() error = %v", err)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(sites) != len(want) {
		t.Fatalf("sites = %v, want %v", sites, want)
	}
	for i := range want {
		if sites[i] != want[i] {
			t.Errorf("sites[%d] = %q, want %q", i, sites[i], want[i])
		}
	}
}

// TestParseTimestamp tests the SQLite timestamp format fallbacks.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{name: "sqlite default", input: "2026-08-26 10:30:00"},
		{name: "iso with zone", input: "2026-08-26T10:30:00Z"},
		{name: "garbage", input: "not a timestamp", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.zero {
				t.Errorf("parseTimestamp(%q).IsZero() = %v, want %v", tt.input, got.IsZero(), tt.zero)
			}
		})
	}
}
