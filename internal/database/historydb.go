package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hanselhansel/agentlens/internal/model"
)

// HistoryDB provides SQLite-based storage for audit reports.
// It manages connection pooling and provides methods for saving and
// querying audit history.
//
// Design decision: We store full reports as JSON alongside a few indexed
// summary columns. History queries only touch the summary columns; the
// JSON blob is loaded when a specific report is requested. This keeps the
// schema stable while the report model evolves.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "agentlens.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple connections just contend.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Site audit reports store complete site audits as JSON
	CREATE TABLE IF NOT EXISTS site_reports (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		domain TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		overall_score REAL NOT NULL,
		pages_audited INTEGER NOT NULL,
		pages_failed INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_site_reports_url ON site_reports(url);
	CREATE INDEX IF NOT EXISTS idx_site_reports_domain ON site_reports(domain);
	CREATE INDEX IF NOT EXISTS idx_site_reports_timestamp ON site_reports(timestamp);

	-- Page audit reports store single-page audits as JSON
	CREATE TABLE IF NOT EXISTS page_reports (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		overall_score REAL NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_page_reports_url ON page_reports(url);
	CREATE INDEX IF NOT EXISTS idx_page_reports_timestamp ON page_reports(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveSiteReport saves a complete site audit report and returns its ID.
func (hdb *HistoryDB) SaveSiteReport(ctx context.Context, report *model.SiteAuditReport) (string, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	id := uuid.NewString()
	query := `
	INSERT INTO site_reports (id, url, domain, overall_score, pages_audited, pages_failed, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		id,
		report.URL,
		report.Domain,
		report.OverallScore,
		report.PagesAudited,
		report.PagesFailed,
		string(reportJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save site report: %w", err)
	}

	return id, nil
}

// SavePageReport saves a single-page audit report and returns its ID.
func (hdb *HistoryDB) SavePageReport(ctx context.Context, report *model.AuditReport) (string, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	id := uuid.NewString()
	query := `
	INSERT INTO page_reports (id, url, overall_score, report_json)
	VALUES (?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		id,
		report.URL,
		report.OverallScore,
		string(reportJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save page report: %w", err)
	}

	return id, nil
}

// GetLatestSiteReport retrieves the most recent site report for a URL.
// Returns nil without error when no report exists.
func (hdb *HistoryDB) GetLatestSiteReport(ctx context.Context, url string) (*model.SiteAuditReport, error) {
	query := `
	SELECT report_json FROM site_reports
	WHERE url = ?
	ORDER BY timestamp DESC
	LIMIT 1
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, url).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site report: %w", err)
	}

	var report model.SiteAuditReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetSiteReportByID retrieves a site report by its ID.
// Returns nil without error when no report exists.
func (hdb *HistoryDB) GetSiteReportByID(ctx context.Context, id string) (*model.SiteAuditReport, error) {
	query := `
	SELECT report_json FROM site_reports
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site report: %w", err)
	}

	var report model.SiteAuditReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListAuditedSites returns the distinct site URLs with stored reports.
func (hdb *HistoryDB) ListAuditedSites(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT url FROM site_reports
	ORDER BY url
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// HistoryEntry contains summary information about a stored site report.
// This is used for displaying audit history without loading full reports.
type HistoryEntry struct {
	// ID is the unique identifier of the report in the database.
	ID string

	// URL is the audited site URL.
	URL string

	// Domain is the host of the audited site.
	Domain string

	// Timestamp is when the audit was performed.
	Timestamp time.Time

	// OverallScore is the audit's overall score.
	OverallScore float64

	// PagesAudited is the number of sampled pages.
	PagesAudited int

	// PagesFailed is the number of pages with errors.
	PagesFailed int
}

// GetHistory retrieves summary entries for a site, most recent first.
// When url is empty, entries for all sites are returned. A limit of zero
// or less means no limit.
func (hdb *HistoryDB) GetHistory(ctx context.Context, url string, limit int) ([]HistoryEntry, error) {
	query := `
	SELECT id, url, domain, timestamp, overall_score, pages_audited, pages_failed
	FROM site_reports
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if url != "" {
		query += " AND url = ?"
		args = append(args, url)
	}

	query += " ORDER BY timestamp DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var results []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var timestamp string

		err := rows.Scan(
			&entry.ID,
			&entry.URL,
			&entry.Domain,
			&timestamp,
			&entry.OverallScore,
			&entry.PagesAudited,
			&entry.PagesFailed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.Timestamp = parseTimestamp(timestamp)
		results = append(results, entry)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
