package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/AMSONI777/docker-hardening-project/internal/model"
)

// dbFileName is the SQLite database file name inside the data directory.
const dbFileName = "hardenreport.db"

// HistoryDB provides SQLite-based storage for scan summaries.
// It manages the connection and provides methods for saving and
// retrieving summary records.
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

// SummaryRecord is a stored scan summary with its database metadata.
type SummaryRecord struct {
	// ID is the database identifier of the record.
	ID int64 `json:"id"`

	// CreatedAt is when the summary was saved.
	CreatedAt time.Time `json:"created_at"`

	// Summary is the stored scan summary.
	Summary model.ScanSummary `json:"summary"`
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

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

	// modernc.org/sqlite connection strings: mode=rw prevents creating
	// new files, mode=rwc allows creation.
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

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY errors without a retry loop.
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

// Path returns the path of the SQLite database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Scan summaries store per-severity counts per report file
	CREATE TABLE IF NOT EXISTS scan_summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_file TEXT NOT NULL,
		artifact_name TEXT,
		severities TEXT NOT NULL,
		total INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_summaries_source ON scan_summaries(source_file);
	CREATE INDEX IF NOT EXISTS idx_summaries_created ON scan_summaries(created_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveSummary stores a scan summary and returns its record ID.
// Timestamps are stored as RFC 3339 UTC strings so records remain
// readable with any SQLite client.
func (hdb *HistoryDB) SaveSummary(ctx context.Context, summary *model.ScanSummary) (int64, error) {
	severities, err := json.Marshal(summary.Severities)
	if err != nil {
		return 0, fmt.Errorf("failed to encode severities: %w", err)
	}

	result, err := hdb.db.ExecContext(ctx,
		`INSERT INTO scan_summaries (source_file, artifact_name, severities, total, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		summary.File,
		summary.ArtifactName,
		string(severities),
		summary.Total,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save summary: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get record ID: %w", err)
	}
	return id, nil
}

// ListSummaries returns all stored summaries, newest first.
func (hdb *HistoryDB) ListSummaries(ctx context.Context) ([]SummaryRecord, error) {
	rows, err := hdb.db.QueryContext(ctx,
		`SELECT id, source_file, artifact_name, severities, total, created_at
		 FROM scan_summaries
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var records []SummaryRecord
	for rows.Next() {
		record, err := scanSummaryRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summaries: %w", err)
	}
	return records, nil
}

// GetSummaryByID returns the summary with the given record ID.
// Returns nil without an error when no such record exists.
func (hdb *HistoryDB) GetSummaryByID(ctx context.Context, id int64) (*SummaryRecord, error) {
	row := hdb.db.QueryRowContext(ctx,
		`SELECT id, source_file, artifact_name, severities, total, created_at
		 FROM scan_summaries
		 WHERE id = ?`, id)

	record, err := scanSummaryRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanSummaryRow.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSummaryRow decodes one scan_summaries row into a SummaryRecord.
func scanSummaryRow(row rowScanner) (*SummaryRecord, error) {
	var record SummaryRecord
	var severities string
	var createdAt string

	if err := row.Scan(
		&record.ID,
		&record.Summary.File,
		&record.Summary.ArtifactName,
		&severities,
		&record.Summary.Total,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan summary row: %w", err)
	}

	if err := json.Unmarshal([]byte(severities), &record.Summary.Severities); err != nil {
		return nil, fmt.Errorf("failed to decode severities for record %d: %w", record.ID, err)
	}

	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp for record %d: %w", record.ID, err)
	}
	record.CreatedAt = parsed

	return &record, nil
}
