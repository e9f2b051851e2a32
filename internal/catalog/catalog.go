// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists a log of extraction runs in SQLite. The
// catalog is opt-in: nothing opens it unless the caller asks for it,
// so the default on-disk footprint of an extraction stays the single
// output text file.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdftext/pkg/types"
)

// Store manages the run catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pdf_path TEXT NOT NULL,
			output_path TEXT,
			pages INTEGER,
			text_length INTEGER,
			status TEXT NOT NULL,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_pdf_path ON runs(pdf_path)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one recorded extraction outcome.
type Run struct {
	ID         int64
	PDFPath    string
	OutputPath string
	Pages      int
	TextLength int
	Status     string
	Error      string
	CreatedAt  time.Time
}

const (
	statusOK     = "ok"
	statusFailed = "failed"
)

// Record appends the outcome of one extraction to the catalog.
func (s *Store) Record(ctx context.Context, pdfPath string, res types.Result) error {
	status := statusOK
	if !res.Success {
		status = statusFailed
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (pdf_path, output_path, pages, text_length, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pdfPath, res.OutputPath, res.Pages, res.TextLength,
		status, res.Error, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording run for %s: %w", pdfPath, err)
	}
	return nil
}

// ListOptions filters a catalog listing.
type ListOptions struct {
	// Limit caps the number of runs returned (0 means 20).
	Limit int

	// FailedOnly restricts the listing to failed runs.
	FailedOnly bool
}

// List returns recorded runs, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Run, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, pdf_path, output_path, pages, text_length, status, error, created_at
		FROM runs`
	args := []any{}
	if opts.FailedOnly {
		query += ` WHERE status = ?`
		args = append(args, statusFailed)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.PDFPath, &r.OutputPath, &r.Pages,
			&r.TextLength, &r.Status, &r.Error, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, created); perr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
