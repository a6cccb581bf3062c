// Package store persists form build results so generated identifiers and
// URLs survive after the pipeline run, replacing the write-back step of a
// spreadsheet-hosted bank.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hbmp/go-formbank/pkg/form"
)

const defaultRecentLimit = 20

// Store manages the build-result SQLite database.
type Store struct {
	db *sql.DB
}

// Record is one persisted build outcome.
type Record struct {
	ID         int64                `json:"id"`
	FormTitle  string               `json:"formTitle"`
	Result     form.BuildResult     `json:"result"`
	Stats      form.ValidationStats `json:"stats"`
	RecordedAt time.Time            `json:"recordedAt"`
}

// Open opens or creates the database at path, creating parent directories and
// the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		form_id TEXT NOT NULL,
		form_title TEXT NOT NULL,
		edit_url TEXT,
		published_url TEXT,
		response_spreadsheet_id TEXT,
		response_sheet_name TEXT,
		created_at TEXT NOT NULL,
		sections_count INTEGER NOT NULL,
		questions_count INTEGER NOT NULL,
		skipped_count INTEGER NOT NULL,
		errors TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	)`)
	return err
}

// Save persists one build result together with the stats of the pass that
// produced it.
func (s *Store) Save(ctx context.Context, meta form.Meta, result form.BuildResult, stats form.ValidationStats) (int64, error) {
	errorsJSON, err := json.Marshal(stats.Errors)
	if err != nil {
		return 0, fmt.Errorf("store: encode errors: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO results (
		form_id, form_title, edit_url, published_url,
		response_spreadsheet_id, response_sheet_name, created_at,
		sections_count, questions_count, skipped_count, errors, recorded_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.FormID, meta.Title, result.EditURL, result.PublishedURL,
		result.ResponseSpreadsheetID, result.ResponseSheetName,
		result.CreatedAt.UTC().Format(time.RFC3339),
		stats.SectionsCount, stats.QuestionsCount, stats.SkippedCount,
		string(errorsJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert result: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the most recently recorded results, newest first. A limit of
// zero applies the default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		id, form_id, form_title, edit_url, published_url,
		response_spreadsheet_id, response_sheet_name, created_at,
		sections_count, questions_count, skipped_count, errors, recorded_at
	FROM results ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query results: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec                   Record
			createdAt, recordedAt string
			errorsJSON            string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Result.FormID, &rec.FormTitle,
			&rec.Result.EditURL, &rec.Result.PublishedURL,
			&rec.Result.ResponseSpreadsheetID, &rec.Result.ResponseSheetName,
			&createdAt,
			&rec.Stats.SectionsCount, &rec.Stats.QuestionsCount, &rec.Stats.SkippedCount,
			&errorsJSON, &recordedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan result: %w", err)
		}
		rec.Result.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		if err := json.Unmarshal([]byte(errorsJSON), &rec.Stats.Errors); err != nil {
			return nil, fmt.Errorf("store: decode errors: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
