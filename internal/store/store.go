// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists run snapshots so trend deltas survive across
// CLI invocations. Each completed run replaces the previous one as the
// delta baseline; older runs remain queryable as history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"audioscout/pkg/types"
)

const dbFile = "audioscout.db"

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at cfg.DataDir/audioscout.db,
// creating the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			keyword_count INTEGER NOT NULL,
			valid_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_results (
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			keyword TEXT NOT NULL,
			item_count INTEGER NOT NULL,
			avg_popularity INTEGER NOT NULL,
			demand_score INTEGER NOT NULL,
			popularity_delta INTEGER NOT NULL,
			supply_delta INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			captured_at TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_results_keyword ON run_results(keyword)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunRecord summarizes one stored run for listings.
type RunRecord struct {
	ID           string
	CreatedAt    time.Time
	KeywordCount int
	ValidCount   int
}

// SaveSnapshot stores a completed snapshot as a new run and returns the
// run id. The insert is transactional: a run never appears with a partial
// result set.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot types.RunSnapshot) (string, error) {
	if len(snapshot) == 0 {
		return "", fmt.Errorf("refusing to save an empty snapshot")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	validCount := 0
	for _, r := range snapshot {
		if !r.Failed() {
			validCount++
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, keyword_count, valid_count) VALUES (?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), len(snapshot), validCount,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_results
			(run_id, position, keyword, item_count, avg_popularity, demand_score,
			 popularity_delta, supply_delta, error_message, captured_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range snapshot {
		_, err := stmt.ExecContext(ctx,
			runID, i, r.Keyword, r.ItemCount, r.AvgPopularity, r.DemandScore,
			r.PopularityDelta, r.SupplyDelta, r.ErrorMessage,
			r.CapturedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return "", fmt.Errorf("inserting result %q: %w", r.Keyword, err)
		}
	}

	return runID, tx.Commit()
}

// LatestSnapshot returns the most recently saved run's results in input
// order, or an empty snapshot when no run exists.
func (s *Store) LatestSnapshot(ctx context.Context) (types.RunSnapshot, error) {
	var runID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding latest run: %w", err)
	}
	return s.Snapshot(ctx, runID)
}

// Snapshot loads one stored run's results in input order.
func (s *Store) Snapshot(ctx context.Context, runID string) (types.RunSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT keyword, item_count, avg_popularity, demand_score,
		        popularity_delta, supply_delta, error_message, captured_at
		   FROM run_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", runID, err)
	}
	defer rows.Close()

	var snapshot types.RunSnapshot
	for rows.Next() {
		var r types.KeywordResult
		var capturedAt string
		if err := rows.Scan(&r.Keyword, &r.ItemCount, &r.AvgPopularity, &r.DemandScore,
			&r.PopularityDelta, &r.SupplyDelta, &r.ErrorMessage, &capturedAt); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, capturedAt); parseErr == nil {
			r.CapturedAt = t
		}
		snapshot = append(snapshot, r)
	}
	return snapshot, rows.Err()
}

// ListRuns returns stored runs, newest first, up to limit (0 means all).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, created_at, keyword_count, valid_count
	            FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.KeywordCount, &rec.ValidCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
