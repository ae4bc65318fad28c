// Package runstore persists run outcomes to a DuckDB database.
package runstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rowpost/internal/runner"
	"rowpost/pkg/rowbridge"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
)

// Store wraps a DuckDB connection holding runs and invocations.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the database at path, creating the schema when missing.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("runstore: path is required")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// DB exposes the underlying connection for queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts a completed run and all of its invocations.
func (s *Store) SaveRun(ctx context.Context, results runner.Results) error {
	if results.RunID == "" {
		return errors.New("runstore: run ID is required")
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
		   run_id, function_name, endpoint, input_path, started_at, finished_at,
		   success_count, failure_count, timed_out_count, cancelled_count
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID,
		results.Function,
		results.Endpoint,
		results.Input,
		results.StartedAt,
		results.FinishedAt,
		results.Counts.Success,
		results.Counts.Failure,
		results.Counts.TimedOut,
		results.Counts.Cancelled,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, row := range results.Rows {
		if err := s.insertInvocation(ctx, results.RunID, row); err != nil {
			return err
		}
	}
	return nil
}

// insertInvocation inserts one row record keyed by its payload fingerprint.
func (s *Store) insertInvocation(ctx context.Context, runID string, row runner.RowRecord) error {
	key, err := FingerprintJSON(row.Payload)
	if err != nil {
		return fmt.Errorf("fingerprint row %d: %w", row.Index, err)
	}
	var status interface{}
	if row.Result.Status != 0 {
		status = row.Result.Status
	}
	var failureKind interface{}
	if row.Result.Kind == rowbridge.OutcomeFailure {
		failureKind = string(row.Result.Failure)
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO invocations (
		   invocation_id, run_id, row_index, payload, payload_key,
		   outcome, http_status, failure_kind, detail, started_at, elapsed_ms
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		runID,
		row.Index,
		string(row.Payload),
		key,
		string(row.Result.Kind),
		status,
		failureKind,
		row.Result.Detail,
		row.StartedAt,
		float64(row.Elapsed)/float64(time.Millisecond),
	); err != nil {
		return fmt.Errorf("insert invocation %d: %w", row.Index, err)
	}
	return nil
}

// RunSummary is one row of the runs table for listing.
type RunSummary struct {
	RunID      string
	Function   string
	Endpoint   string
	Input      string
	StartedAt  time.Time
	FinishedAt time.Time
	Counts     runner.OutcomeCounts
}

// ListRuns returns stored runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, function_name, endpoint, input_path, started_at, finished_at,
		        success_count, failure_count, timed_out_count, cancelled_count
		 FROM runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		if err := rows.Scan(
			&summary.RunID,
			&summary.Function,
			&summary.Endpoint,
			&summary.Input,
			&summary.StartedAt,
			&summary.FinishedAt,
			&summary.Counts.Success,
			&summary.Counts.Failure,
			&summary.Counts.TimedOut,
			&summary.Counts.Cancelled,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Invocation is one stored row outcome.
type Invocation struct {
	RunID       string
	RowIndex    int
	Payload     string
	PayloadKey  string
	Outcome     string
	HTTPStatus  sql.NullInt32
	FailureKind sql.NullString
	Detail      string
	ElapsedMs   float64
}

// ListInvocations returns the invocations of a run in row order.
func (s *Store) ListInvocations(ctx context.Context, runID string) ([]Invocation, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, row_index, payload, payload_key, outcome, http_status, failure_kind, detail, elapsed_ms
		 FROM invocations WHERE run_id = ? ORDER BY row_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	defer rows.Close()
	var invocations []Invocation
	for rows.Next() {
		var inv Invocation
		if err := rows.Scan(
			&inv.RunID,
			&inv.RowIndex,
			&inv.Payload,
			&inv.PayloadKey,
			&inv.Outcome,
			&inv.HTTPStatus,
			&inv.FailureKind,
			&inv.Detail,
			&inv.ElapsedMs,
		); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		invocations = append(invocations, inv)
	}
	return invocations, rows.Err()
}
