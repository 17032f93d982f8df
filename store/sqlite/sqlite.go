/*
Package sqlite persists forecast runs.

PURPOSE:
  A run is one invocation of the batch forecaster: the raw input rows (as
  submitted), the options in force, and every emitted shipment record.
  Persisting runs lets operators compare forecasts over time and re-export
  past curves.

KEY TABLES:
  runs:      One row per forecast invocation (uuid key, input snapshot)
  shipments: The emitted records, FK to runs

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql pooling.

USAGE:
  store, err := sqlite.New("./data/forecasts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bloomgate/shipment-engine/forecast"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// RunRecord is one persisted forecast invocation.
type RunRecord struct {
	ID        string
	CreatedAt time.Time
	Adjusted  bool
	// InputJSON is the submitted request body, stored verbatim so a run can
	// be replayed or audited.
	InputJSON string
	Records   []forecast.Shipment
}

// RunSummary is the list-view projection of a run.
type RunSummary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Adjusted   bool      `json:"adjusted"`
	TotalBoxes int       `json:"total_boxes"`
	Houses     int       `json:"houses"`
}

// =============================================================================
// STORE
// =============================================================================

// Store persists forecast runs in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store backed by the given database path. Use ":memory:" for
// an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		adjusted INTEGER NOT NULL DEFAULT 0,
		input_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shipments (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		ship_date TEXT NOT NULL,
		producer TEXT NOT NULL DEFAULT '',
		house_name TEXT NOT NULL,
		variety TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		shape TEXT NOT NULL DEFAULT '',
		boxes INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shipments_run ON shipments(run_id);
	CREATE INDEX IF NOT EXISTS idx_shipments_run_date ON shipments(run_id, ship_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RUN OPERATIONS
// =============================================================================

// SaveRun persists a run and its records in one transaction. An empty ID is
// assigned a fresh UUID; the assigned ID is returned.
func (s *Store) SaveRun(ctx context.Context, run RunRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, adjusted, input_json) VALUES (?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339), run.Adjusted, run.InputJSON)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO shipments (run_id, ship_date, producer, house_name, variety, color, shape, boxes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range run.Records {
		if _, err := stmt.ExecContext(ctx,
			run.ID, r.Date.String(), r.Producer, r.HouseName, r.Variety, r.Color, r.Shape, r.Boxes); err != nil {
			return "", fmt.Errorf("insert shipment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// GetRun loads one run with its records, ordered by date then house.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run := RunRecord{ID: id}
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at, adjusted, input_json FROM runs WHERE id = ?`, id).
		Scan(&createdAt, &run.Adjusted, &run.InputJSON)
	if err == sql.ErrNoRows {
		return nil, forecast.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt created_at for run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT ship_date, producer, house_name, variety, color, shape, boxes
		 FROM shipments WHERE run_id = ? ORDER BY ship_date, house_name`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec forecast.Shipment
		var dateStr string
		if err := rows.Scan(&dateStr, &rec.Producer, &rec.HouseName, &rec.Variety,
			&rec.Color, &rec.Shape, &rec.Boxes); err != nil {
			return nil, err
		}
		if rec.Date, err = forecast.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("corrupt ship_date for run %s: %w", id, err)
		}
		run.Records = append(run.Records, rec)
	}
	return &run, rows.Err()
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.adjusted,
		       COALESCE(SUM(sh.boxes), 0),
		       COUNT(DISTINCT sh.house_name)
		FROM runs r
		LEFT JOIN shipments sh ON sh.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var sum RunSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &createdAt, &sum.Adjusted, &sum.TotalBoxes, &sum.Houses); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("corrupt created_at for run %s: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
