// Package store keeps a catalog of experiment runs in SQLite so sweeps can
// be compared after the fact without grepping log files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one recorded simulation.
type Run struct {
	ID         string
	Experiment string
	Device     string
	NQubits    int
	Shots      int
	Status     string
	Hellinger  sql.NullFloat64
	Elapsed    time.Duration
	Error      string
	StartedAt  time.Time
	FinishedAt sql.NullTime
}

// Store manages the run database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewStore creates or opens the run catalog under dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	dbPath := filepath.Join(dir, "runs.db")

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		experiment TEXT NOT NULL,
		device TEXT NOT NULL,
		nqubits INTEGER NOT NULL,
		shots INTEGER NOT NULL,
		status TEXT NOT NULL,
		hellinger REAL,
		elapsed_ns INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		started_at DATETIME NOT NULL,
		finished_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_runs_experiment ON runs(experiment);
	CREATE INDEX IF NOT EXISTS idx_runs_device ON runs(device);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Begin records a new run in the running state and returns its ID.
func (s *Store) Begin(experiment, device string, nqubits, shots int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO runs (id, experiment, device, nqubits, shots, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, experiment, device, nqubits, shots, StatusRunning, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("store: record run: %w", err)
	}
	return id, nil
}

// Complete marks a run finished. hellinger may be nil when no reference
// distribution was available at run time; Score can attach one later.
func (s *Store) Complete(id string, hellinger *float64, elapsed time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var h sql.NullFloat64
	if hellinger != nil {
		h = sql.NullFloat64{Float64: *hellinger, Valid: true}
	}
	res, err := s.db.Exec(`
		UPDATE runs SET status = ?, hellinger = ?, elapsed_ns = ?, finished_at = ?
		WHERE id = ?`,
		StatusCompleted, h, elapsed.Nanoseconds(), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: complete run: %w", err)
	}
	return checkUpdated(res, id)
}

// Score attaches a Hellinger distance to an already recorded run.
func (s *Store) Score(id string, hellinger float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE runs SET hellinger = ? WHERE id = ?`, hellinger, id)
	if err != nil {
		return fmt.Errorf("store: score run: %w", err)
	}
	return checkUpdated(res, id)
}

// Fail marks a run failed with the error text.
func (s *Store) Fail(id string, runErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	res, err := s.db.Exec(`
		UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		StatusFailed, msg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: fail run: %w", err)
	}
	return checkUpdated(res, id)
}

// Get returns a single run by ID.
func (s *Store) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, experiment, device, nqubits, shots, status, hellinger,
		       elapsed_ns, error, started_at, finished_at
		FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, experiment, device, nqubits, shots, status, hellinger,
		       elapsed_ns, error, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*Run, error) {
	var r Run
	var elapsedNS int64
	err := s.Scan(&r.ID, &r.Experiment, &r.Device, &r.NQubits, &r.Shots,
		&r.Status, &r.Hellinger, &elapsedNS, &r.Error, &r.StartedAt, &r.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("store: run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan run: %w", err)
	}
	r.Elapsed = time.Duration(elapsedNS)
	return &r, nil
}

func checkUpdated(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("store: run %s not found", id)
	}
	return nil
}
