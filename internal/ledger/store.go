package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// Store is the SQLite-backed Ledger. One store serves a whole run;
// writes are serialized by a mutex on top of WAL mode.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// Open creates (or opens) the ledger database at dbPath, creating
// parent directories as needed, and migrates the schema.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	// WAL lets the CLI read history while a run is still appending.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	store := &Store{db: conn, dbPath: dbPath}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_type TEXT NOT NULL,
			workflow_type TEXT NOT NULL,
			summary TEXT NOT NULL,
			outcome TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_created_at ON outcomes(created_at);
	`)
	if err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}

// RecordOutcome appends one outcome. A zero CreatedAt is stamped now.
func (s *Store) RecordOutcome(o *Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.Exec(`
		INSERT INTO outcomes (task_type, workflow_type, summary, outcome, notes, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		o.TaskType,
		string(o.WorkflowType),
		o.Summary,
		o.Outcome,
		o.Notes,
		o.DurationMs,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		o.ID = id
	}
	o.CreatedAt = createdAt
	return nil
}

// Recent returns up to limit outcomes, newest first.
func (s *Store) Recent(limit int) ([]*Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, task_type, workflow_type, summary, outcome, notes, duration_ms, created_at
		FROM outcomes
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []*Outcome
	for rows.Next() {
		var o Outcome
		var workflow, createdAt string
		if err := rows.Scan(&o.ID, &o.TaskType, &workflow, &o.Summary, &o.Outcome, &o.Notes, &o.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.WorkflowType = models.WorkflowType(workflow)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			o.CreatedAt = t
		}
		outcomes = append(outcomes, &o)
	}
	return outcomes, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
