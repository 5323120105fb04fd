package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/freeflow-dev/freeflow/internal/dive"
)

// ErrNotFound is returned when no dive matches a lookup.
var ErrNotFound = errors.New("dive not found")

// Store provides SQLite-backed persistence for dives.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS dives (
		id TEXT PRIMARY KEY,
		variant TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		elapsed_ms INTEGER NOT NULL DEFAULT 0,
		score REAL NOT NULL DEFAULT 0,
		tier TEXT NOT NULL,
		reason TEXT NOT NULL,
		spawned INTEGER NOT NULL DEFAULT 0,
		taps INTEGER NOT NULL DEFAULT 0,
		budget_remaining INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS dives_ended_at ON dives(ended_at);
	`
	_, err := db.Exec(schema)
	return err
}

// RecordDive stores a finished dive. A result without an ID gets a fresh one.
// Recording the same ID twice replaces the earlier row.
func (s *Store) RecordDive(r dive.Result) (*Dive, error) {
	d := Dive{
		ID:              r.ID,
		Variant:         r.Variant,
		StartedAt:       stamp(r.StartedAt),
		EndedAt:         stamp(r.EndedAt),
		ElapsedMs:       r.Elapsed.Milliseconds(),
		Score:           r.Score,
		TierName:        r.Tier.Name,
		Reason:          string(r.Reason),
		Spawned:         r.Spawned,
		Taps:            r.Taps,
		BudgetRemaining: r.BudgetRemaining,
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.TierName == "" {
		d.TierName = d.Tier().Name
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO dives
		 (id, variant, started_at, ended_at, elapsed_ms, score, tier, reason, spawned, taps, budget_remaining)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Variant, d.StartedAt, d.EndedAt, d.ElapsedMs, d.Score, d.TierName, d.Reason,
		d.Spawned, d.Taps, d.BudgetRemaining,
	)
	if err != nil {
		return nil, fmt.Errorf("insert dive: %w", err)
	}

	return &d, nil
}

const diveColumns = `id, variant, started_at, ended_at, elapsed_ms, score, tier, reason, spawned, taps, budget_remaining`

func scanDive(row interface{ Scan(...any) error }) (*Dive, error) {
	var d Dive
	err := row.Scan(&d.ID, &d.Variant, &d.StartedAt, &d.EndedAt, &d.ElapsedMs, &d.Score,
		&d.TierName, &d.Reason, &d.Spawned, &d.Taps, &d.BudgetRemaining)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan dive: %w", err)
	}
	return &d, nil
}

// GetDive retrieves a dive by ID.
func (s *Store) GetDive(id string) (*Dive, error) {
	return scanDive(s.db.QueryRow(
		`SELECT `+diveColumns+` FROM dives WHERE id = ?`, id,
	))
}

// Latest returns the most recently finished dive.
func (s *Store) Latest() (*Dive, error) {
	return scanDive(s.db.QueryRow(
		`SELECT ` + diveColumns + ` FROM dives ORDER BY ended_at DESC LIMIT 1`,
	))
}

// Best returns the highest scoring dive. Ties go to the earliest.
func (s *Store) Best() (*Dive, error) {
	return scanDive(s.db.QueryRow(
		`SELECT ` + diveColumns + ` FROM dives ORDER BY score DESC, ended_at ASC LIMIT 1`,
	))
}

// ListDives returns summaries of the most recent dives.
func (s *Store) ListDives(limit int) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT id, variant, score, tier, taps, ended_at
		 FROM dives
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query dives: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Variant, &sum.Score, &sum.Tier, &sum.Taps, &sum.EndedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summaries, nil
}

// PruneOlderThan removes dives that ended more than days ago.
// If dryRun is true, nothing is deleted. Returns the pruned dive IDs.
func (s *Store) PruneOlderThan(days int, dryRun bool) ([]string, error) {
	cutoff := stamp(time.Now().AddDate(0, 0, -days))
	return s.prune(`SELECT id FROM dives WHERE ended_at < ? ORDER BY ended_at ASC`, dryRun, cutoff)
}

// PruneKeepRecent removes all but the keep most recent dives.
// If dryRun is true, nothing is deleted. Returns the pruned dive IDs.
func (s *Store) PruneKeepRecent(keep int, dryRun bool) ([]string, error) {
	if keep < 0 {
		keep = 0
	}
	return s.prune(
		`SELECT id FROM dives ORDER BY ended_at DESC LIMIT -1 OFFSET ?`,
		dryRun, keep,
	)
}

func (s *Store) prune(query string, dryRun bool, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prunable dives: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan dive id: %w", err)
		}
		ids = append(ids, id)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	if dryRun {
		return ids, nil
	}
	for i, id := range ids {
		if _, err := s.db.Exec(`DELETE FROM dives WHERE id = ?`, id); err != nil {
			return ids[:i], fmt.Errorf("delete dive %s: %w", id, err)
		}
	}
	return ids, nil
}

// Count returns the number of stored dives.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM dives`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dives: %w", err)
	}
	return n, nil
}

// stamp normalizes times to whole UTC seconds so stored values sort and
// compare as text.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
