// Package store keeps the session pick journal in an in-memory SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/labpick/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const memoryDSN = ":memory:"

// Store wraps SQLite access for journal data.
type Store struct {
	db *sql.DB
}

// OpenMemory opens an empty in-memory database and applies migrations.
// Its contents are lost when the store is closed.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: gets its own database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS picks (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			lab INTEGER NOT NULL,
			picked_at TEXT NOT NULL,
			numbers TEXT NOT NULL,
			total_points INTEGER NOT NULL,
			fallbacks INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_lab ON picks(lab);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPick stores a completed pick and returns its row id.
func (s *Store) InsertPick(ctx context.Context, rec model.PickRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO picks (session_id, lab, picked_at, numbers, total_points, fallbacks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.Lab,
		rec.PickedAt.Format(time.RFC3339Nano),
		encodeNumbers(rec.Numbers),
		rec.TotalPoints,
		rec.Fallbacks,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPicks returns journal rows oldest first. Filter.Last keeps only the most recent rows.
func (s *Store) ListPicks(ctx context.Context, filter model.JournalFilter) ([]model.PickRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Lab > 0 {
		clauses = append(clauses, "lab = ?")
		args = append(args, filter.Lab)
	}
	limit := -1
	if filter.Last > 0 {
		limit = filter.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, session_id, lab, picked_at, numbers, total_points, fallbacks
		FROM (
			SELECT * FROM picks
			WHERE %s
			ORDER BY id DESC
			LIMIT ?
		)
		ORDER BY id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var picks []model.PickRecord
	for rows.Next() {
		var rec model.PickRecord
		var pickedAt, numbers string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Lab, &pickedAt, &numbers, &rec.TotalPoints, &rec.Fallbacks); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, pickedAt)
		if err != nil {
			return nil, err
		}
		rec.PickedAt = parsed
		rec.Numbers, err = decodeNumbers(numbers)
		if err != nil {
			return nil, err
		}
		picks = append(picks, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return picks, nil
}

// LabSummaries aggregates pick and fallback counts per lab.
func (s *Store) LabSummaries(ctx context.Context) ([]model.LabSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.lab, COUNT(*) AS picks, SUM(p.fallbacks) AS fallbacks,
			(SELECT l.picked_at FROM picks l WHERE l.lab = p.lab ORDER BY l.id DESC LIMIT 1) AS last_picked_at
		 FROM picks p
		 GROUP BY p.lab
		 ORDER BY p.lab ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LabSummary
	for rows.Next() {
		var sum model.LabSummary
		var last string
		if err := rows.Scan(&sum.Lab, &sum.Picks, &sum.Fallbacks, &last); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, last)
		if err != nil {
			return nil, err
		}
		sum.LastPickedAt = parsed
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func encodeNumbers(gen model.Generation) string {
	parts := make([]string, len(gen))
	for i, n := range gen {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func decodeNumbers(s string) (model.Generation, error) {
	if s == "" {
		return model.Generation{}, nil
	}
	parts := strings.Split(s, ",")
	gen := make(model.Generation, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("failed to decode numbers %q: %w", s, err)
		}
		gen[i] = n
	}
	return gen, nil
}
