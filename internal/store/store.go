// Package store handles SQLite persistence of assessments.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when no assessment has the requested name.
var ErrNotFound = errors.New("assessment not found")

// Store wraps SQLite access for assessment data.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
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
		`CREATE TABLE IF NOT EXISTS assessments (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			subject TEXT NOT NULL DEFAULT '',
			recommendation TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS assessment_scores (
			assessment_id INTEGER NOT NULL,
			metric TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (assessment_id, metric)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveAssessment inserts or replaces an assessment by name, including all of
// its scores. The creation time of an existing assessment is kept.
func (s *Store) SaveAssessment(ctx context.Context, a model.Assessment) (id int64, err error) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return 0, fmt.Errorf("assessment name is empty")
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO assessments (name, subject, recommendation, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET subject = excluded.subject, recommendation = excluded.recommendation`,
		name,
		a.Subject,
		a.Recommendation,
		createdAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return 0, err
	}
	if err = tx.QueryRowContext(ctx, `SELECT id FROM assessments WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM assessment_scores WHERE assessment_id = ?`, id); err != nil {
		return 0, err
	}

	if len(a.Scores) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO assessment_scores (assessment_id, metric, value) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for metric, value := range a.Scores {
			if _, err = stmt.ExecContext(ctx, id, metric, value); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetAssessment loads an assessment by name.
func (s *Store) GetAssessment(ctx context.Context, name string) (model.Assessment, error) {
	var a model.Assessment
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, subject, recommendation, created_at FROM assessments WHERE name = ?`,
		strings.TrimSpace(name),
	).Scan(&a.ID, &a.Name, &a.Subject, &a.Recommendation, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Assessment{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return model.Assessment{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Assessment{}, err
	}

	scores, err := s.loadScores(ctx, `WHERE assessment_id = ?`, a.ID)
	if err != nil {
		return model.Assessment{}, err
	}
	a.Scores = scores[a.ID]
	if a.Scores == nil {
		a.Scores = score.ScoreSet{}
	}
	return a, nil
}

// ListAssessments returns every assessment in insertion order.
func (s *Store) ListAssessments(ctx context.Context) ([]model.Assessment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, subject, recommendation, created_at FROM assessments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := []model.Assessment{}
	for rows.Next() {
		var a model.Assessment
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.Subject, &a.Recommendation, &createdAt); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	scores, err := s.loadScores(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Scores = scores[result[i].ID]
		if result[i].Scores == nil {
			result[i].Scores = score.ScoreSet{}
		}
	}
	return result, nil
}

// DeleteAssessment removes an assessment and its scores.
func (s *Store) DeleteAssessment(ctx context.Context, name string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM assessments WHERE name = ?`, strings.TrimSpace(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("%q: %w", name, ErrNotFound)
		return err
	}
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM assessment_scores WHERE assessment_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// CountAssessments returns the number of stored assessments.
func (s *Store) CountAssessments(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// EnsureSamples stores the given assessments when the database is empty.
// It reports whether anything was written.
func (s *Store) EnsureSamples(ctx context.Context, samples []model.Assessment) (bool, error) {
	n, err := s.CountAssessments(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	for _, a := range samples {
		if _, err := s.SaveAssessment(ctx, a); err != nil {
			return false, fmt.Errorf("seed %q: %w", a.Name, err)
		}
	}
	return len(samples) > 0, nil
}

func (s *Store) loadScores(ctx context.Context, where string, args ...any) (map[int64]score.ScoreSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT assessment_id, metric, value FROM assessment_scores `+where, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[int64]score.ScoreSet{}
	for rows.Next() {
		var id int64
		var metric string
		var value float64
		if err := rows.Scan(&id, &metric, &value); err != nil {
			return nil, err
		}
		set, ok := result[id]
		if !ok {
			set = score.ScoreSet{}
			result[id] = set
		}
		set[metric] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", v, err)
	}
	return t, nil
}
