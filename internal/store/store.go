// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/cyberguard/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width UTC so text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for quiz results.
type Store struct {
	db *sql.DB
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
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			tier TEXT NOT NULL,
			certificate_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_ended_at ON results(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_results_difficulty ON results(difficulty);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResult stores a completed quiz result.
func (s *Store) InsertResult(ctx context.Context, rec model.ResultRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (session_id, player, difficulty, score, total, tier, certificate_id, started_at, ended_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.Player,
		rec.Difficulty,
		rec.Score,
		rec.Total,
		rec.Tier,
		rec.CertificateID,
		rec.StartedAt.UTC().Format(timeLayout),
		rec.EndedAt.UTC().Format(timeLayout),
		rec.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListResults returns results matching cfg, oldest first.
func (s *Store) ListResults(ctx context.Context, cfg model.HistoryConfig) ([]model.ResultRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, cfg.Difficulty)
	}
	if cfg.Player != "" {
		clauses = append(clauses, "player = ? COLLATE NOCASE")
		args = append(args, cfg.Player)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, session_id, player, difficulty, score, total, tier, certificate_id, started_at, ended_at, duration_ms
		FROM results
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
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

	var results []model.ResultRecord
	for rows.Next() {
		var rec model.ResultRecord
		var startedAt, endedAt string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Player, &rec.Difficulty, &rec.Score, &rec.Total, &rec.Tier, &rec.CertificateID, &startedAt, &endedAt, &rec.DurationMs); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		results = results[len(results)-cfg.Last:]
	}
	return results, nil
}

// BestScores returns the highest-percentage result per difficulty.
func (s *Store) BestScores(ctx context.Context) ([]model.BestScore, error) {
	query := `WITH ranked AS (
		SELECT difficulty, player, score, total,
			ROW_NUMBER() OVER (
				PARTITION BY difficulty
				ORDER BY CAST(score AS REAL) / total DESC, duration_ms ASC, id ASC
			) AS rn,
			COUNT(*) OVER (PARTITION BY difficulty) AS sessions
		FROM results
		WHERE total > 0
	)
	SELECT difficulty, player, score, total, sessions
	FROM ranked
	WHERE rn = 1
	ORDER BY difficulty`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.BestScore
	for rows.Next() {
		var best model.BestScore
		if err := rows.Scan(&best.Difficulty, &best.Player, &best.Score, &best.Total, &best.Sessions); err != nil {
			return nil, err
		}
		result = append(result, best)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
