package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLStore keeps the board in SQLite. Ties are broken by insertion order
// through the row id.
type SQLStore struct {
	db *sql.DB
}

// OpenSQL creates or opens a SQLite board at path. It creates the parent
// directories if needed and runs migrations.
func OpenSQL(path string) (*SQLStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open database: %w", err)
	}
	// One connection: SQLite allows a single writer and this avoids
	// SQLITE_BUSY between the pool's connections.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: cannot connect to database: %w", err)
	}

	s := &SQLStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS names (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLStore) SaveName(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO names (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("leaderboard: cannot save name: %w", err)
	}
	return nil
}

// Submit inserts the score and deletes every row beyond the best
// MaxEntries in one transaction.
func (s *SQLStore) Submit(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO scores (game_id, name, score) VALUES (?, ?, ?)",
		e.Game, e.Name, e.Score,
	); err != nil {
		return fmt.Errorf("leaderboard: cannot save score: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, id ASC LIMIT ?
		)`,
		MaxEntries,
	); err != nil {
		return fmt.Errorf("leaderboard: cannot trim scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("leaderboard: cannot commit: %w", err)
	}
	return nil
}

func (s *SQLStore) Top(ctx context.Context, game string, k int) ([]Entry, error) {
	if k <= 0 {
		k = TopN
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, name, score
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		game, k,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot query scores: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Game, &e.Name, &e.Score); err != nil {
			return nil, fmt.Errorf("leaderboard: cannot scan row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: row iteration error: %w", err)
	}
	return out, nil
}

// Names returns the logged names, oldest first.
func (s *SQLStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM names ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("leaderboard: cannot scan row: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
