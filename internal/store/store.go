// Package store handles SQLite persistence of the game journal.
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

	"github.com/verte-zerg/codebreaker/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrGameNotFound reports a journal lookup for an unknown game ID.
var ErrGameNotFound = errors.New("game not found")

const gameColumns = "id, started_at, ended_at, code_length, code, guesses, duration_ms"

// Store wraps SQLite access for finished games.
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
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			code_length INTEGER NOT NULL,
			code TEXT NOT NULL,
			guesses INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_guesses (
			game_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			guess TEXT NOT NULL,
			exact INTEGER NOT NULL,
			partial INTEGER NOT NULL,
			PRIMARY KEY (game_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_games_code_length ON games(code_length);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame stores a finished game and its guesses.
func (s *Store) InsertGame(ctx context.Context, game model.GameRecord, guesses []model.GuessRecord) (id int64, err error) {
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

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (started_at, ended_at, code_length, code, guesses, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		game.StartedAt.UTC().Format(time.RFC3339Nano),
		game.EndedAt.UTC().Format(time.RFC3339Nano),
		game.CodeLength,
		game.Code,
		game.Guesses,
		game.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(guesses) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO game_guesses (game_id, seq, guess, exact, partial)
			 VALUES (?, ?, ?, ?, ?)`)
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
		for _, g := range guesses {
			if _, err = stmt.ExecContext(ctx, id, g.Seq, g.Guess, g.Exact, g.Partial); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListGames returns finished games filtered by the journal config, oldest first.
func (s *Store) ListGames(ctx context.Context, cfg model.JournalConfig) ([]model.GameRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Length > 0 {
		clauses = append(clauses, "code_length = ?")
		args = append(args, cfg.Length)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT %s
		FROM games
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, gameColumns, strings.Join(clauses, " AND "))
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

	var games []model.GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}
	return games, nil
}

// GetGame returns one finished game by ID.
func (s *Store) GetGame(ctx context.Context, id int64) (model.GameRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+gameColumns+" FROM games WHERE id = ?", id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.GameRecord{}, fmt.Errorf("%w: %d", ErrGameNotFound, id)
	}
	return g, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (model.GameRecord, error) {
	var g model.GameRecord
	var startedAt, endedAt string
	if err := row.Scan(&g.ID, &startedAt, &endedAt, &g.CodeLength, &g.Code, &g.Guesses, &g.DurationMs); err != nil {
		return model.GameRecord{}, err
	}
	var err error
	if g.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return model.GameRecord{}, err
	}
	if g.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return model.GameRecord{}, err
	}
	return g, nil
}

// ListGuesses returns the guesses of one game in order.
func (s *Store) ListGuesses(ctx context.Context, gameID int64) ([]model.GuessRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, guess, exact, partial FROM game_guesses WHERE game_id = ? ORDER BY seq ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.GuessRecord
	for rows.Next() {
		var g model.GuessRecord
		if err := rows.Scan(&g.Seq, &g.Guess, &g.Exact, &g.Partial); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
