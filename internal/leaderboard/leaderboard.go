// Package leaderboard persists player names and per-game high scores.
//
// Three backends share one contract: a pair of plain text files, SQLite, and
// an HTTP client for a remote arcade server. Open picks one from a board
// spec.
package leaderboard

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// MaxEntries is how many scores a board retains across all games.
const MaxEntries = 100

// TopN is how many entries the public leaderboard shows per game.
const TopN = 5

// ErrInvalid is returned for names, game IDs or scores a board cannot store.
var ErrInvalid = errors.New("leaderboard: invalid entry")

// Entry is one score on the board.
type Entry struct {
	Game  string `json:"game"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Store is a leaderboard backend. Implementations are safe for concurrent use
// within one process.
type Store interface {
	// SaveName appends a visitor name to the name log.
	SaveName(ctx context.Context, name string) error

	// Submit records a score and trims the board to MaxEntries.
	Submit(ctx context.Context, e Entry) error

	// Top returns up to k entries for game, best first; k <= 0 means TopN.
	// Equal scores keep the order they were submitted in.
	Top(ctx context.Context, game string, k int) ([]Entry, error)

	Close() error
}

// ValidateName checks a name or game ID. Both end up as fields of a
// '|'-separated line.
func ValidateName(s string) error {
	switch {
	case strings.TrimSpace(s) == "":
		return fmt.Errorf("%w: empty name", ErrInvalid)
	case strings.ContainsAny(s, "|\r\n"):
		return fmt.Errorf("%w: %q contains '|' or a line break", ErrInvalid, s)
	}
	return nil
}

// Validate checks every field of an entry.
func (e Entry) Validate() error {
	if err := ValidateName(e.Game); err != nil {
		return err
	}
	if err := ValidateName(e.Name); err != nil {
		return err
	}
	if e.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalid, e.Score)
	}
	return nil
}

// PlayedNote is the name log line written when someone submits a score.
func PlayedNote(e Entry) string {
	return fmt.Sprintf("%s (Played %s)", e.Name, e.Game)
}

// rank sorts entries best first, keeping submission order for ties, and
// trims to MaxEntries.
func rank(entries []Entry) []Entry {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// Open creates a store from a board spec:
//
//	file:DIR            names.txt and leaderboard.txt in DIR
//	sqlite:PATH         SQLite database at PATH
//	http://HOST[:PORT]  remote arcade server
//
// A bare path is treated as a file board directory. A leading ~ expands to
// the home directory.
func Open(spec string) (Store, error) {
	switch {
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return NewClient(spec, nil), nil
	case strings.HasPrefix(spec, "sqlite:"):
		path, err := expandHome(strings.TrimPrefix(spec, "sqlite:"))
		if err != nil {
			return nil, err
		}
		return OpenSQL(path)
	default:
		dir, err := expandHome(strings.TrimPrefix(spec, "file:"))
		if err != nil {
			return nil, err
		}
		return NewFileStore(dir)
	}
}

func expandHome(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("leaderboard: empty board path")
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
