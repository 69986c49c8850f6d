package leaderboard

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// File names inside a file board directory.
const (
	NamesFile       = "names.txt"
	LeaderboardFile = "leaderboard.txt"
)

// FileStore keeps the board in two text files:
//
//	names.txt        <RFC3339 timestamp>: <name>
//	leaderboard.txt  <game>|<name>|<score>, best first
//
// Malformed leaderboard lines are skipped on read. The mutex serialises the
// read-modify-write of a submit within this process only.
type FileStore struct {
	dir string
	now func() time.Time

	mu sync.Mutex
}

// NewFileStore opens a file board in dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the board directory.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) SaveName(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	line := fmt.Sprintf("%s: %s\n", f.now().UTC().Format(time.RFC3339), name)

	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(filepath.Join(f.dir, NamesFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot open name log: %w", err)
	}
	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return fmt.Errorf("leaderboard: cannot write name log: %w", err)
	}
	return file.Close()
}

func (f *FileStore) Submit(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}
	entries = rank(append(entries, e))

	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s|%s|%d\n", e.Game, e.Name, e.Score)
	}

	// Replace the file in one rename so readers never see half a board.
	tmp, err := os.CreateTemp(f.dir, LeaderboardFile+".*")
	if err != nil {
		return fmt.Errorf("leaderboard: cannot write board: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("leaderboard: cannot write board: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("leaderboard: cannot write board: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(f.dir, LeaderboardFile)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("leaderboard: cannot replace board: %w", err)
	}
	return nil
}

func (f *FileStore) Top(ctx context.Context, game string, k int) ([]Entry, error) {
	if k <= 0 {
		k = TopN
	}
	f.mu.Lock()
	entries, err := f.read()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := []Entry{}
	for _, e := range entries {
		if len(out) == k {
			break
		}
		if e.Game == game {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *FileStore) Close() error { return nil }

// read parses the board file. A missing file is an empty board.
func (f *FileStore) read() ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, LeaderboardFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot read board: %w", err)
	}

	var entries []Entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if e, ok := parseLine(sc.Text()); ok {
			entries = append(entries, e)
		}
	}
	return entries, sc.Err()
}

func parseLine(line string) (Entry, bool) {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) != 3 || parts[0] == "" {
		return Entry{}, false
	}
	score, err := strconv.Atoi(parts[2])
	if err != nil {
		return Entry{}, false
	}
	return Entry{Game: parts[0], Name: parts[1], Score: score}, true
}
