package leaderboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreFormat(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	if err := s.SaveName(ctx, "ann"); err != nil {
		t.Fatalf("SaveName() error = %v", err)
	}
	submitAll(t, s, Entry{Game: "snake", Name: "ann", Score: 4}, Entry{Game: "maze", Name: "bob", Score: 9})

	names, _ := os.ReadFile(filepath.Join(dir, NamesFile))
	if got, want := string(names), "2024-05-01T12:00:00Z: ann\n"; got != want {
		t.Errorf("names.txt = %q, expected %q", got, want)
	}
	board, _ := os.ReadFile(filepath.Join(dir, LeaderboardFile))
	if got, want := string(board), "maze|bob|9\nsnake|ann|4\n"; got != want {
		t.Errorf("leaderboard.txt = %q, expected %q", got, want)
	}
}

func TestFileStoreSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	raw := "snake|ann|12\ngarbage\nsnake|bob|lots\n\nsnake|cat|3|extra\nsnake|dan|5"
	if err := os.WriteFile(filepath.Join(dir, LeaderboardFile), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	top, err := s.Top(context.Background(), "snake", 10)
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	if len(top) != 2 || top[0].Name != "ann" || top[1].Name != "dan" {
		t.Errorf("Top() = %v, expected ann and dan", top)
	}

	// A submit rewrites the board without the bad lines.
	submitAll(t, s, Entry{Game: "snake", Name: "eve", Score: 8})
	board, _ := os.ReadFile(filepath.Join(dir, LeaderboardFile))
	if got, want := string(board), "snake|ann|12\nsnake|eve|8\nsnake|dan|5\n"; got != want {
		t.Errorf("leaderboard.txt = %q, expected %q", got, want)
	}
}

func TestSQLStoreNames(t *testing.T) {
	s, err := OpenSQL(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	for _, n := range []string{"ann", "bob (Played snake)"} {
		if err := s.SaveName(ctx, n); err != nil {
			t.Fatalf("SaveName(%q) error = %v", n, err)
		}
	}
	names, err := s.Names(ctx)
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if len(names) != 2 || names[1] != "bob (Played snake)" {
		t.Errorf("Names() = %v", names)
	}
}
