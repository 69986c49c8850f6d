package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/registry"

	_ "github.com/vovakirdan/arcade-loop/internal/games/breakout"
	_ "github.com/vovakirdan/arcade-loop/internal/games/maze"
	_ "github.com/vovakirdan/arcade-loop/internal/games/platformer"
	_ "github.com/vovakirdan/arcade-loop/internal/games/runner"
	_ "github.com/vovakirdan/arcade-loop/internal/games/shooter"
	_ "github.com/vovakirdan/arcade-loop/internal/games/snake"
)

var allGames = []string{"breakout", "maze", "platformer", "runner", "shooter", "snake"}

func TestList(t *testing.T) {
	list := registry.List()
	if len(list) != len(allGames) {
		t.Fatalf("List() = %d games, expected %d", len(list), len(allGames))
	}
	for i, info := range list {
		if info.ID != allGames[i] {
			t.Errorf("List()[%d] = %q, expected %q", i, info.ID, allGames[i])
		}
		if info.Title == "" {
			t.Errorf("%s has no title", info.ID)
		}
	}
}

func TestCreateAndStart(t *testing.T) {
	for _, id := range allGames {
		t.Run(id, func(t *testing.T) {
			g, err := registry.Create(id, registry.Options{Difficulty: config.DifficultyNormal})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if g.ID() != id {
				t.Errorf("ID() = %q, expected %q", g.ID(), id)
			}
			l, err := engine.NewLoop(g, 1)
			if err != nil {
				t.Fatalf("NewLoop() error = %v", err)
			}
			if err := l.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			for i := 0; i < 60; i++ {
				l.Advance(1.0/60, core.InputState{})
			}
			if err := l.LastError(); err != nil {
				t.Errorf("LastError() = %v", err)
			}
		})
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := registry.Create("pinball", registry.Options{}); err == nil {
		t.Error("Create() of an unknown game succeeded")
	}
	if registry.Exists("pinball") {
		t.Error("Exists(pinball) = true")
	}
	if got := registry.Title("pinball"); got != "pinball" {
		t.Errorf("Title() = %q, expected the ID back", got)
	}
}

func TestCreateReadsConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "snake.yaml"), []byte("start_length: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts := registry.Options{
		Runtime: core.RuntimeConfig{ScreenW: 20, ScreenH: 11},
		Config:  config.NewSource(dir),
	}
	if _, err := registry.Create("snake", opts); err == nil {
		t.Error("Create() accepted a snake longer than the board")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() of a taken ID did not panic")
		}
	}()
	registry.Register("snake", "Snake Again", nil)
}
