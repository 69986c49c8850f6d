package maze

import (
	"math"
	"testing"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
)

const frame = 1.0 / 60

func testConfig(t *testing.T, layout ...string) config.MazeConfig {
	t.Helper()
	cfg, err := config.Default[config.MazeConfig](ID)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(layout) > 0 {
		cfg.Layout = layout
	}
	return cfg
}

func startLoop(t *testing.T, cfg config.MazeConfig) (*Game, *engine.Loop) {
	t.Helper()
	g, err := New(cfg, core.DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l, err := engine.NewLoop(g, 3)
	if err != nil {
		t.Fatalf("NewLoop() error = %v", err)
	}
	if err := l.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return g, l
}

func near(a, b core.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		wantErr bool
	}{
		{"valid", []string{"#####", "#P.o#", "#G..#", "#####"}, false},
		{"empty", nil, true},
		{"no player", []string{"#####", "#..G#", "#####"}, true},
		{"two players", []string{"#####", "#P.P#", "#####"}, true},
		{"no pellets", []string{"#####", "#P G#", "#####"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLayout(tc.lines)
			if (err != nil) != tc.wantErr {
				t.Errorf("ParseLayout() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}

	l, err := ParseLayout([]string{"#####", "#P.o#", "#G..#", "#####"})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Pellet) != 3 || len(l.Power) != 1 || len(l.Ghosts) != 1 {
		t.Errorf("pellets/power/ghosts = %d/%d/%d, expected 3/1/1", len(l.Pellet), len(l.Power), len(l.Ghosts))
	}
	if l.Player != (Cell{Col: 1, Row: 1}) {
		t.Errorf("player = %+v, expected (1, 1)", l.Player)
	}
	if !l.Grid.Wall(0, 0) || l.Grid.Wall(2, 1) {
		t.Error("wall map does not match the layout")
	}
}

func TestDefaultLayoutLoads(t *testing.T) {
	g, l := startLoop(t, testConfig(t))
	s := l.Session()

	if n := s.Store.Count(engine.KindEnemy); n != 4 {
		t.Errorf("ghosts = %d, expected 4", n)
	}
	if n := s.Store.Count(engine.KindPellet) + s.Store.Count(engine.KindPowerPellet); n != len(g.layout.Pellet)+len(g.layout.Power) {
		t.Errorf("pellets = %d, expected %d", n, len(g.layout.Pellet)+len(g.layout.Power))
	}
	if s.Lives() != 3 {
		t.Errorf("lives = %d, expected 3", s.Lives())
	}
}

func TestClearingPelletsWins(t *testing.T) {
	_, l := startLoop(t, testConfig(t, "#####", "#P..#", "#####"))
	s := l.Session()
	right := core.InputState{}.With(core.ActionRight)

	for i := 0; i < 60 && s.Running(); i++ {
		l.Advance(frame, right)
	}

	if s.Phase() != engine.PhaseWon {
		t.Errorf("phase = %v, expected won", s.Phase())
	}
	if s.Score() != 20 {
		t.Errorf("score = %d, expected 20", s.Score())
	}
}

func TestGhostContactCostsLife(t *testing.T) {
	g, l := startLoop(t, testConfig(t, "#######", "#P..G.#", "#######"))
	s := l.Session()
	p := s.Store.Get(g.st.player)
	ghost := s.Store.First(engine.KindEnemy)
	ghost.Box = p.Box

	l.Advance(frame, core.InputState{})

	if s.Lives() != 2 {
		t.Fatalf("lives = %d, expected 2", s.Lives())
	}
	if c := s.Store.Get(g.st.player).Box.Center(); !near(c, core.Vec{X: 1.5, Y: 1.5}) {
		t.Errorf("player centre = %+v, expected the start cell", c)
	}
	if c := s.Store.First(engine.KindEnemy).Box.Center(); !near(c, core.Vec{X: 4.5, Y: 1.5}) {
		t.Errorf("ghost centre = %+v, expected its start cell", c)
	}
	if s.Phase() != engine.PhaseRunning {
		t.Errorf("phase = %v, expected running", s.Phase())
	}
}

func TestLastLifeLoses(t *testing.T) {
	cfg := testConfig(t, "#######", "#P..G.#", "#######")
	cfg.Player.Lives = 1
	g, l := startLoop(t, cfg)
	s := l.Session()
	s.Store.First(engine.KindEnemy).Box = s.Store.Get(g.st.player).Box

	l.Advance(frame, core.InputState{})

	if s.Phase() != engine.PhaseLost {
		t.Errorf("phase = %v, expected lost", s.Phase())
	}
}

func TestFrightenedGhostIsEaten(t *testing.T) {
	g, l := startLoop(t, testConfig(t, "#######", "#P..G.#", "#######"))
	s := l.Session()
	g.frighten(s)
	ghost := s.Store.First(engine.KindEnemy)
	ghost.Box = s.Store.Get(g.st.player).Box

	l.Advance(frame, core.InputState{})

	if s.Lives() != 3 {
		t.Errorf("lives = %d, expected 3", s.Lives())
	}
	if s.Score() != 200 {
		t.Errorf("score = %d, expected 200", s.Score())
	}
	if ghost.Variant != ghostChasing {
		t.Error("eaten ghost is still frightened")
	}
	if c := ghost.Box.Center(); !near(c, core.Vec{X: 4.5, Y: 1.5}) {
		t.Errorf("ghost centre = %+v, expected its start cell", c)
	}
}

func TestPowerPelletExpires(t *testing.T) {
	cfg := testConfig(t, "######", "#Po  #", "#....#", "######")
	cfg.Power.Duration = 0.5
	g, l := startLoop(t, cfg)
	s := l.Session()
	right := core.InputState{}.With(core.ActionRight)

	for i := 0; i < 20 && s.Score() == 0; i++ {
		l.Advance(frame, right)
	}
	if s.Score() != 50 {
		t.Fatalf("score = %d, expected 50 after the power pellet", s.Score())
	}
	if !g.Frightened() {
		t.Fatal("Frightened() = false right after the power pellet")
	}

	for i := 0; i < 40; i++ {
		l.Advance(frame, right)
	}
	if g.Frightened() {
		t.Error("Frightened() = true after the power ran out")
	}
}

func TestGhostSteering(t *testing.T) {
	t.Run("dead end reverses", func(t *testing.T) {
		g, l := startLoop(t, testConfig(t, "#####", "#P.G#", "#####"))
		ghost := l.Session().Store.First(engine.KindEnemy)
		ghost.Dir = engine.DirRight

		g.steerGhost(l.Session(), ghost, frame)
		if ghost.NextDir != engine.DirLeft {
			t.Errorf("NextDir = %v, expected left", ghost.NextDir)
		}
	})

	t.Run("corridor never reverses", func(t *testing.T) {
		cfg := testConfig(t, "#########", "#P..G...#", "#########")
		cfg.Ghosts.TurnChance = 1
		g, l := startLoop(t, cfg)
		ghost := l.Session().Store.First(engine.KindEnemy)
		ghost.Dir = engine.DirLeft

		for i := 0; i < 20; i++ {
			g.steerGhost(l.Session(), ghost, frame)
			if ghost.NextDir == engine.DirRight {
				t.Fatalf("ghost reversed in an open corridor")
			}
		}
	})
}

func TestTunnelWrap(t *testing.T) {
	g, l := startLoop(t, testConfig(t, "#####", "  P  ", "#.###", "#####"))
	s := l.Session()
	left := core.InputState{}.With(core.ActionLeft)

	wrapped := false
	prev := s.Store.Get(g.st.player).Box.Center().X
	for i := 0; i < 60; i++ {
		l.Advance(frame, left)
		x := s.Store.Get(g.st.player).Box.Center().X
		if x > prev {
			wrapped = true
		}
		if x < 0 || x >= 5 {
			t.Fatalf("player centre x = %v, expected inside the maze", x)
		}
		prev = x
	}
	if !wrapped {
		t.Error("player never wrapped through the tunnel")
	}
}

func TestDeterministicRun(t *testing.T) {
	cfg := testConfig(t)
	dirs := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
	pilot := func(tick uint64, s *engine.Session) core.InputState {
		return core.InputState{}.With(dirs[(tick/40)%4])
	}

	run := func() engine.SimResult {
		g, err := New(cfg, core.DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		l, err := engine.NewLoop(g, 11)
		if err != nil {
			t.Fatal(err)
		}
		res, err := engine.Simulate(l, 1500, frame, pilot)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("runs differ: %+v vs %+v", a, b)
	}
	if a.Failures != 0 {
		t.Errorf("failures = %d, expected 0", a.Failures)
	}
	if a.Score == 0 {
		t.Error("pilot scored nothing")
	}
}
