package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/leaderboard"
)

// pressGame scores points and loses when Fire is held, and loses with
// nothing scored when Up is held.
type pressGame struct {
	points int
	env    engine.Env
}

func (g *pressGame) ID() string               { return "press" }
func (g *pressGame) Title() string            { return "Press" }
func (g *pressGame) Vitals() engine.Vitals    { return engine.Vitals{} }
func (g *pressGame) Environment() *engine.Env { return &g.env }
func (g *pressGame) Rules() []engine.Rule     { return nil }
func (g *pressGame) Layers() []engine.Kind    { return []engine.Kind{engine.KindPlayer} }

func (g *pressGame) Setup(s *engine.Session) error {
	s.Store.Spawn(engine.Entity{Kind: engine.KindPlayer, Box: core.NewBox(2, 2, 1, 1)})
	return nil
}

func (g *pressGame) Control(s *engine.Session, in core.InputState, dt float64) error {
	switch {
	case in.Held(core.ActionFire):
		s.AddScore(g.points)
		s.Lose()
	case in.Held(core.ActionUp):
		s.Lose()
	}
	return nil
}

func (g *pressGame) Settle(s *engine.Session, dt float64) error { return nil }

func (g *pressGame) Paint(dst *core.Screen, e *engine.Entity) {
	engine.Identity().Fill(dst, e.Box, 'P', core.ColorDefault)
}

func (g *pressGame) Overlay(dst *core.Screen, s *engine.Session) {
	engine.DrawBanner(dst, s, g.Title(), "")
}

var t0 = time.Unix(1000, 0)

func newGameModel(t *testing.T, opts Options) GameModel {
	t.Helper()
	g := &pressGame{points: 7, env: engine.Env{Bounds: core.DefaultConfig().Playfield()}}
	loop, err := engine.NewLoop(g, 1)
	if err != nil {
		t.Fatalf("NewLoop() error = %v", err)
	}
	m := NewGameModel(loop, opts)
	m.now = func() time.Time { return t0 }
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(GameModel), cmd
}

// tick runs a tick armed outside the model, which supersedes any tick the
// model armed itself.
func tick(t *testing.T, m GameModel, at time.Time) (GameModel, tea.Cmd) {
	t.Helper()
	tok, ok := m.loop.Arm()
	if !ok {
		t.Fatal("Arm() failed")
	}
	return update(t, m, TickMsg{Token: tok, At: at})
}

func newFileBoard(t *testing.T) *leaderboard.FileStore {
	t.Helper()
	board, err := leaderboard.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return board
}

func TestGameModelReadyScreen(t *testing.T) {
	m := newGameModel(t, Options{})
	if v := plain(m.View()); !strings.Contains(v, "Press ENTER to start") {
		t.Errorf("view does not show the start prompt:\n%s", v)
	}

	m, cmd := update(t, m, keyMsg(" "))
	if m.loop.Phase() != engine.PhaseReady || cmd != nil {
		t.Errorf("phase = %v, cmd = %v after space, expected ready and no tick", m.loop.Phase(), cmd != nil)
	}

	m, cmd = update(t, m, keyMsg("enter"))
	if m.loop.Phase() != engine.PhaseRunning {
		t.Errorf("phase = %v, expected running", m.loop.Phase())
	}
	if cmd == nil {
		t.Error("start did not schedule a tick")
	}
}

func TestGameModelPauseResume(t *testing.T) {
	m := newGameModel(t, Options{})
	m, _ = update(t, m, keyMsg("enter"))

	m, _ = update(t, m, keyMsg("p"))
	if !m.Paused() {
		t.Fatal("not paused")
	}
	if _, ok := m.loop.Arm(); ok {
		t.Error("Arm() succeeded while paused")
	}
	if v := plain(m.View()); !strings.Contains(v, "PAUSED") {
		t.Error("view does not show the pause banner")
	}

	m, cmd := update(t, m, keyMsg("p"))
	if m.Paused() || cmd == nil {
		t.Errorf("paused = %v, tick scheduled = %v, expected resumed with a tick", m.Paused(), cmd != nil)
	}
	if m.loop.Phase() != engine.PhaseRunning {
		t.Errorf("phase = %v, expected running", m.loop.Phase())
	}
}

func TestGameModelStaleTick(t *testing.T) {
	m := newGameModel(t, Options{})
	m, _ = update(t, m, keyMsg("enter"))
	tok, _ := m.loop.Arm()
	m, _ = update(t, m, keyMsg("p"))
	m, _ = update(t, m, keyMsg("p"))

	m, cmd := update(t, m, TickMsg{Token: tok, At: t0})
	if cmd != nil {
		t.Error("a tick armed before the pause scheduled another")
	}
	if m.loop.Ticks() != 0 {
		t.Errorf("ticks = %d, expected 0", m.loop.Ticks())
	}
}

func TestGameModelSubmitsFinalScore(t *testing.T) {
	board := newFileBoard(t)
	m := newGameModel(t, Options{Board: board, Player: "ann"})
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg(" "))

	m, cmd := tick(t, m, t0.Add(10*time.Millisecond))
	if m.loop.Phase() != engine.PhaseLost {
		t.Fatalf("phase = %v, expected lost", m.loop.Phase())
	}
	if cmd == nil {
		t.Fatal("no submission after the game ended")
	}
	msg := cmd()
	sm, ok := msg.(submittedMsg)
	if !ok || sm.err != nil {
		t.Fatalf("submission = %#v, expected success", msg)
	}
	m, _ = update(t, m, msg)
	if !strings.Contains(plain(m.View()), "Saved 7 for ann") {
		t.Error("status line does not confirm the save")
	}
	if m.submit() != nil {
		t.Error("a second submission was scheduled")
	}

	top, err := board.Top(context.Background(), "press", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := leaderboard.Entry{Game: "press", Name: "ann", Score: 7}
	if len(top) != 1 || top[0] != want {
		t.Errorf("board = %+v, expected [%+v]", top, want)
	}

	m, cmd = update(t, m, keyMsg("r"))
	if m.loop.Phase() != engine.PhaseRunning || cmd == nil {
		t.Errorf("phase = %v after restart, expected running with a tick", m.loop.Phase())
	}
	if m.submitted {
		t.Error("restart kept the submitted flag")
	}
}

func TestGameModelSkipsZeroScore(t *testing.T) {
	m := newGameModel(t, Options{Board: newFileBoard(t), Player: "ann"})
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("up"))

	m, cmd := tick(t, m, t0)
	if m.loop.Phase() != engine.PhaseLost {
		t.Fatalf("phase = %v, expected lost", m.loop.Phase())
	}
	if cmd != nil {
		t.Error("a zero score was submitted")
	}
}

func TestGameModelBack(t *testing.T) {
	m := newGameModel(t, Options{})
	m, _ = update(t, m, keyMsg("enter"))

	m, _ = update(t, m, keyMsg("b"))
	if m.BackToMenu() {
		t.Fatal("left a running game")
	}
	m, _ = update(t, m, keyMsg("p"))
	m, _ = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("cannot leave a paused game")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newGameModel(t, Options{})
	m, cmd := update(t, m, keyMsg("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("view not cleared on quit")
	}
}

func TestGameModelPointerOffset(t *testing.T) {
	m := newGameModel(t, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 35})
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 12})

	in := m.sampler.Sample(t0)
	if !in.HasPointer || in.Pointer != (core.Vec{X: 20, Y: 7}) {
		t.Errorf("pointer = %+v (set %v), expected (20, 7)", in.Pointer, in.HasPointer)
	}

	m, _ = update(t, m, keyMsg("left"))
	if m.sampler.Sample(t0).HasPointer {
		t.Error("a direction key did not hand control back to the keyboard")
	}
}
