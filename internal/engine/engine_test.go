package engine

import (
	"github.com/vovakirdan/arcade-loop/internal/core"
)

// testGame is a configurable Game used across the engine tests.
type testGame struct {
	vitals  Vitals
	env     Env
	setup   func(s *Session) error
	control func(s *Session, in core.InputState, dt float64) error
	rules   []Rule
	settle  func(s *Session, dt float64) error
	counter int
}

func (g *testGame) ID() string         { return "test" }
func (g *testGame) Title() string      { return "Test" }
func (g *testGame) Vitals() Vitals     { return g.vitals }
func (g *testGame) Environment() *Env  { return &g.env }
func (g *testGame) Rules() []Rule      { return g.rules }
func (g *testGame) Layers() []Kind     { return []Kind{KindDecoration, KindEnemy, KindPlayer} }
func (g *testGame) SaveState() any     { return g.counter }
func (g *testGame) RestoreState(v any) { g.counter = v.(int) }

func (g *testGame) Setup(s *Session) error {
	g.counter = 0
	if g.setup != nil {
		return g.setup(s)
	}
	return nil
}

func (g *testGame) Control(s *Session, in core.InputState, dt float64) error {
	if g.control != nil {
		return g.control(s, in, dt)
	}
	return nil
}

func (g *testGame) Settle(s *Session, dt float64) error {
	if g.settle != nil {
		return g.settle(s, dt)
	}
	return nil
}

func (g *testGame) Paint(dst *core.Screen, e *Entity) {
	r := '?'
	switch e.Kind {
	case KindPlayer:
		r = 'P'
	case KindEnemy:
		r = 'E'
	case KindDecoration:
		r = '.'
	}
	Identity().Fill(dst, e.Box, r, core.ColorDefault)
}

func (g *testGame) Overlay(dst *core.Screen, s *Session) {}

func newTestLoop(g *testGame) *Loop {
	l, err := NewLoop(g, 1)
	if err != nil {
		panic(err)
	}
	return l
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
