// Package snake implements the classic snake on a grid that fills the
// screen.
package snake

import (
	"errors"
	"slices"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

// ID is the registry and leaderboard identifier.
const ID = "snake"

// Segment variants.
const (
	segBody = iota
	segHead
)

const cellSize = 0.8

// Point is a board cell.
type Point struct {
	X, Y int
}

func (p Point) add(d engine.Dir) Point {
	v := d.Vec()
	return Point{X: p.X + int(v.X), Y: p.Y + int(v.Y)}
}

type segment struct {
	at Point
	id engine.ID
}

// Game implements snake.
type Game struct {
	cfg        config.SnakeConfig
	cols, rows int
	env        engine.Env
	st         state
}

type state struct {
	body     []segment // head first
	dir      engine.Dir
	next     engine.Dir
	food     engine.ID
	eaten    int
	interval float64
	stepper  engine.TimerID
}

func init() {
	registry.Register(ID, "Snake", func(opts registry.Options) (engine.Game, error) {
		cfg, err := config.Load[config.SnakeConfig](opts.Config, ID)
		if err != nil {
			return nil, err
		}
		return New(cfg, opts.Runtime)
	})
}

// New creates a snake board filling the runtime screen, two columns per
// cell.
func New(cfg config.SnakeConfig, rt core.RuntimeConfig) (*Game, error) {
	cols, rows := rt.ScreenW/2, rt.ScreenH-core.HUDRows
	if cfg.StartLength < 1 || cols < 1 || rows < cfg.StartLength {
		return nil, errors.New("snake: board too small for the starting snake")
	}
	if cfg.StepInterval <= 0 {
		return nil, errors.New("snake: step_interval must be positive")
	}
	return &Game{
		cfg:  cfg,
		cols: cols,
		rows: rows,
		env:  engine.Env{Bounds: core.NewBox(0, 0, float64(cols), float64(rows))},
	}, nil
}

func (g *Game) ID() string               { return ID }
func (g *Game) Title() string            { return "Snake" }
func (g *Game) Vitals() engine.Vitals    { return engine.Vitals{} }
func (g *Game) Environment() *engine.Env { return &g.env }
func (g *Game) Rules() []engine.Rule     { return nil }

func (g *Game) SaveState() any {
	st := g.st
	st.body = slices.Clone(g.st.body)
	return st
}

func (g *Game) RestoreState(v any) { g.st = v.(state) }

// Length returns the number of segments.
func (g *Game) Length() int {
	return len(g.st.body)
}

// Head returns the cell of the head.
func (g *Game) Head() Point {
	return g.st.body[0].at
}

// Setup lays the snake out vertically at the centre heading up, places
// food and starts stepping.
func (g *Game) Setup(s *engine.Session) error {
	g.st = state{dir: engine.DirUp, next: engine.DirUp, interval: g.cfg.StepInterval}

	cx, cy := g.cols/2, (g.rows-g.cfg.StartLength)/2
	for i := 0; i < g.cfg.StartLength; i++ {
		p := Point{X: cx, Y: cy + i}
		variant := segBody
		if i == 0 {
			variant = segHead
		}
		g.st.body = append(g.st.body, segment{at: p, id: g.spawnSegment(s, p, variant)})
	}
	g.placeFood(s)
	g.st.stepper = s.Every(g.st.interval, g.step)
	return nil
}

func (g *Game) spawnSegment(s *engine.Session, p Point, variant int) engine.ID {
	e := s.Store.Spawn(engine.Entity{Kind: engine.KindSegment, Box: cellBox(p), Variant: variant})
	return e.ID
}

func cellBox(p Point) core.Box {
	return core.BoxAt(float64(p.X)+0.5, float64(p.Y)+0.5, cellSize, cellSize)
}

// Control buffers a turn. Turning back onto the neck is ignored.
func (g *Game) Control(s *engine.Session, in core.InputState, dt float64) error {
	var d engine.Dir
	switch {
	case in.Held(core.ActionUp):
		d = engine.DirUp
	case in.Held(core.ActionDown):
		d = engine.DirDown
	case in.Held(core.ActionLeft):
		d = engine.DirLeft
	case in.Held(core.ActionRight):
		d = engine.DirRight
	}
	if d != engine.DirNone && d != g.st.dir.Reverse() {
		g.st.next = d
	}
	return nil
}

// step moves the snake one cell. Leaving the board or running into the
// body loses; the tail cell counts as free unless the snake is growing.
func (g *Game) step(s *engine.Session) {
	g.st.dir = g.st.next
	head := g.st.body[0].at.add(g.st.dir)

	if head.X < 0 || head.X >= g.cols || head.Y < 0 || head.Y >= g.rows {
		s.Lose()
		return
	}

	food := s.Store.Get(g.st.food)
	eating := food != nil && cellBox(head) == food.Box

	check := g.st.body
	if !eating {
		check = check[:len(check)-1]
	}
	for _, seg := range check {
		if seg.at == head {
			s.Lose()
			return
		}
	}

	if e := s.Store.Get(g.st.body[0].id); e != nil {
		e.Variant = segBody
	}
	g.st.body = append([]segment{{at: head, id: g.spawnSegment(s, head, segHead)}}, g.st.body...)

	if !eating {
		tail := g.st.body[len(g.st.body)-1]
		s.Store.Kill(tail.id)
		g.st.body = g.st.body[:len(g.st.body)-1]
		return
	}

	food.Kill()
	s.AddScore(g.cfg.Points)
	g.st.eaten++
	g.speedUp(s)
	g.placeFood(s)
}

// speedUp shortens the step interval every speed_up_every meals.
func (g *Game) speedUp(s *engine.Session) {
	if g.cfg.SpeedUpEvery <= 0 || g.st.eaten%g.cfg.SpeedUpEvery != 0 {
		return
	}
	next := max(g.st.interval-g.cfg.SpeedUpBy, g.cfg.MinInterval)
	if next == g.st.interval || next <= 0 {
		return
	}
	g.st.interval = next
	s.CancelTimer(g.st.stepper)
	g.st.stepper = s.Every(next, g.step)
}

// placeFood puts food on a random free cell. A full board wins.
func (g *Game) placeFood(s *engine.Session) {
	taken := make(map[Point]bool, len(g.st.body))
	for _, seg := range g.st.body {
		taken[seg.at] = true
	}
	var free []Point
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			if p := (Point{X: x, Y: y}); !taken[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.st.food = 0
		s.Win()
		return
	}
	p := free[s.Rand.IntN(len(free))]
	g.st.food = s.Store.Spawn(engine.Entity{Kind: engine.KindPellet, Box: cellBox(p)}).ID
}

func (g *Game) Settle(s *engine.Session, dt float64) error {
	return nil
}
