// Package maze implements a maze chase: clear every pellet while avoiding
// the ghosts, or eat them after a power pellet.
package maze

import (
	"math"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

// ID is the registry and leaderboard identifier.
const ID = "maze"

const (
	actorSize  = 0.8
	pelletSize = 0.2
)

// Ghost variants.
const (
	ghostChasing = iota
	ghostFrightened
)

// Game implements the maze chase.
type Game struct {
	cfg    config.MazeConfig
	layout *Layout
	env    engine.Env
	view   engine.Viewport
	st     state
}

type state struct {
	player engine.ID
	fright engine.TimerID
}

func init() {
	registry.Register(ID, "Maze Chase", func(opts registry.Options) (engine.Game, error) {
		cfg, err := config.Load[config.MazeConfig](opts.Config, ID)
		if err != nil {
			return nil, err
		}
		return New(cfg, opts.Runtime)
	})
}

// New creates a maze game from a layout config.
func New(cfg config.MazeConfig, rt core.RuntimeConfig) (*Game, error) {
	layout, err := ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:    cfg,
		layout: layout,
		env:    engine.Env{Bounds: layout.Grid.Bounds(), Grid: layout.Grid},
		view: engine.Viewport{
			ScaleX:  2,
			ScaleY:  1,
			OffsetX: max(0, (rt.ScreenW-layout.Grid.Cols*2)/2),
			OffsetY: core.HUDRows,
		},
	}
	return g, nil
}

func (g *Game) ID() string               { return ID }
func (g *Game) Title() string            { return "Maze Chase" }
func (g *Game) Vitals() engine.Vitals    { return engine.Vitals{Lives: g.cfg.Player.Lives} }
func (g *Game) Environment() *engine.Env { return &g.env }
func (g *Game) SaveState() any           { return g.st }
func (g *Game) RestoreState(v any)       { g.st = v.(state) }

// cellBox returns a box of the given size centred on a cell.
func (g *Game) cellBox(c Cell, size float64) core.Box {
	centre := g.layout.Grid.CellCenter(c.Col, c.Row)
	return core.BoxAt(centre.X, centre.Y, size, size)
}

// Setup spawns walls, pellets, the player and the ghosts.
func (g *Game) Setup(s *engine.Session) error {
	g.st = state{}

	for _, c := range g.layout.Walls {
		s.Store.Spawn(engine.Entity{Kind: engine.KindTile, Box: g.cellBox(c, 1)})
	}
	for _, c := range g.layout.Pellet {
		s.Store.Spawn(engine.Entity{Kind: engine.KindPellet, Box: g.cellBox(c, pelletSize), Value: g.cfg.Scoring.Pellet})
	}
	for _, c := range g.layout.Power {
		s.Store.Spawn(engine.Entity{Kind: engine.KindPowerPellet, Box: g.cellBox(c, pelletSize), Value: g.cfg.Scoring.Power})
	}

	p := s.Store.Spawn(engine.Entity{
		Kind:     engine.KindPlayer,
		Box:      g.cellBox(g.layout.Player, actorSize),
		Speed:    g.cfg.Player.Speed,
		Motion:   engine.MotionGrid,
		Boundary: engine.BoundaryWrap,
	})
	g.st.player = p.ID

	for i, c := range g.layout.Ghosts {
		s.Store.Spawn(engine.Entity{
			Kind:     engine.KindEnemy,
			Box:      g.cellBox(c, actorSize),
			Speed:    g.cfg.Ghosts.Speed,
			Value:    i,
			Motion:   engine.MotionGrid,
			Boundary: engine.BoundaryWrap,
		})
	}
	return nil
}

// Control buffers the player's requested turn and steers the ghosts.
func (g *Game) Control(s *engine.Session, in core.InputState, dt float64) error {
	if p := s.Store.Get(g.st.player); p != nil {
		if d := inputDir(in); d != engine.DirNone {
			p.NextDir = d
		}
	}
	for _, e := range s.Store.Group(engine.KindEnemy) {
		g.steerGhost(s, e, dt)
	}
	return nil
}

func inputDir(in core.InputState) engine.Dir {
	switch {
	case in.Held(core.ActionUp):
		return engine.DirUp
	case in.Held(core.ActionDown):
		return engine.DirDown
	case in.Held(core.ActionLeft):
		return engine.DirLeft
	case in.Held(core.ActionRight):
		return engine.DirRight
	}
	return engine.DirNone
}

// steerGhost picks a new direction at a cell centre: always when the way
// ahead is closed, otherwise with turn_chance. Ghosts only reverse at a dead
// end.
func (g *Game) steerGhost(s *engine.Session, e *engine.Entity, dt float64) {
	grid := g.layout.Grid
	step := e.Speed * dt

	c := e.Box.Center()
	centre := grid.CellCenter(grid.CellOf(c))
	if e.Dir != engine.DirNone && math.Abs(c.X-centre.X)+math.Abs(c.Y-centre.Y) > step+1e-9 {
		return
	}

	blocked := e.Dir == engine.DirNone || !grid.CanMove(e.Box, e.Dir, step)
	if !blocked && !s.Chance(g.cfg.Ghosts.TurnChance, dt) {
		return
	}

	var options []engine.Dir
	for _, d := range engine.Dirs {
		if e.Dir != engine.DirNone && d == e.Dir.Reverse() {
			continue
		}
		if blocked && d == e.Dir {
			continue
		}
		if grid.CanMove(e.Box, d, step) {
			options = append(options, d)
		}
	}

	switch {
	case len(options) > 0:
		e.NextDir = options[s.Rand.IntN(len(options))]
	case blocked && e.Dir != engine.DirNone:
		e.NextDir = e.Dir.Reverse()
	}
}

// Rules returns the collision rules.
func (g *Game) Rules() []engine.Rule {
	return []engine.Rule{
		{A: engine.KindPlayer, B: engine.KindPellet, Resolve: eat},
		{A: engine.KindPlayer, B: engine.KindPowerPellet, Resolve: g.eatPower},
		{A: engine.KindEnemy, B: engine.KindPlayer, Resolve: g.meetGhost},
	}
}

func eat(s *engine.Session, _, pellet *engine.Entity) error {
	pellet.Kill()
	s.AddScore(pellet.Value)
	return nil
}

func (g *Game) eatPower(s *engine.Session, p, pellet *engine.Entity) error {
	if err := eat(s, p, pellet); err != nil {
		return err
	}
	g.frighten(s)
	return nil
}

// frighten turns every ghost edible until the power timer runs out. A
// second power pellet restarts the timer.
func (g *Game) frighten(s *engine.Session) {
	s.CancelTimer(g.st.fright)
	for _, e := range s.Store.Group(engine.KindEnemy) {
		e.Variant = ghostFrightened
		e.Speed = g.cfg.Ghosts.FrightenedSpeed
	}
	g.st.fright = s.After(g.cfg.Power.Duration, g.calm)
}

func (g *Game) calm(s *engine.Session) {
	for _, e := range s.Store.Group(engine.KindEnemy) {
		e.Variant = ghostChasing
		e.Speed = g.cfg.Ghosts.Speed
	}
	g.st.fright = 0
}

func (g *Game) meetGhost(s *engine.Session, ghost, p *engine.Entity) error {
	if ghost.Variant == ghostFrightened {
		s.AddScore(g.cfg.Scoring.Ghost)
		g.sendHome(ghost)
		return nil
	}
	if s.LoseLife() {
		g.resetActors(s)
	}
	return nil
}

func (g *Game) sendHome(ghost *engine.Entity) {
	ghost.Box = g.cellBox(g.layout.Ghosts[ghost.Value], actorSize)
	ghost.Dir, ghost.NextDir = engine.DirNone, engine.DirNone
	ghost.Variant = ghostChasing
	ghost.Speed = g.cfg.Ghosts.Speed
}

// resetActors puts the player and every ghost back on their start cells
// after a life is lost.
func (g *Game) resetActors(s *engine.Session) {
	s.CancelTimer(g.st.fright)
	g.st.fright = 0
	if p := s.Store.Get(g.st.player); p != nil {
		p.Box = g.cellBox(g.layout.Player, actorSize)
		p.Dir, p.NextDir = engine.DirNone, engine.DirNone
	}
	for _, e := range s.Store.Group(engine.KindEnemy) {
		g.sendHome(e)
	}
}

// Settle wins the session once every pellet is gone.
func (g *Game) Settle(s *engine.Session, dt float64) error {
	if s.Store.Count(engine.KindPellet)+s.Store.Count(engine.KindPowerPellet) == 0 {
		s.Win()
	}
	return nil
}

// Frightened reports whether a power pellet is in effect.
func (g *Game) Frightened() bool {
	return g.st.fright != 0
}
