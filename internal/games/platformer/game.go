// Package platformer implements a side-scrolling platformer: run right,
// stomp the walkers and reach the flag on every level.
package platformer

import (
	"errors"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

// ID is the registry and leaderboard identifier.
const ID = "platformer"

const (
	playerW, playerH = 0.8, 0.9
	walkerW, walkerH = 0.9, 0.9
)

// Game implements the platformer.
type Game struct {
	cfg    config.PlatformerConfig
	levels []*Level
	rt     core.RuntimeConfig
	env    engine.Env
	st     state
}

type state struct {
	level      int
	player     engine.ID
	dying      bool
	completing bool
	camera     float64
}

func init() {
	registry.Register(ID, "Platformer", func(opts registry.Options) (engine.Game, error) {
		cfg, err := config.Load[config.PlatformerConfig](opts.Config, ID)
		if err != nil {
			return nil, err
		}
		return New(cfg, opts.Runtime)
	})
}

// New parses every level of cfg.
func New(cfg config.PlatformerConfig, rt core.RuntimeConfig) (*Game, error) {
	if len(cfg.Levels) == 0 {
		return nil, errors.New("platformer: no levels")
	}
	g := &Game{cfg: cfg, rt: rt}
	for _, lines := range cfg.Levels {
		l, err := ParseLevel(lines)
		if err != nil {
			return nil, err
		}
		g.levels = append(g.levels, l)
	}
	ph := cfg.Physics
	g.env = engine.Env{
		Gravity:  ph.Gravity,
		MaxFall:  ph.MaxFall,
		Accel:    ph.Accel,
		Friction: ph.Friction,
		MaxSpeed: ph.MaxSpeed,
		Solids:   []engine.Kind{engine.KindTile},
	}
	return g, nil
}

func (g *Game) ID() string            { return ID }
func (g *Game) Title() string         { return "Platformer" }
func (g *Game) Vitals() engine.Vitals { return engine.Vitals{Lives: g.cfg.Lives} }
func (g *Game) SaveState() any        { return g.st }
func (g *Game) RestoreState(v any)    { g.st = v.(state) }

// Environment returns the physics with the bounds of the current level.
func (g *Game) Environment() *engine.Env {
	g.env.Bounds = g.levels[g.st.level].Bounds()
	return &g.env
}

// Level returns the index of the level being played.
func (g *Game) Level() int {
	return g.st.level
}

func (g *Game) Setup(s *engine.Session) error {
	g.st = state{}
	g.load(s, 0)
	return nil
}

// load replaces every entity with a fresh copy of level n.
func (g *Game) load(s *engine.Session, n int) {
	s.Store.Each(func(e *engine.Entity) { e.Kill() })
	g.st.level = n
	g.st.dying, g.st.completing = false, false

	l := g.levels[n]
	for _, b := range l.Blocks {
		s.Store.Spawn(engine.Entity{
			Kind:    engine.KindTile,
			Box:     core.NewBox(float64(b.Col), float64(b.Row), 1, 1),
			Variant: b.Variant,
		})
	}
	for _, f := range l.Flag {
		s.Store.Spawn(engine.Entity{Kind: engine.KindGoal, Box: core.NewBox(f.X, f.Y, 1, 1)})
	}
	for _, w := range l.Walkers {
		s.Store.Spawn(engine.Entity{
			Kind:     engine.KindEnemy,
			Box:      core.NewBox(w.X+(1-walkerW)/2, w.Y+1-walkerH, walkerW, walkerH),
			Speed:    -g.cfg.EnemySpeed,
			Motion:   engine.MotionPatrol,
			Boundary: engine.BoundaryDespawn,
		})
	}
	p := s.Store.Spawn(engine.Entity{
		Kind:     engine.KindPlayer,
		Box:      core.NewBox(l.Start.X+(1-playerW)/2, l.Start.Y+1-playerH, playerW, playerH),
		Motion:   engine.MotionPlatformer,
		Boundary: engine.BoundaryClampX,
	})
	g.st.player = p.ID
	g.follow(p)
}

// Control applies run and jump input.
func (g *Game) Control(s *engine.Session, in core.InputState, dt float64) error {
	p := s.Store.Get(g.st.player)
	if p == nil || g.st.completing {
		return nil
	}
	dx, _ := in.Axis()
	p.Thrust = dx
	if p.Grounded && (in.Held(core.ActionFire) || in.Held(core.ActionUp)) {
		p.Vel.Y = -g.cfg.Physics.JumpSpeed
		p.Grounded = false
	}
	return nil
}

func (g *Game) Rules() []engine.Rule {
	return []engine.Rule{
		{A: engine.KindPlayer, B: engine.KindEnemy, Resolve: g.meetWalker},
		{A: engine.KindPlayer, B: engine.KindGoal, Resolve: g.reachFlag},
	}
}

// meetWalker stomps a walker hit from above while falling: the player's
// feet are within the walker's top three quarters. Any other contact costs
// a life.
func (g *Game) meetWalker(s *engine.Session, p, w *engine.Entity) error {
	if g.st.completing {
		return nil
	}
	if p.Vel.Y > 0 && p.Box.Bottom() < w.Box.Y+w.Box.H*0.75 {
		w.Kill()
		p.Vel.Y = -g.cfg.Physics.Bounce
		s.AddScore(g.cfg.StompPoints)
		return nil
	}
	g.die(s)
	return nil
}

func (g *Game) reachFlag(s *engine.Session, p, _ *engine.Entity) error {
	if g.st.completing || g.st.dying {
		return nil
	}
	g.st.completing = true
	s.AddScore(g.cfg.FlagPoints)
	p.Motion = engine.MotionStatic
	p.Vel, p.Thrust = core.Vec{}, 0
	s.After(g.cfg.LevelDelay, g.nextLevel)
	return nil
}

func (g *Game) nextLevel(s *engine.Session) {
	if g.st.level+1 >= len(g.levels) {
		s.Win()
		return
	}
	g.load(s, g.st.level+1)
}

// die removes the player and, with lives left, reloads the level after the
// respawn delay.
func (g *Game) die(s *engine.Session) {
	if g.st.dying {
		return
	}
	g.st.dying = true
	s.Store.Kill(g.st.player)
	if s.LoseLife() {
		level := g.st.level
		s.After(g.cfg.RespawnDelay, func(s *engine.Session) { g.load(s, level) })
	}
}

// Settle handles falling out of the world and moves the camera.
func (g *Game) Settle(s *engine.Session, dt float64) error {
	p := s.Store.Get(g.st.player)
	if p == nil {
		return nil
	}
	if p.Box.Y > float64(g.levels[g.st.level].Rows)+1 {
		g.die(s)
		return nil
	}
	g.follow(p)
	return nil
}

// follow centres the camera on the player, clamped to the level.
func (g *Game) follow(p *engine.Entity) {
	visible := float64(g.rt.ScreenW) / 2
	maxX := max(0, float64(g.levels[g.st.level].Cols)-visible)
	g.st.camera = core.ClampF(p.Box.Center().X-visible/2, 0, maxX)
}
