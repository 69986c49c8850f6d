// Package runner implements an endless runner: obstacles scroll in from the
// right and the player jumps them.
package runner

import (
	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

// ID is the registry and leaderboard identifier.
const ID = "runner"

// Player size and position in cells.
const (
	playerX = 8.0
	playerW = 3.0
	playerH = 2.0
)

// Hitbox margins. Contact only counts once the sprites really overlap.
const (
	playerSlack   = 0.3
	obstacleSlack = 0.2
)

const (
	groundRows   = 2
	stripeWidth  = 3.0
	stripeSpread = 10.0
)

// Game implements the runner.
type Game struct {
	cfg    config.RunnerConfig
	diff   *config.DifficultyManager
	field  core.Box
	ground float64 // top of the ground strip
	env    engine.Env
	st     state
}

type state struct {
	player  engine.ID
	base    float64 // scroll speed before difficulty scaling
	passed  int
	elapsed float64
}

func init() {
	registry.Register(ID, "Runner", func(opts registry.Options) (engine.Game, error) {
		cfg, err := config.Load[config.RunnerConfig](opts.Config, ID)
		if err != nil {
			return nil, err
		}
		config.ApplyPreset(&cfg.Difficulty, opts.Difficulty)
		return New(cfg, opts.Runtime), nil
	})
}

// New creates a runner sized to the runtime screen.
func New(cfg config.RunnerConfig, rt core.RuntimeConfig) *Game {
	field := rt.Playfield()
	return &Game{
		cfg:    cfg,
		diff:   config.NewDifficultyManager(cfg.Difficulty),
		field:  field,
		ground: field.Bottom() - groundRows,
		env: engine.Env{
			Bounds:  field,
			Gravity: cfg.Physics.Gravity,
			Solids:  []engine.Kind{engine.KindTile},
		},
	}
}

func (g *Game) ID() string               { return ID }
func (g *Game) Title() string            { return "Runner" }
func (g *Game) Vitals() engine.Vitals    { return engine.Vitals{} }
func (g *Game) Environment() *engine.Env { return &g.env }
func (g *Game) SaveState() any           { return g.st }
func (g *Game) RestoreState(v any)       { g.st = v.(state) }

// Passed returns the number of obstacles cleared.
func (g *Game) Passed() int {
	return g.st.passed
}

// Speed returns the current scroll speed.
func (g *Game) Speed(s *engine.Session) float64 {
	return g.diff.Speed(g.st.base, s.Score(), g.st.elapsed)
}

// Setup lays the ground and road stripes, puts the player on the ground and
// starts the obstacle spawner.
func (g *Game) Setup(s *engine.Session) error {
	g.st = state{base: g.cfg.Physics.BaseSpeed}

	s.Store.Spawn(engine.Entity{
		Kind: engine.KindTile,
		Box:  core.NewBox(g.field.X, g.ground, g.field.W, groundRows),
	})
	for x := g.field.X; x < g.field.Right(); x += stripeSpread {
		s.Store.Spawn(engine.Entity{
			Kind:     engine.KindDecoration,
			Box:      core.NewBox(x, g.ground+1, stripeWidth, 1),
			Motion:   engine.MotionLinear,
			Boundary: engine.BoundaryWrap,
		})
	}

	p := s.Store.Spawn(engine.Entity{
		Kind:   engine.KindPlayer,
		Box:    core.NewBox(playerX, g.ground-playerH, playerW, playerH),
		Motion: engine.MotionPlatformer,
	})
	g.st.player = p.ID

	s.Every(g.cfg.Obstacles.Interval, g.spawn)
	return nil
}

// spawn rolls for a new obstacle at the right edge.
func (g *Game) spawn(s *engine.Session) {
	if s.Rand.Float64() >= g.cfg.Obstacles.Chance {
		return
	}
	o := g.cfg.Obstacles
	lane := 0
	if o.Lanes > 1 {
		lane = s.Rand.IntN(o.Lanes)
	}
	h := o.MinHeight
	if lane > 0 {
		h = 1
	} else if o.MaxHeight > o.MinHeight {
		h += s.Rand.IntN(o.MaxHeight - o.MinHeight + 1)
	}
	g.spawnObstacle(s, g.field.Right(), lane, h)
}

// spawnObstacle places an obstacle with its left edge at x. Lane 0 sits on
// the ground; higher lanes float clear of a running player's head, so they
// only hit a player who jumps into them.
func (g *Game) spawnObstacle(s *engine.Session, x float64, lane, h int) *engine.Entity {
	bottom := g.ground
	if lane > 0 {
		bottom = g.ground - playerH - 0.5 - 2*float64(lane-1)
	}
	return s.Store.Spawn(engine.Entity{
		Kind:     engine.KindObstacle,
		Box:      core.NewBox(x, bottom-float64(h), g.cfg.Obstacles.Width, float64(h)),
		Vel:      core.Vec{X: -g.Speed(s)},
		Value:    1,
		Motion:   engine.MotionLinear,
		Boundary: engine.BoundaryDespawn,
		Variant:  lane,
	})
}

// Control jumps from the ground and keeps the scenery at the current
// scroll speed.
func (g *Game) Control(s *engine.Session, in core.InputState, dt float64) error {
	g.st.elapsed += dt

	speed := g.Speed(s)
	for _, k := range []engine.Kind{engine.KindObstacle, engine.KindDecoration} {
		for _, e := range s.Store.Group(k) {
			e.Vel.X = -speed
		}
	}

	p := s.Store.Get(g.st.player)
	if p == nil {
		return nil
	}
	if p.Grounded && (in.Held(core.ActionFire) || in.Held(core.ActionUp)) {
		p.Vel.Y = -g.cfg.Physics.JumpSpeed
		p.Grounded = false
	}
	return nil
}

func (g *Game) Rules() []engine.Rule {
	return []engine.Rule{
		{A: engine.KindPlayer, B: engine.KindObstacle, Resolve: g.crash},
	}
}

func (g *Game) crash(s *engine.Session, p, o *engine.Entity) error {
	if p.Box.Inset(playerSlack).Intersects(o.Box.Inset(obstacleSlack)) {
		s.Lose()
	}
	return nil
}

// Settle scores obstacles the player has fully passed, speeds up every
// speed_every of them and wins once the target is reached.
func (g *Game) Settle(s *engine.Session, dt float64) error {
	p := s.Store.Get(g.st.player)
	if p == nil {
		return nil
	}
	for _, o := range s.Store.Group(engine.KindObstacle) {
		if o.Value == 0 || o.Box.Right() >= p.Box.X {
			continue
		}
		s.AddScore(o.Value)
		o.Value = 0
		g.st.passed++
		if every := g.cfg.Physics.SpeedEvery; every > 0 && g.st.passed%every == 0 {
			g.st.base += g.cfg.Physics.SpeedStep
		}
	}
	if g.cfg.Target > 0 && g.st.passed >= g.cfg.Target {
		s.Win()
	}
	return nil
}
