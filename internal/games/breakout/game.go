// Package breakout implements a brick breaker: keep the ball in play with
// the paddle until the wall is gone.
package breakout

import (
	"math"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

// ID is the registry and leaderboard identifier.
const ID = "breakout"

// aspect converts row speeds to column speeds: terminal cells are about
// twice as tall as they are wide.
const aspect = 2.0

// Game implements breakout.
type Game struct {
	cfg   config.BreakoutConfig
	diff  *config.DifficultyManager
	field core.Box
	env   engine.Env
	st    state
}

type state struct {
	ball    engine.ID
	paddle  engine.ID
	speed   float64 // vertical ball speed, rows per second
	bounced bool    // the ball already bounced off a brick this tick
	elapsed float64
}

func init() {
	registry.Register(ID, "Breakout", func(opts registry.Options) (engine.Game, error) {
		cfg, err := config.Load[config.BreakoutConfig](opts.Config, ID)
		if err != nil {
			return nil, err
		}
		config.ApplyPreset(&cfg.Difficulty, opts.Difficulty)
		return New(cfg, opts.Runtime), nil
	})
}

// New creates a breakout game sized to the runtime screen.
func New(cfg config.BreakoutConfig, rt core.RuntimeConfig) *Game {
	field := rt.Playfield()
	return &Game{
		cfg:   cfg,
		diff:  config.NewDifficultyManager(cfg.Difficulty),
		field: field,
		env:   engine.Env{Bounds: field},
	}
}

func (g *Game) ID() string               { return ID }
func (g *Game) Title() string            { return "Breakout" }
func (g *Game) Vitals() engine.Vitals    { return engine.Vitals{Lives: g.cfg.Lives} }
func (g *Game) Environment() *engine.Env { return &g.env }
func (g *Game) SaveState() any           { return g.st }
func (g *Game) RestoreState(v any)       { g.st = v.(state) }

// BallSpeed returns the current vertical ball speed.
func (g *Game) BallSpeed() float64 {
	return g.st.speed
}

// Setup builds the wall, the paddle and a ball already in flight.
func (g *Game) Setup(s *engine.Session) error {
	g.st = state{}

	b := g.cfg.Bricks
	for i, box := range Wall(g.field, b.Rows, b.Columns, b.Top) {
		s.Store.Spawn(engine.Entity{
			Kind:    engine.KindBrick,
			Box:     box,
			Value:   b.Points,
			Variant: i / max(1, b.Columns),
		})
	}

	w := g.cfg.Paddle.Width
	p := s.Store.Spawn(engine.Entity{
		Kind:     engine.KindPaddle,
		Box:      core.NewBox(g.field.W/2-w/2, g.field.Bottom()-2, w, 1),
		Motion:   engine.MotionLinear,
		Boundary: engine.BoundaryClamp,
	})
	g.st.paddle = p.ID

	ball := s.Store.Spawn(engine.Entity{Kind: engine.KindBall, Motion: engine.MotionLinear})
	g.st.ball = ball.ID
	g.serve(s, ball)
	return nil
}

// serve recentres the paddle and launches the ball from just above it,
// diagonally up in a random horizontal direction.
func (g *Game) serve(s *engine.Session, ball *engine.Entity) {
	if p := s.Store.Get(g.st.paddle); p != nil {
		p.Box.X = g.field.W/2 - p.Box.W/2
		p.Vel = core.Vec{}
	}
	g.st.speed = g.diff.Speed(g.cfg.Physics.BallSpeed, s.Score(), g.st.elapsed)
	dir := 1.0
	if s.Rand.IntN(2) == 0 {
		dir = -1
	}
	ball.Box = core.BoxAt(g.field.W/2, g.field.Bottom()-4, 1, 1)
	ball.Vel = core.Vec{X: dir * g.st.speed, Y: -g.st.speed}
}

// Control moves the paddle. The pointer, when present, wins over the keys.
func (g *Game) Control(s *engine.Session, in core.InputState, dt float64) error {
	g.st.elapsed += dt
	g.st.bounced = false

	p := s.Store.Get(g.st.paddle)
	if p == nil {
		return nil
	}
	speed := g.cfg.Physics.PaddleSpeed
	if in.HasPointer && dt > 0 {
		d := in.Pointer.X + 0.5 - p.Box.Center().X
		p.Vel.X = core.ClampF(d/dt, -speed, speed)
		return nil
	}
	dx, _ := in.Axis()
	p.Vel.X = dx * speed
	return nil
}

func (g *Game) Rules() []engine.Rule {
	return []engine.Rule{
		{A: engine.KindBall, B: engine.KindPaddle, Resolve: g.hitPaddle},
		{A: engine.KindBall, B: engine.KindBrick, Resolve: g.hitBrick},
	}
}

// hitPaddle sends a falling ball back up, a little faster. The horizontal
// speed depends on where the ball met the paddle.
func (g *Game) hitPaddle(s *engine.Session, ball, p *engine.Entity) error {
	if ball.Vel.Y <= 0 {
		return nil
	}
	g.st.speed = math.Min(g.st.speed+g.cfg.Physics.SpeedStep, g.cfg.Physics.MaxBallSpeed)
	offset := (ball.Box.Center().X - p.Box.Center().X) / (p.Box.W / 2)
	offset = core.ClampF(offset, -1, 1)

	ball.Vel.Y = -g.st.speed
	ball.Vel.X = offset * g.st.speed * aspect
	ball.Box.Y = p.Box.Y - ball.Box.H
	return nil
}

// hitBrick breaks every brick the ball touches but bounces at most once a
// tick, so touching two bricks at once does not cancel the bounce.
func (g *Game) hitBrick(s *engine.Session, ball, brick *engine.Entity) error {
	brick.Kill()
	s.AddScore(brick.Value)
	if !g.st.bounced {
		ball.Vel.Y = -ball.Vel.Y
		g.st.bounced = true
	}
	return nil
}

// Settle bounces the ball off the side and top walls, handles a lost ball
// and wins once the wall is cleared.
func (g *Game) Settle(s *engine.Session, dt float64) error {
	if s.Store.Count(engine.KindBrick) == 0 {
		s.Win()
		return nil
	}

	ball := s.Store.Get(g.st.ball)
	if ball == nil {
		return nil
	}
	f := g.field
	switch {
	case ball.Box.X < f.X:
		ball.Box.X = f.X
		ball.Vel.X = math.Abs(ball.Vel.X)
	case ball.Box.Right() > f.Right():
		ball.Box.X = f.Right() - ball.Box.W
		ball.Vel.X = -math.Abs(ball.Vel.X)
	}
	if ball.Box.Y < f.Y {
		ball.Box.Y = f.Y
		ball.Vel.Y = math.Abs(ball.Vel.Y)
	}

	if ball.Box.Y >= f.Bottom() {
		if s.LoseLife() {
			g.serve(s, ball)
		}
	}
	return nil
}
