// Package shooter implements a vertical space shooter with a boss wave.
package shooter

import (
	"math"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

// ID is the registry and leaderboard identifier.
const ID = "shooter"

// Game implements the space shooter.
type Game struct {
	cfg   config.ShooterConfig
	diff  *config.DifficultyManager
	field core.Box
	env   engine.Env
	st    state
}

// state is everything outside the session that a tick mutates.
type state struct {
	player   engine.ID
	boss     engine.ID
	summoned bool
	elapsed  float64
	cooldown float64
	minions  engine.TimerID
}

func init() {
	registry.Register(ID, "Space Shooter", func(opts registry.Options) (engine.Game, error) {
		cfg, err := config.Load[config.ShooterConfig](opts.Config, ID)
		if err != nil {
			return nil, err
		}
		config.ApplyPreset(&cfg.Difficulty, opts.Difficulty)
		return New(cfg, opts.Runtime), nil
	})
}

// New creates a shooter sized to the runtime screen.
func New(cfg config.ShooterConfig, rt core.RuntimeConfig) *Game {
	field := rt.Playfield()
	return &Game{
		cfg:   cfg,
		diff:  config.NewDifficultyManager(cfg.Difficulty),
		field: field,
		env:   engine.Env{Bounds: field},
	}
}

func (g *Game) ID() string                { return ID }
func (g *Game) Title() string             { return "Space Shooter" }
func (g *Game) Vitals() engine.Vitals     { return engine.Vitals{Health: g.cfg.Player.Health} }
func (g *Game) Environment() *engine.Env  { return &g.env }
func (g *Game) SaveState() any            { return g.st }
func (g *Game) RestoreState(v any)        { g.st = v.(state) }

// Setup spawns the star field and the ship.
func (g *Game) Setup(s *engine.Session) error {
	g.st = state{}

	for i := 0; i < g.cfg.Stars.Count; i++ {
		speed := g.cfg.Stars.MinSpeed + s.Rand.Float64()*(g.cfg.Stars.MaxSpeed-g.cfg.Stars.MinSpeed)
		s.Store.Spawn(engine.Entity{
			Kind:     engine.KindDecoration,
			Box:      core.NewBox(math.Floor(s.Rand.Float64()*g.field.W), math.Floor(s.Rand.Float64()*g.field.H), 1, 1),
			Vel:      core.Vec{Y: speed},
			Motion:   engine.MotionLinear,
			Boundary: engine.BoundaryWrap,
			Variant:  s.Rand.IntN(2),
		})
	}

	pw, ph := g.cfg.Player.Width, g.cfg.Player.Height
	p := s.Store.Spawn(engine.Entity{
		Kind:     engine.KindPlayer,
		Box:      core.NewBox(g.field.W/2-pw/2, g.field.Bottom()-ph-1, pw, ph),
		Motion:   engine.MotionLinear,
		Boundary: engine.BoundaryClamp,
	})
	g.st.player = p.ID

	if g.cfg.Weapon.AutoFire && g.cfg.Weapon.Interval > 0 {
		s.Every(g.cfg.Weapon.Interval, g.fire)
	}
	return nil
}

// Control steers the ship, handles manual fire and spawns enemies.
func (g *Game) Control(s *engine.Session, in core.InputState, dt float64) error {
	g.st.elapsed += dt

	if p := s.Store.Get(g.st.player); p != nil {
		p.Vel = g.steer(p, in, dt)
	}

	if !g.cfg.Weapon.AutoFire {
		g.st.cooldown -= dt
		if in.Held(core.ActionFire) && g.st.cooldown <= 0 {
			g.fire(s)
			g.st.cooldown = g.cfg.Weapon.Interval
		}
	}

	if !g.st.summoned {
		g.spawnEnemies(s, dt)
	}
	return nil
}

// steer returns the ship velocity for this tick. The pointer, when present,
// wins over the arrow keys; the ship never overshoots it.
func (g *Game) steer(p *engine.Entity, in core.InputState, dt float64) core.Vec {
	speed := g.cfg.Player.Speed
	if in.HasPointer && dt > 0 {
		target := core.Vec{X: in.Pointer.X + 0.5, Y: in.Pointer.Y - core.HUDRows + 0.5}
		c := p.Box.Center()
		d := core.Vec{X: target.X - c.X, Y: target.Y - c.Y}
		dist := d.Len()
		if dist < 1e-9 {
			return core.Vec{}
		}
		if dist <= speed*dt {
			return d.Scale(1 / dt)
		}
		return d.Scale(speed / dist)
	}
	dx, dy := in.Axis()
	return core.Vec{X: dx * speed, Y: dy * speed}
}

func (g *Game) fire(s *engine.Session) {
	p := s.Store.Get(g.st.player)
	if p == nil {
		return
	}
	c := p.Box.Center()
	s.Store.Spawn(engine.Entity{
		Kind:     engine.KindProjectile,
		Box:      core.NewBox(math.Floor(c.X), p.Box.Y-1, 1, 1),
		Vel:      core.Vec{Y: -g.cfg.Weapon.ProjectileSpeed},
		Owner:    p.ID,
		Motion:   engine.MotionLinear,
		Boundary: engine.BoundaryDespawn,
	})
}

func (g *Game) spawnEnemies(s *engine.Session, dt float64) {
	ec := g.cfg.Enemies
	chance := ec.SpawnChance + float64(s.Score())*ec.ScoreFactor
	chance /= g.diff.Interval(1, s.Score(), g.st.elapsed)
	if !s.Chance(chance, dt) {
		return
	}
	speed := ec.MinSpeed + s.Rand.Float64()*(ec.MaxSpeed-ec.MinSpeed)
	s.Store.Spawn(engine.Entity{
		Kind:     engine.KindEnemy,
		Box:      core.NewBox(math.Floor(s.Rand.Float64()*(g.field.W-ec.Width)), -ec.Height, ec.Width, ec.Height),
		Vel:      core.Vec{Y: g.diff.Speed(speed, s.Score(), g.st.elapsed)},
		Health:   1,
		Value:    ec.Points,
		Motion:   engine.MotionLinear,
		Boundary: engine.BoundaryDespawn,
		Variant:  s.Rand.IntN(3),
	})
}

// summon brings in the boss and starts its minion spawner.
func (g *Game) summon(s *engine.Session) {
	bc := g.cfg.Boss
	g.st.summoned = true
	for _, e := range s.Store.Group(engine.KindEnemy) {
		e.Kill()
	}
	b := s.Store.Spawn(engine.Entity{
		Kind:     engine.KindBoss,
		Box:      core.NewBox(g.field.W/2-bc.Width/2, 1, bc.Width, bc.Height),
		Health:   bc.Health,
		Value:    bc.Points,
		Speed:    bc.Speed,
		Motion:   engine.MotionPatrol,
		Boundary: engine.BoundaryClamp,
	})
	g.st.boss = b.ID
	if bc.MinionInterval > 0 {
		g.st.minions = s.Every(bc.MinionInterval, g.spawnMinion)
	}
}

func (g *Game) spawnMinion(s *engine.Session) {
	b := s.Store.Get(g.st.boss)
	if b == nil {
		return
	}
	c := b.Box.Center()
	s.Store.Spawn(engine.Entity{
		Kind:     engine.KindMinion,
		Box:      core.NewBox(math.Floor(c.X)-1, b.Box.Bottom(), 2, 1),
		Vel:      core.Vec{X: (s.Rand.Float64() - 0.5) * g.cfg.Boss.MinionSpeed, Y: g.cfg.Boss.MinionSpeed},
		Health:   1,
		Value:    g.cfg.Enemies.Points,
		Owner:    b.ID,
		Motion:   engine.MotionLinear,
		Boundary: engine.BoundaryDespawn,
	})
}

// Rules returns the collision rules. Shots are resolved before ship
// contacts so an enemy shot down this tick cannot also ram the ship.
func (g *Game) Rules() []engine.Rule {
	return []engine.Rule{
		{A: engine.KindProjectile, B: engine.KindEnemy, Resolve: shotDown},
		{A: engine.KindProjectile, B: engine.KindMinion, Resolve: shotDown},
		{A: engine.KindProjectile, B: engine.KindBoss, Resolve: g.hitBoss},
		{A: engine.KindEnemy, B: engine.KindPlayer, Resolve: g.ram(g.cfg.Enemies.Damage)},
		{A: engine.KindMinion, B: engine.KindPlayer, Resolve: g.ram(g.cfg.Boss.MinionDamage)},
		{A: engine.KindBoss, B: engine.KindPlayer, Resolve: crush},
	}
}

func shotDown(s *engine.Session, shot, target *engine.Entity) error {
	shot.Kill()
	target.Health--
	if target.Health <= 0 {
		target.Kill()
		s.AddScore(target.Value)
	}
	return nil
}

func (g *Game) hitBoss(s *engine.Session, shot, boss *engine.Entity) error {
	shot.Kill()
	boss.Health--
	if boss.Health > 0 {
		return nil
	}
	boss.Kill()
	s.CancelTimer(g.st.minions)
	s.AddScore(boss.Value)
	s.Win()
	return nil
}

// ram destroys the attacker and damages the ship.
func (g *Game) ram(damage int) engine.ResolveFunc {
	return func(s *engine.Session, attacker, _ *engine.Entity) error {
		attacker.Kill()
		s.Damage(damage)
		return nil
	}
}

// crush is contact with the boss hull: the ship is destroyed outright.
func crush(s *engine.Session, _, _ *engine.Entity) error {
	s.Damage(s.Health())
	return nil
}

// Settle summons the boss once the score threshold is reached.
func (g *Game) Settle(s *engine.Session, dt float64) error {
	if g.cfg.Boss.Enabled && !g.st.summoned && s.Score() >= g.cfg.Boss.Score {
		g.summon(s)
	}
	return nil
}

// BossHealth returns the boss's remaining health, or 0 if it is not on the
// field.
func (g *Game) BossHealth(s *engine.Session) int {
	if b := s.Store.Get(g.st.boss); b != nil {
		return b.Health
	}
	return 0
}
