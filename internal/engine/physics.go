package engine

import (
	"math"

	"github.com/vovakirdan/arcade-loop/internal/core"
)

// refRate is the frame rate friction factors are expressed against.
const refRate = 60.0

// maxSubstep bounds how far (in world units) a platformer body moves between
// solid checks, so a long tick cannot tunnel through a one-cell floor.
const maxSubstep = 0.45

// Env holds the world parameters movement rules read.
type Env struct {
	Bounds core.Box // playfield used by boundary policies

	Gravity  float64 // downward acceleration, units/s²
	MaxFall  float64 // terminal fall speed, 0 for none
	Accel    float64 // horizontal acceleration while thrust is held, units/s²
	Friction float64 // horizontal velocity factor per 1/60 s without thrust
	MaxSpeed float64 // horizontal speed cap

	Solids []Kind // kinds platformer and patrol bodies cannot pass through
	Grid   *Grid  // wall map for grid motion
}

// Step advances every active entity by dt seconds and applies its boundary
// policy. A zero or negative dt changes nothing.
func Step(st *Store, env *Env, dt float64) {
	if dt <= 0 || env == nil {
		return
	}

	var solids []*Entity
	for _, k := range env.Solids {
		solids = append(solids, st.Group(k)...)
	}

	st.Each(func(e *Entity) {
		switch e.Motion {
		case MotionLinear:
			e.Box = e.Box.Translate(e.Vel.Scale(dt))
		case MotionPlatformer:
			stepBody(e, env, solids, dt, false)
		case MotionPatrol:
			stepBody(e, env, solids, dt, true)
		case MotionGrid:
			stepGrid(e, env.Grid, dt)
		}
		applyBoundary(e, env.Bounds)
	})
}

// stepBody integrates gravity and horizontal control, then moves the body
// one axis at a time against the solids.
func stepBody(e *Entity, env *Env, solids []*Entity, dt float64, patrol bool) {
	if patrol {
		if e.Vel.X == 0 {
			e.Vel.X = e.Speed
		}
	} else {
		if e.Thrust != 0 {
			e.Vel.X += e.Thrust * env.Accel * dt
		} else if env.Friction > 0 {
			e.Vel.X *= math.Pow(env.Friction, dt*refRate)
			if math.Abs(e.Vel.X) < 1e-3 {
				e.Vel.X = 0
			}
		}
		if env.MaxSpeed > 0 {
			e.Vel.X = core.ClampF(e.Vel.X, -env.MaxSpeed, env.MaxSpeed)
		}
	}

	e.Vel.Y += env.Gravity * dt
	if env.MaxFall > 0 && e.Vel.Y > env.MaxFall {
		e.Vel.Y = env.MaxFall
	}

	dist := math.Max(math.Abs(e.Vel.X), math.Abs(e.Vel.Y)) * dt
	n := int(math.Ceil(dist / maxSubstep))
	if n < 1 {
		n = 1
	}
	sub := dt / float64(n)

	e.Grounded = false
	for i := 0; i < n; i++ {
		e.Box.X += e.Vel.X * sub
		for _, s := range solids {
			if s == e || !e.Box.Overlaps(s.Box) {
				continue
			}
			if e.Vel.X > 0 {
				e.Box.X = s.Box.X - e.Box.W
			} else if e.Vel.X < 0 {
				e.Box.X = s.Box.Right()
			}
			if patrol {
				e.Vel.X = -e.Vel.X
			} else {
				e.Vel.X = 0
			}
		}

		e.Box.Y += e.Vel.Y * sub
		for _, s := range solids {
			if s == e || !e.Box.Overlaps(s.Box) {
				continue
			}
			if e.Vel.Y > 0 {
				e.Box.Y = s.Box.Y - e.Box.H
				e.Grounded = true
			} else if e.Vel.Y < 0 {
				e.Box.Y = s.Box.Bottom()
			}
			e.Vel.Y = 0
		}
	}
}

func applyBoundary(e *Entity, b core.Box) {
	switch e.Boundary {
	case BoundaryWrap:
		c := e.Box.Center()
		if c.X < b.X {
			e.Box.X += b.W
		} else if c.X >= b.Right() {
			e.Box.X -= b.W
		}
		if c.Y < b.Y {
			e.Box.Y += b.H
		} else if c.Y >= b.Bottom() {
			e.Box.Y -= b.H
		}
	case BoundaryClamp:
		clampX(e, b)
		y := core.ClampF(e.Box.Y, b.Y, b.Bottom()-e.Box.H)
		if y != e.Box.Y {
			e.Box.Y = y
			e.Vel.Y = 0
		}
	case BoundaryClampX:
		clampX(e, b)
	case BoundaryDespawn:
		if !e.Box.Intersects(b) {
			e.Kill()
		}
	}
}

func clampX(e *Entity, b core.Box) {
	x := core.ClampF(e.Box.X, b.X, b.Right()-e.Box.W)
	if x == e.Box.X {
		return
	}
	e.Box.X = x
	if e.Motion == MotionPatrol {
		e.Vel.X = -e.Vel.X
	} else if e.Motion != MotionLinear {
		e.Vel.X = 0
	}
}
