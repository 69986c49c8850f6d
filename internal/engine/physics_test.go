package engine

import (
	"math"
	"testing"

	"github.com/vovakirdan/arcade-loop/internal/core"
)

const frame = 1.0 / 60

func TestStepLinear(t *testing.T) {
	st := NewStore()
	e := st.Spawn(Entity{Kind: KindProjectile, Motion: MotionLinear, Box: core.NewBox(0, 10, 1, 1), Vel: core.Vec{X: 4, Y: -20}})
	env := &Env{Bounds: core.NewBox(0, 0, 100, 100)}

	Step(st, env, 0.5)

	if !approx(e.Box.X, 2) || !approx(e.Box.Y, 0) {
		t.Errorf("position = (%v, %v), expected (2, 0)", e.Box.X, e.Box.Y)
	}
}

func TestStepZeroElapsedIsNoOp(t *testing.T) {
	st := NewStore()
	grid := NewGrid(10, 10)
	env := &Env{
		Bounds:   core.NewBox(0, 0, 5, 5),
		Gravity:  60,
		Accel:    40,
		Friction: 0.8,
		MaxSpeed: 10,
		Solids:   []Kind{KindTile},
		Grid:     grid,
	}
	st.Spawn(Entity{Kind: KindProjectile, Motion: MotionLinear, Vel: core.Vec{X: 3, Y: 3}, Box: core.NewBox(1, 1, 1, 1), Boundary: BoundaryDespawn})
	st.Spawn(Entity{Kind: KindPlayer, Motion: MotionPlatformer, Thrust: 1, Vel: core.Vec{X: 2}, Box: core.NewBox(9, 2, 1, 1), Boundary: BoundaryClamp})
	st.Spawn(Entity{Kind: KindEnemy, Motion: MotionPatrol, Speed: 2, Box: core.NewBox(2, 2, 1, 1), Boundary: BoundaryWrap})
	st.Spawn(Entity{Kind: KindPlayer, Motion: MotionGrid, Dir: DirRight, Speed: 5, Box: core.BoxAt(1.5, 1.5, 0.8, 0.8)})
	st.Spawn(Entity{Kind: KindDecoration, Motion: MotionLinear, Vel: core.Vec{Y: 5}, Box: core.NewBox(3, 6, 1, 1), Boundary: BoundaryWrap})

	before := st.Snapshot()
	Step(st, env, 0)
	after := st.Snapshot()

	for i := range before.entities {
		if before.entities[i].Box != after.entities[i].Box {
			t.Errorf("entity %d moved from %+v to %+v on a zero step", i, before.entities[i].Box, after.entities[i].Box)
		}
		if !after.entities[i].Active {
			t.Errorf("entity %d deactivated on a zero step", i)
		}
	}
}

func TestStepSkipsInactive(t *testing.T) {
	st := NewStore()
	e := st.Spawn(Entity{Kind: KindProjectile, Motion: MotionLinear, Vel: core.Vec{X: 10}})
	e.Kill()

	Step(st, &Env{Bounds: core.NewBox(0, 0, 100, 100)}, 1)

	if e.Box.X != 0 {
		t.Errorf("inactive entity moved to X=%v, expected 0", e.Box.X)
	}
}

func platformEnv() *Env {
	return &Env{
		Bounds:   core.NewBox(0, 0, 40, 20),
		Gravity:  60,
		MaxFall:  30,
		Accel:    40,
		Friction: 0.8,
		MaxSpeed: 12,
		Solids:   []Kind{KindTile},
	}
}

func TestStepPlatformerGround(t *testing.T) {
	st := NewStore()
	st.Spawn(Entity{Kind: KindTile, Box: core.NewBox(0, 10, 40, 1)})
	p := st.Spawn(Entity{Kind: KindPlayer, Motion: MotionPlatformer, Box: core.NewBox(2, 9, 1, 1)})

	for i := 0; i < 30; i++ {
		Step(st, platformEnv(), frame)
	}

	if !p.Grounded {
		t.Error("Grounded = false, expected true while resting on a tile")
	}
	if !approx(p.Box.Y, 9) {
		t.Errorf("Box.Y = %v, expected 9", p.Box.Y)
	}
	if p.Vel.Y != 0 {
		t.Errorf("Vel.Y = %v, expected 0 on the ground", p.Vel.Y)
	}
}

func TestStepPlatformerFalls(t *testing.T) {
	st := NewStore()
	p := st.Spawn(Entity{Kind: KindPlayer, Motion: MotionPlatformer, Box: core.NewBox(2, 0, 1, 1)})

	Step(st, platformEnv(), 0.1)

	if !approx(p.Vel.Y, 6) {
		t.Errorf("Vel.Y = %v, expected 6 after 0.1s of gravity 60", p.Vel.Y)
	}
	if p.Box.Y <= 0 {
		t.Errorf("Box.Y = %v, expected the body to have fallen", p.Box.Y)
	}
	if p.Grounded {
		t.Error("Grounded = true in mid-air")
	}
}

func TestStepPlatformerSpeedCapAndFriction(t *testing.T) {
	st := NewStore()
	st.Spawn(Entity{Kind: KindTile, Box: core.NewBox(0, 10, 400, 1)})
	p := st.Spawn(Entity{Kind: KindPlayer, Motion: MotionPlatformer, Box: core.NewBox(2, 9, 1, 1), Thrust: 1})
	env := platformEnv()
	env.Bounds = core.NewBox(0, 0, 400, 20)

	for i := 0; i < 60; i++ {
		Step(st, env, frame)
	}
	if !approx(p.Vel.X, 12) {
		t.Errorf("Vel.X = %v after a second of thrust, expected the cap 12", p.Vel.X)
	}

	p.Thrust = 0
	Step(st, env, frame)
	if !approx(p.Vel.X, 12*0.8) {
		t.Errorf("Vel.X = %v after one coasting frame, expected %v", p.Vel.X, 12*0.8)
	}

	for i := 0; i < 120; i++ {
		Step(st, env, frame)
	}
	if p.Vel.X != 0 {
		t.Errorf("Vel.X = %v after coasting, expected friction to stop the body", p.Vel.X)
	}
}

func TestStepPlatformerWall(t *testing.T) {
	st := NewStore()
	st.Spawn(Entity{Kind: KindTile, Box: core.NewBox(0, 10, 40, 1)})
	st.Spawn(Entity{Kind: KindTile, Box: core.NewBox(5, 0, 1, 10)})
	p := st.Spawn(Entity{Kind: KindPlayer, Motion: MotionPlatformer, Box: core.NewBox(3, 9, 1, 1), Thrust: 1})

	for i := 0; i < 60; i++ {
		Step(st, platformEnv(), frame)
	}

	if !approx(p.Box.Right(), 5) {
		t.Errorf("Box.Right() = %v, expected 5 against the wall", p.Box.Right())
	}
}

func TestStepPatrolTurnsAtWall(t *testing.T) {
	st := NewStore()
	st.Spawn(Entity{Kind: KindTile, Box: core.NewBox(0, 10, 40, 1)})
	st.Spawn(Entity{Kind: KindTile, Box: core.NewBox(5, 0, 1, 10)})
	e := st.Spawn(Entity{Kind: KindEnemy, Motion: MotionPatrol, Speed: 6, Box: core.NewBox(3, 9, 1, 1)})

	for i := 0; i < 30; i++ {
		Step(st, platformEnv(), frame)
	}

	if e.Vel.X >= 0 {
		t.Errorf("Vel.X = %v, expected the patrol to have turned around", e.Vel.X)
	}
	if math.Abs(e.Vel.X) != 6 {
		t.Errorf("|Vel.X| = %v, expected patrol speed 6", math.Abs(e.Vel.X))
	}
}

func TestBoundaryPolicies(t *testing.T) {
	bounds := core.NewBox(0, 0, 10, 10)

	tests := []struct {
		name     string
		entity   Entity
		expectX  float64
		expectY  float64
		expected bool // active afterwards
	}{
		{
			name:     "wrap off the right edge",
			entity:   Entity{Motion: MotionLinear, Boundary: BoundaryWrap, Box: core.NewBox(9.8, 5, 1, 1), Vel: core.Vec{X: 1}},
			expectX:  0.8,
			expectY:  5,
			expected: true,
		},
		{
			name:     "wrap off the bottom edge",
			entity:   Entity{Motion: MotionLinear, Boundary: BoundaryWrap, Box: core.NewBox(2, 9.6, 1, 1), Vel: core.Vec{Y: 1}},
			expectX:  2,
			expectY:  0.6,
			expected: true,
		},
		{
			name:     "clamp at the left edge",
			entity:   Entity{Motion: MotionLinear, Boundary: BoundaryClamp, Box: core.NewBox(0.5, 5, 1, 1), Vel: core.Vec{X: -2}},
			expectX:  0,
			expectY:  5,
			expected: true,
		},
		{
			name:     "despawn once fully outside",
			entity:   Entity{Motion: MotionLinear, Boundary: BoundaryDespawn, Box: core.NewBox(5, 10.5, 1, 1), Vel: core.Vec{Y: 1}},
			expectX:  5,
			expectY:  11.5,
			expected: false,
		},
		{
			name:     "despawn keeps a partly visible entity",
			entity:   Entity{Motion: MotionLinear, Boundary: BoundaryDespawn, Box: core.NewBox(5, 8.5, 1, 1), Vel: core.Vec{Y: 1}},
			expectX:  5,
			expectY:  9.5,
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := NewStore()
			e := st.Spawn(tc.entity)
			Step(st, &Env{Bounds: bounds}, 1)

			if !approx(e.Box.X, tc.expectX) || !approx(e.Box.Y, tc.expectY) {
				t.Errorf("position = (%v, %v), expected (%v, %v)", e.Box.X, e.Box.Y, tc.expectX, tc.expectY)
			}
			if e.Active != tc.expected {
				t.Errorf("Active = %v, expected %v", e.Active, tc.expected)
			}
		})
	}
}

// testMaze:
//
//	#####
//	#...#
//	#.#.#
//	#...#
//	#####
func testMaze() *Grid {
	rows := []string{"#####", "#...#", "#.#.#", "#...#", "#####"}
	g := NewGrid(5, 5)
	for r, line := range rows {
		for c, ch := range line {
			g.SetWall(c, r, ch == '#')
		}
	}
	return g
}

func TestGridDeferredTurn(t *testing.T) {
	g := testMaze()
	st := NewStore()
	e := st.Spawn(Entity{Kind: KindPlayer, Motion: MotionGrid, Speed: 5, Dir: DirRight, NextDir: DirDown, Box: core.BoxAt(2.5, 1.5, 0.8, 0.8)})
	env := &Env{Bounds: g.Bounds(), Grid: g}

	Step(st, env, frame)
	if e.Dir != DirRight {
		t.Fatalf("Dir = %v at column 2, expected the turn to wait for an opening", e.Dir)
	}

	for i := 0; i < 60; i++ {
		Step(st, env, frame)
	}

	c := e.Box.Center()
	if e.Dir != DirDown {
		t.Errorf("Dir = %v, expected the queued turn to have been taken", e.Dir)
	}
	if !approx(c.X, 3.5) || !approx(c.Y, 3.5) {
		t.Errorf("center = (%v, %v), expected to rest at (3.5, 3.5)", c.X, c.Y)
	}
}

func TestGridBlockedStopsAtCellCenter(t *testing.T) {
	g := testMaze()
	st := NewStore()
	e := st.Spawn(Entity{Kind: KindPlayer, Motion: MotionGrid, Speed: 5, Dir: DirLeft, Box: core.BoxAt(2.5, 1.5, 0.8, 0.8)})

	for i := 0; i < 60; i++ {
		Step(st, &Env{Bounds: g.Bounds(), Grid: g}, frame)
	}

	c := e.Box.Center()
	if !approx(c.X, 1.5) || !approx(c.Y, 1.5) {
		t.Errorf("center = (%v, %v), expected (1.5, 1.5)", c.X, c.Y)
	}
	if g.Blocked(e.Box) {
		t.Error("entity ended inside a wall")
	}
}

func TestGridCanMove(t *testing.T) {
	g := testMaze()
	b := core.BoxAt(1.5, 1.5, 0.8, 0.8)

	tests := []struct {
		dir      Dir
		expected bool
	}{
		{DirUp, false},
		{DirLeft, false},
		{DirDown, true},
		{DirRight, true},
	}

	for _, tc := range tests {
		if got := g.CanMove(b, tc.dir, 0.1); got != tc.expected {
			t.Errorf("CanMove(%v) = %v, expected %v", tc.dir, got, tc.expected)
		}
	}
}

func TestGridOutsideColumnsAreOpen(t *testing.T) {
	g := NewGrid(3, 3)
	if g.Wall(-1, 1) || g.Wall(3, 1) {
		t.Error("columns outside the grid should be open for tunnels")
	}
	if !g.Wall(1, -1) || !g.Wall(1, 3) {
		t.Error("rows outside the grid should be walls")
	}
}
