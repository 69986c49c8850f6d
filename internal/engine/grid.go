package engine

import (
	"math"

	"github.com/vovakirdan/arcade-loop/internal/core"
)

// cornerSlack is how far off a lane centre (in cells) an entity may be and
// still turn into a side corridor; it is snapped onto the lane when it does.
const cornerSlack = 0.35

// Grid is a wall map with one world unit per cell, anchored at Origin.
// Rows outside the grid count as walls; columns outside it are open so a
// row can act as a wrap-around tunnel.
type Grid struct {
	Cols, Rows int
	Origin     core.Vec
	walls      []bool
}

// NewGrid creates an open grid.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows, walls: make([]bool, cols*rows)}
}

// SetWall marks or clears a wall cell.
func (g *Grid) SetWall(col, row int, wall bool) {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return
	}
	g.walls[row*g.Cols+col] = wall
}

// Wall reports whether a cell blocks movement.
func (g *Grid) Wall(col, row int) bool {
	if row < 0 || row >= g.Rows {
		return true
	}
	if col < 0 || col >= g.Cols {
		return false
	}
	return g.walls[row*g.Cols+col]
}

// Bounds returns the world box covered by the grid.
func (g *Grid) Bounds() core.Box {
	return core.NewBox(g.Origin.X, g.Origin.Y, float64(g.Cols), float64(g.Rows))
}

// CellOf returns the cell containing a world point.
func (g *Grid) CellOf(p core.Vec) (col, row int) {
	return int(math.Floor(p.X - g.Origin.X)), int(math.Floor(p.Y - g.Origin.Y))
}

// CellCenter returns the world position of a cell's centre.
func (g *Grid) CellCenter(col, row int) core.Vec {
	return core.Vec{X: g.Origin.X + float64(col) + 0.5, Y: g.Origin.Y + float64(row) + 0.5}
}

// Blocked reports whether the interior of b covers any wall cell.
func (g *Grid) Blocked(b core.Box) bool {
	c0 := int(math.Floor(b.X - g.Origin.X))
	c1 := int(math.Ceil(b.Right()-g.Origin.X)) - 1
	r0 := int(math.Floor(b.Y - g.Origin.Y))
	r1 := int(math.Ceil(b.Bottom()-g.Origin.Y)) - 1
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if g.Wall(c, r) {
				return true
			}
		}
	}
	return false
}

// CanMove reports whether an entity with box b could start moving in d
// this tick, allowing for the cornering snap.
func (g *Grid) CanMove(b core.Box, d Dir, step float64) bool {
	_, ok := g.turn(b, d, step)
	return ok
}

// align centres b on its lane across the axis of d.
func (g *Grid) align(b core.Box, d Dir) core.Box {
	c := b.Center()
	col, row := g.CellOf(c)
	centre := g.CellCenter(col, row)
	if d.Horizontal() {
		b.Y = centre.Y - b.H/2
	} else {
		b.X = centre.X - b.W/2
	}
	return b
}

// turn returns b snapped onto the lane for d if the entity is close enough
// to it and the first step in d is clear.
func (g *Grid) turn(b core.Box, d Dir, step float64) (core.Box, bool) {
	if d == DirNone {
		return b, false
	}
	aligned := g.align(b, d)
	if math.Abs(aligned.X-b.X) > cornerSlack || math.Abs(aligned.Y-b.Y) > cornerSlack {
		return b, false
	}
	col, row := g.CellOf(aligned.Center())
	v := d.Vec()
	if g.Wall(col+int(v.X), row+int(v.Y)) {
		return b, false
	}
	ahead := math.Max(step, 0.01)
	if g.Blocked(aligned.Translate(d.Vec().Scale(ahead))) {
		return b, false
	}
	return aligned, true
}

// settle centres b on its current cell along the axis of d.
func (g *Grid) settle(b core.Box, d Dir) core.Box {
	c := b.Center()
	col, row := g.CellOf(c)
	centre := g.CellCenter(col, row)
	if d.Horizontal() {
		b.X = centre.X - b.W/2
	} else {
		b.Y = centre.Y - b.H/2
	}
	return b
}

func stepGrid(e *Entity, g *Grid, dt float64) {
	if g == nil {
		return
	}
	step := e.Speed * dt
	if e.NextDir != DirNone && e.NextDir != e.Dir {
		if b, ok := g.turn(e.Box, e.NextDir, step); ok {
			e.Box = b
			e.Dir = e.NextDir
		}
	}
	if e.Dir == DirNone {
		return
	}
	v := e.Dir.Vec()
	c := e.Box.Center()
	col, row := g.CellOf(c)
	if g.Wall(col+int(v.X), row+int(v.Y)) {
		centre := g.CellCenter(col, row)
		if (centre.X-c.X)*v.X+(centre.Y-c.Y)*v.Y <= step {
			e.Box = g.settle(e.Box, e.Dir)
			return
		}
	}
	next := e.Box.Translate(v.Scale(step))
	if !g.Blocked(next) {
		e.Box = next
		return
	}
	e.Box = g.settle(e.Box, e.Dir)
}
