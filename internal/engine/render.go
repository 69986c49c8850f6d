package engine

import (
	"math"

	"github.com/vovakirdan/arcade-loop/internal/core"
)

// Render clears dst, draws every active entity in the painter's layer order
// and then the painter's overlay.
func Render(s *Session, dst *core.Screen, p Painter) {
	dst.Clear()
	for _, k := range p.Layers() {
		for _, e := range s.Store.Group(k) {
			p.Paint(dst, e)
		}
	}
	p.Overlay(dst, s)
}

// Viewport maps world boxes to screen cells.
type Viewport struct {
	ScaleX, ScaleY   float64 // cells per world unit
	OffsetX, OffsetY int     // screen cell of the world origin
	CameraX          float64 // world x shown at the left edge
}

// Identity returns a viewport with one cell per world unit, shifted down by
// the HUD rows.
func Identity() Viewport {
	return Viewport{ScaleX: 1, ScaleY: 1, OffsetY: core.HUDRows}
}

const cellEps = 1e-9

// Cells returns the cell rectangle covered by b. Every box covers at least
// one cell.
func (v Viewport) Cells(b core.Box) core.Rect {
	x0 := int(math.Floor((b.X-v.CameraX)*v.ScaleX+cellEps)) + v.OffsetX
	y0 := int(math.Floor(b.Y*v.ScaleY+cellEps)) + v.OffsetY
	x1 := int(math.Ceil((b.Right()-v.CameraX)*v.ScaleX-cellEps)) + v.OffsetX
	y1 := int(math.Ceil(b.Bottom()*v.ScaleY-cellEps)) + v.OffsetY
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// Point returns the cell containing a world point.
func (v Viewport) Point(p core.Vec) (int, int) {
	return int(math.Floor((p.X-v.CameraX)*v.ScaleX)) + v.OffsetX,
		int(math.Floor(p.Y*v.ScaleY)) + v.OffsetY
}

// World converts a screen cell back to the world point at its top-left.
func (v Viewport) World(x, y int) core.Vec {
	return core.Vec{
		X: float64(x-v.OffsetX)/v.ScaleX + v.CameraX,
		Y: float64(y-v.OffsetY) / v.ScaleY,
	}
}

// Fill paints the cells covered by b.
func (v Viewport) Fill(dst *core.Screen, b core.Box, r rune, c core.Color) {
	dst.DrawRect(v.Cells(b), r, c)
}

// Text draws a string starting at the cell of a world point.
func (v Viewport) Text(dst *core.Screen, p core.Vec, text string, c core.Color) {
	x, y := v.Point(p)
	dst.DrawTextColor(x, y, text, c)
}
