package breakout

import "github.com/vovakirdan/arcade-loop/internal/core"

// Brick spacing in cells.
const (
	wallMargin = 1.0
	brickGap   = 1.0
)

// Wall lays out rows×cols one-cell-high bricks across the field, starting
// top rows below its top edge. Brick width scales with the field so the
// wall always spans it.
func Wall(field core.Box, rows, cols, top int) []core.Box {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	w := (field.W - 2*wallMargin - float64(cols-1)*brickGap) / float64(cols)
	if w < 1 {
		w = 1
	}
	out := make([]core.Box, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := field.X + wallMargin + float64(c)*(w+brickGap)
			y := field.Y + float64(top+r)
			out = append(out, core.NewBox(x, y, w, 1))
		}
	}
	return out
}
