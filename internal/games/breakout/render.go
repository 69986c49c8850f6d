package breakout

import (
	"fmt"

	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
)

var view = engine.Identity()

// rowColors paints the wall top down: one red row, one dark row, the rest
// yellow.
var rowColors = []core.Color{core.ColorRed, core.ColorGray}

func (g *Game) Layers() []engine.Kind {
	return []engine.Kind{engine.KindBrick, engine.KindPaddle, engine.KindBall}
}

func (g *Game) Paint(dst *core.Screen, e *engine.Entity) {
	switch e.Kind {
	case engine.KindBrick:
		c := core.ColorBrightYellow
		if e.Variant < len(rowColors) {
			c = rowColors[e.Variant]
		}
		view.Fill(dst, e.Box, '█', c)
	case engine.KindPaddle:
		view.Fill(dst, e.Box, '=', core.ColorYellow)
	case engine.KindBall:
		x, y := view.Point(e.Box.Center())
		dst.SetColor(x, y, '●', core.ColorBrightRed)
	}
}

func (g *Game) Overlay(dst *core.Screen, s *engine.Session) {
	engine.DrawHUD(dst, s, g.Title(), fmt.Sprintf("Bricks: %d", s.Store.Count(engine.KindBrick)))
	engine.DrawBanner(dst, s, g.Title(), "Arrows or mouse move the paddle")
}
