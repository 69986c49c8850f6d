package snake

import (
	"fmt"

	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
)

var view = engine.Viewport{ScaleX: 2, ScaleY: 1, OffsetY: core.HUDRows}

func (g *Game) Layers() []engine.Kind {
	return []engine.Kind{engine.KindPellet, engine.KindSegment}
}

func (g *Game) Paint(dst *core.Screen, e *engine.Entity) {
	switch {
	case e.Kind == engine.KindPellet:
		view.Fill(dst, e.Box, '●', core.ColorOrange)
	case e.Variant == segHead:
		view.Fill(dst, e.Box, '█', core.ColorBrightGreen)
	default:
		view.Fill(dst, e.Box, '▓', core.ColorGreen)
	}
}

func (g *Game) Overlay(dst *core.Screen, s *engine.Session) {
	engine.DrawHUD(dst, s, g.Title(), fmt.Sprintf("Length: %d", g.Length()))
	engine.DrawBanner(dst, s, g.Title(), "Arrows to turn")
}
