package platformer

import (
	"fmt"

	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
)

func (g *Game) Layers() []engine.Kind {
	return []engine.Kind{engine.KindTile, engine.KindGoal, engine.KindEnemy, engine.KindPlayer}
}

// viewport maps the current level onto the screen, ground at the bottom.
func (g *Game) viewport() engine.Viewport {
	rows := g.rt.ScreenH - core.HUDRows
	return engine.Viewport{
		ScaleX:  2,
		ScaleY:  1,
		OffsetY: core.HUDRows + max(0, rows-g.levels[g.st.level].Rows),
		CameraX: g.st.camera,
	}
}

func (g *Game) Paint(dst *core.Screen, e *engine.Entity) {
	v := g.viewport()
	switch e.Kind {
	case engine.KindTile:
		switch e.Variant {
		case blockBrick:
			v.Fill(dst, e.Box, '▒', core.ColorOrange)
		case blockQuestion:
			v.Fill(dst, e.Box, '?', core.ColorBrightYellow)
		default:
			v.Fill(dst, e.Box, '█', core.ColorGreen)
		}
	case engine.KindGoal:
		v.Fill(dst, e.Box, '|', core.ColorBrightWhite)
	case engine.KindEnemy:
		v.Fill(dst, e.Box, 'm', core.ColorRed)
	case engine.KindPlayer:
		v.Fill(dst, e.Box, '@', core.ColorBrightRed)
	}
}

func (g *Game) Overlay(dst *core.Screen, s *engine.Session) {
	extra := []string{fmt.Sprintf("World 1-%d", g.st.level+1)}
	if g.st.completing {
		extra = append(extra, "COURSE CLEAR!")
	}
	engine.DrawHUD(dst, s, g.Title(), extra...)
	engine.DrawBanner(dst, s, g.Title(), "Arrows to run, Space to jump")
}
