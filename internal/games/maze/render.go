package maze

import (
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
)

var ghostColors = []core.Color{core.ColorBrightRed, core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorOrange}

func (g *Game) Layers() []engine.Kind {
	return []engine.Kind{
		engine.KindTile,
		engine.KindPellet,
		engine.KindPowerPellet,
		engine.KindEnemy,
		engine.KindPlayer,
	}
}

func (g *Game) Paint(dst *core.Screen, e *engine.Entity) {
	switch e.Kind {
	case engine.KindTile:
		g.view.Fill(dst, e.Box, '█', core.ColorBlue)
	case engine.KindPellet:
		x, y := g.view.Point(e.Box.Center())
		dst.SetColor(x, y, '·', core.ColorWhite)
	case engine.KindPowerPellet:
		x, y := g.view.Point(e.Box.Center())
		dst.SetColor(x, y, 'o', core.ColorBrightWhite)
	case engine.KindEnemy:
		c, r := ghostColors[e.Value%len(ghostColors)], 'M'
		if e.Variant == ghostFrightened {
			c, r = core.ColorBlue, 'W'
		}
		g.view.Fill(dst, e.Box, r, c)
	case engine.KindPlayer:
		g.view.Fill(dst, e.Box, mouth(e.Dir), core.ColorBrightYellow)
	}
}

// mouth returns the player glyph opening toward the direction of travel.
func mouth(d engine.Dir) rune {
	switch d {
	case engine.DirLeft:
		return '>'
	case engine.DirUp:
		return 'V'
	case engine.DirDown:
		return '^'
	}
	return '<'
}

func (g *Game) Overlay(dst *core.Screen, s *engine.Session) {
	var extra []string
	if g.Frightened() {
		extra = append(extra, "POWER!")
	}
	engine.DrawHUD(dst, s, g.Title(), extra...)
	engine.DrawBanner(dst, s, g.Title(), "Arrows to move, eat every pellet")
}
