package runner

import (
	"fmt"

	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
)

var view = engine.Identity()

var (
	runningSprite = [2]string{"_o_", "/ \\"}
	jumpingSprite = [2]string{"\\o/", " ^ "}
)

func (g *Game) Layers() []engine.Kind {
	return []engine.Kind{engine.KindTile, engine.KindDecoration, engine.KindObstacle, engine.KindPlayer}
}

func (g *Game) Paint(dst *core.Screen, e *engine.Entity) {
	switch e.Kind {
	case engine.KindTile:
		view.Fill(dst, e.Box, '▀', core.ColorGray)
	case engine.KindDecoration:
		view.Fill(dst, e.Box, '=', core.ColorWhite)
	case engine.KindObstacle:
		if e.Variant > 0 {
			view.Fill(dst, e.Box, '≈', core.ColorCyan)
			return
		}
		view.Fill(dst, e.Box, '█', core.ColorYellow)
	case engine.KindPlayer:
		sprite := runningSprite
		if !e.Grounded {
			sprite = jumpingSprite
		}
		for i, row := range sprite {
			view.Text(dst, core.Vec{X: e.Box.X, Y: e.Box.Y + float64(i)}, row, core.ColorBrightGreen)
		}
	}
}

func (g *Game) Overlay(dst *core.Screen, s *engine.Session) {
	engine.DrawHUD(dst, s, g.Title(), fmt.Sprintf("Speed: %.0f", g.Speed(s)))
	engine.DrawBanner(dst, s, g.Title(), "Space or Up to jump")
}
