package shooter

import (
	"fmt"

	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
)

var view = engine.Identity()

var enemyColors = []core.Color{core.ColorRed, core.ColorMagenta, core.ColorOrange}

func (g *Game) Layers() []engine.Kind {
	return []engine.Kind{
		engine.KindDecoration,
		engine.KindProjectile,
		engine.KindEnemy,
		engine.KindMinion,
		engine.KindBoss,
		engine.KindPlayer,
	}
}

func (g *Game) Paint(dst *core.Screen, e *engine.Entity) {
	switch e.Kind {
	case engine.KindDecoration:
		r, c := '.', core.ColorGray
		if e.Variant == 1 {
			r, c = '*', core.ColorWhite
		}
		view.Fill(dst, e.Box, r, c)
	case engine.KindProjectile:
		view.Fill(dst, e.Box, '|', core.ColorBrightYellow)
	case engine.KindEnemy:
		drawSprite(dst, view.Cells(e.Box), []string{"\\V/", " v "}, enemyColors[e.Variant%len(enemyColors)])
	case engine.KindMinion:
		drawSprite(dst, view.Cells(e.Box), []string{"<>"}, core.ColorBrightMagenta)
	case engine.KindBoss:
		drawSprite(dst, view.Cells(e.Box), []string{
			"/=========\\",
			"|[O]###[O]|",
			"\\vvvvvvvvv/",
		}, core.ColorBrightRed)
	case engine.KindPlayer:
		drawSprite(dst, view.Cells(e.Box), []string{"/A\\", "^^^"}, core.ColorBrightCyan)
	}
}

func (g *Game) Overlay(dst *core.Screen, s *engine.Session) {
	var extra []string
	if g.st.summoned {
		extra = append(extra, fmt.Sprintf("Boss: %d", g.BossHealth(s)))
	}
	engine.DrawHUD(dst, s, g.Title(), extra...)
	engine.DrawBanner(dst, s, g.Title(), "Arrows or mouse to move, SPACE fires")
}

// drawSprite draws rows of text clipped to r. A sprite narrower than r is
// stretched across it.
func drawSprite(dst *core.Screen, r core.Rect, rows []string, c core.Color) {
	for dy := 0; dy < r.H; dy++ {
		row := []rune(rows[core.Min(dy, len(rows)-1)])
		for dx := 0; dx < r.W; dx++ {
			i := dx
			if len(row) < r.W {
				i = dx * len(row) / r.W
			}
			if row[i] != ' ' {
				dst.SetColor(r.X+dx, r.Y+dy, row[i], c)
			}
		}
	}
}
