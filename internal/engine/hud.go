package engine

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-loop/internal/core"
)

// DrawHUD writes the status line: title, score and whichever vitals the
// session tracks, plus any extra fields.
func DrawHUD(dst *core.Screen, s *Session, title string, extra ...string) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	parts := []string{strings.ToUpper(title), fmt.Sprintf("Score: %d", s.Score())}
	if s.Initial().Lives > 0 {
		parts = append(parts, fmt.Sprintf("Lives: %d", s.Lives()))
	}
	if s.Initial().Health > 0 {
		parts = append(parts, fmt.Sprintf("Health: %d", s.Health()))
	}
	parts = append(parts, extra...)
	dst.DrawTextColor(1, 0, strings.Join(parts, "  "), core.ColorBrightWhite)
}

// DrawBanner draws the centered phase message for Ready, Won and Lost.
// hint is shown on the Ready screen (e.g. the game's controls).
func DrawBanner(dst *core.Screen, s *Session, title, hint string) {
	mid := dst.Height() / 2
	switch s.Phase() {
	case PhaseReady:
		dst.DrawTextCentered(mid-1, title, core.ColorBrightYellow)
		if hint != "" {
			dst.DrawTextCentered(mid+1, hint, core.ColorGray)
		}
		dst.DrawTextCentered(mid+2, "Press ENTER to start", core.ColorWhite)
	case PhaseWon:
		dst.DrawTextCentered(mid-1, "YOU WIN!", core.ColorBrightGreen)
		dst.DrawTextCentered(mid, fmt.Sprintf("Final score: %d", s.Score()), core.ColorWhite)
		dst.DrawTextCentered(mid+1, "Press R to play again", core.ColorGray)
	case PhaseLost:
		dst.DrawTextCentered(mid-1, "GAME OVER", core.ColorBrightRed)
		dst.DrawTextCentered(mid, fmt.Sprintf("Final score: %d", s.Score()), core.ColorWhite)
		dst.DrawTextCentered(mid+1, "Press R to restart", core.ColorGray)
	}
}
