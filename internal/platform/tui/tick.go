// Package tui hosts the engine in a terminal with Bubble Tea. It latches key
// and mouse input into a sampler, schedules ticks and paints the screen
// buffer with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-loop/internal/engine"
)

// DefaultTickRate is used when no rate is configured.
const DefaultTickRate = 60

// TickMsg delivers one scheduled tick. Token identifies the schedule it was
// armed for; a tick armed before a pause or restart is rejected by the loop.
type TickMsg struct {
	Token engine.Token
	At    time.Time
}

// tickCmd schedules the tick for tok one frame from now.
func tickCmd(rate int, tok engine.Token) tea.Cmd {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg{Token: tok, At: t}
	})
}
