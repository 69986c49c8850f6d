package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type screenMode int

const (
	modeMenu screenMode = iota
	modeScores
	modeGame
)

// nameSavedMsg reports the outcome of recording the player's name.
type nameSavedMsg struct{ err error }

// SessionModel manages the full arcade flow: menu, scoreboard and games.
// It is the top-level model for `arcade menu` and for SSH sessions.
type SessionModel struct {
	opts   Options
	mode   screenMode
	menu   MenuModel
	scores ScoreboardModel
	game   *GameModel
	status string

	width, height int
	quitting      bool
}

// NewSessionModel creates a session for opts.Player.
func NewSessionModel(opts Options, width, height int) SessionModel {
	return SessionModel{
		opts:   opts,
		menu:   NewMenuModel(opts, width, height),
		width:  width,
		height: height,
	}
}

// Init records the player's name and loads the menu.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.saveName(), m.menu.Init())
}

func (m SessionModel) saveName() tea.Cmd {
	if m.opts.Board == nil || m.opts.Player == "" {
		return nil
	}
	board, name, logger := m.opts.Board, m.opts.Player, m.opts.logger()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), boardTimeout)
		defer cancel()
		err := board.SaveName(ctx, name)
		if err != nil {
			logger.Warn("cannot save player name", "name", name, "error", err)
		}
		return nameSavedMsg{err: err}
	}
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case nameSavedMsg:
		if msg.err != nil {
			m.status = "Playing offline: " + msg.err.Error()
		}
		return m, nil
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.mode = modeScores
		game := ""
		if len(m.menu.items) > 0 {
			game = m.menu.items[m.menu.cursor].GameID
		}
		m.scores = NewScoreboardModel(m.opts.Board, game, m.width, m.height)
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		opts := m.opts
		opts.Difficulty = m.menu.Difficulty()
		loop, err := NewLoop(m.menu.Selected().GameID, opts)
		if err != nil {
			m.status = err.Error()
			m.menu = m.resetMenu()
			return m, nil
		}
		g := NewGameModel(loop, opts)
		g.width, g.height = m.width, m.height
		m.game = &g
		m.mode = modeGame
		m.status = ""
		return m, tea.Batch(g.Init(), tea.EnableMouseCellMotion)
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.mode = modeMenu
		m.menu = m.resetMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	g := next.(GameModel)
	m.game = &g

	switch {
	case g.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case g.BackToMenu():
		m.game = nil
		m.mode = modeMenu
		m.menu = m.resetMenu()
		return m, tea.Batch(m.menu.Init(), tea.DisableMouse)
	}
	return m, cmd
}

// resetMenu rebuilds the menu keeping the cursor and difficulty.
func (m SessionModel) resetMenu() MenuModel {
	menu := NewMenuModel(m.opts, m.width, m.height)
	menu.cursor = min(m.menu.cursor, max(len(menu.items)-1, 0))
	menu.preset = m.menu.preset
	return menu
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeGame:
		return m.game.View()
	case modeScores:
		return m.scores.View()
	}
	v := m.menu.View()
	if m.status != "" {
		v += "\n" + errorStyle.Render(centerText(m.status, m.width))
	}
	return v
}

// Mode reports which screen is active: "menu", "scores" or "game".
func (m SessionModel) Mode() string {
	switch m.mode {
	case modeGame:
		return "game"
	case modeScores:
		return "scores"
	}
	return "menu"
}

// RunSession runs the menu-driven arcade in the local terminal.
func RunSession(opts Options) error {
	w, h := terminalSize()
	_, err := tea.NewProgram(NewSessionModel(opts, w, h), tea.WithAltScreen()).Run()
	return err
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
