package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

// boardTimeout bounds leaderboard reads made by the menu and scoreboard.
const boardTimeout = 3 * time.Second

// presets is the difficulty cycle shown in the menu. The empty preset keeps
// each game's configured difficulty.
var presets = []config.DifficultyPreset{
	"",
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

func presetName(p config.DifficultyPreset) string {
	if p == "" {
		return "default"
	}
	return string(p)
}

// MenuItem is a selectable game.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// bestScoresMsg carries each game's top score.
type bestScoresMsg map[string]int

// MenuModel is the game picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	preset         int
	opts           Options
	keys           *KeyMapper
	width, height  int
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists the registered games.
func NewMenuModel(opts Options, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}
	m := MenuModel{
		items:  items,
		opts:   opts,
		keys:   NewKeyMapper(),
		width:  width,
		height: height,
	}
	for i, p := range presets {
		if p == opts.Difficulty {
			m.preset = i
		}
	}
	return m
}

// Init loads the best score of every game.
func (m MenuModel) Init() tea.Cmd {
	if m.opts.Board == nil {
		return nil
	}
	return m.loadBest
}

func (m MenuModel) loadBest() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), boardTimeout)
	defer cancel()
	best := make(bestScoresMsg, len(m.items))
	for _, it := range m.items {
		top, err := m.opts.Board.Top(ctx, it.GameID, 1)
		if err != nil {
			m.opts.logger().Warn("cannot load best score", "game", it.GameID, "error", err)
			continue
		}
		if len(top) > 0 {
			best[it.GameID] = top[0].Score
		}
	}
	return best
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)

	case bestScoresMsg:
		for i := range m.items {
			m.items[i].Best = msg[m.items[i].GameID]
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m *MenuModel) handleKey(msg tea.KeyMsg) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.preset = (m.preset + len(presets) - 1) % len(presets)
	case MenuActionRight:
		m.preset = (m.preset + 1) % len(presets)
	case MenuActionSelect:
		if len(m.items) > 0 {
			it := m.items[m.cursor]
			m.selected = &it
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("A R C A D E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, it := range m.items {
		line := fmt.Sprintf("  %-12s", it.Title)
		if it.Best > 0 {
			line += fmt.Sprintf("  best %d", it.Best)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("< Difficulty: %s >", presetName(m.Difficulty())), m.width))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the chosen preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return presets[m.preset]
}

// IsQuitting returns true if the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
