package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/engine"
	"github.com/vovakirdan/arcade-loop/internal/leaderboard"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

// submitTimeout bounds a score submission to a remote board.
const submitTimeout = 5 * time.Second

// Options configure the terminal host.
type Options struct {
	Board      leaderboard.Store // nil disables scores
	Config     *config.Source    // nil uses embedded defaults
	Difficulty config.DifficultyPreset
	Player     string // name scores are submitted under; empty disables submission
	TickRate   int
	Seed       int64 // 0 seeds each game from the clock
	Logger     *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// NewLoop creates a game from the registry on the standard 80x24 world and
// wraps it in a Ready loop. Restarts rebuild the game, picking up reloaded
// config.
func NewLoop(id string, opts Options) (*engine.Loop, error) {
	rt := core.DefaultConfig()
	rt.Seed = opts.Seed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if opts.TickRate > 0 {
		rt.TickRate = opts.TickRate
	}
	build := func() (engine.Game, error) {
		return registry.Create(id, registry.Options{
			Runtime:    rt,
			Config:     opts.Config,
			Difficulty: opts.Difficulty,
		})
	}
	g, err := build()
	if err != nil {
		return nil, err
	}
	return engine.NewLoop(g, uint64(rt.Seed),
		engine.WithLogger(opts.logger()),
		engine.WithRebuild(build),
	)
}

// submittedMsg reports the outcome of a score submission.
type submittedMsg struct {
	entry leaderboard.Entry
	err   error
}

// GameModel runs one game loop: it feeds keys and the mouse to the input
// sampler, re-arms ticks while the session runs and submits the final score.
type GameModel struct {
	loop    *engine.Loop
	sampler *core.Sampler
	screen  *core.Screen
	keys    *KeyMapper
	opts    Options
	now     func() time.Time

	width, height int
	paused        bool
	submitted     bool
	status        string
	statusErr     bool
	quitting      bool
	backToMenu    bool
	quitOnBack    bool
}

// NewGameModel creates a model for a Ready loop.
func NewGameModel(loop *engine.Loop, opts Options) GameModel {
	rt := core.DefaultConfig()
	return GameModel{
		loop:    loop,
		sampler: core.NewSampler(),
		screen:  core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:    NewKeyMapper(),
		opts:    opts,
		now:     time.Now,
		width:   rt.ScreenW,
		height:  rt.ScreenH + 1,
	}
}

// Init waits on the Ready screen; ticks start with ENTER.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		x, y := m.origin()
		m.sampler.SetPointer(float64(msg.X-x), float64(msg.Y-y))
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case submittedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Score not saved: %v", msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("Saved %d for %s", msg.entry.Score, msg.entry.Name), false)
		}
		return m, nil
	}
	return m, nil
}

func (m *GameModel) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		m.loop.Stop()
		return m, tea.Quit
	}

	phase := m.loop.Phase()
	if m.keys.MapKeyToMenuAction(msg) == MenuActionBack && (phase != engine.PhaseRunning || m.paused) {
		m.loop.Stop()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	switch action {
	case core.ActionStart:
		if phase != engine.PhaseReady {
			return m, nil
		}
		if err := m.loop.Start(); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		return m, m.arm()

	case core.ActionPause:
		if phase != engine.PhaseRunning {
			return m, nil
		}
		if m.paused {
			if err := m.loop.Resume(); err != nil {
				m.setStatus(err.Error(), true)
				return m, nil
			}
			m.paused = false
			return m, m.arm()
		}
		m.loop.Stop()
		m.sampler.Reset()
		m.paused = true
		return m, nil

	case core.ActionRestart:
		if !phase.Terminal() {
			return m, nil
		}
		if err := m.loop.Restart(); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.sampler.Reset()
		m.submitted = false
		m.setStatus("", false)
		return m, m.arm()

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.sampler.ClearPointer()
	}

	m.sampler.Tap(action, m.now())
	return m, nil
}

// handleTick runs one tick and schedules the next while the session runs.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	rep := m.loop.Tick(msg.Token, msg.At, m.sampler.Sample(msg.At))
	if rep.Stale {
		return m, nil
	}
	if rep.Err != nil {
		m.setStatus(fmt.Sprintf("Tick %d failed: %v", rep.Tick, rep.Err), true)
	}
	if rep.Phase.Terminal() {
		return m, m.submit()
	}
	return m, m.arm()
}

func (m GameModel) arm() tea.Cmd {
	tok, ok := m.loop.Arm()
	if !ok {
		return nil
	}
	return tickCmd(m.opts.TickRate, tok)
}

// submit records the final score once per session. Zero scores are not
// submitted.
func (m *GameModel) submit() tea.Cmd {
	score := m.loop.Session().Score()
	if m.submitted || m.opts.Board == nil || m.opts.Player == "" || score <= 0 {
		return nil
	}
	m.submitted = true
	board := m.opts.Board
	e := leaderboard.Entry{Game: m.loop.Game().ID(), Name: m.opts.Player, Score: score}
	logger := m.opts.logger()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		err := board.Submit(ctx, e)
		if err != nil {
			logger.Warn("score not saved", "game", e.Game, "name", e.Name, "score", e.Score, "error", err)
		}
		return submittedMsg{entry: e, err: err}
	}
}

// View renders the frame and a status line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.loop.Render(m.screen)
	if m.paused {
		mid := m.screen.Height() / 2
		m.screen.DrawTextCentered(mid, "PAUSED", core.ColorBrightYellow)
		m.screen.DrawTextCentered(mid+1, "P to resume  B to leave", core.ColorGray)
	}
	frame := lipgloss.JoinVertical(lipgloss.Left, RenderScreen(m.screen), m.statusLine())
	x, y := m.origin()
	return lipgloss.NewStyle().MarginLeft(x).MarginTop(y).Render(frame)
}

// origin returns the terminal cell of the frame's top-left corner. The frame
// is centered when the terminal is larger than the world.
func (m GameModel) origin() (x, y int) {
	return max(0, (m.width-m.screen.Width())/2), max(0, (m.height-m.screen.Height()-1)/2)
}

func (m GameModel) statusLine() string {
	switch {
	case m.status != "" && m.statusErr:
		return errorStyle.Render(m.status)
	case m.status != "":
		return okStyle.Render(m.status)
	}
	return dimStyle.Render("P pause  R restart  B menu  Q quit")
}

// Loop returns the game loop.
func (m GameModel) Loop() *engine.Loop {
	return m.loop
}

// Paused reports whether ticks are suspended.
func (m GameModel) Paused() bool {
	return m.paused
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user left the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame plays one game in the terminal until the user quits.
func RunGame(id string, opts Options) error {
	loop, err := NewLoop(id, opts)
	if err != nil {
		return err
	}
	model := NewGameModel(loop, opts)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}
