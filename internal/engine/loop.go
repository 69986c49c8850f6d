package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-loop/internal/core"
)

// ErrTickPanic wraps a panic recovered while running a tick.
var ErrTickPanic = errors.New("engine: tick panicked")

// TickReport describes the outcome of one tick.
type TickReport struct {
	Tick        uint64  // ticks run so far in this session, including this one
	DT          float64 // elapsed seconds simulated
	Resolutions int     // collision resolutions applied
	Removed     int     // inactive entities compacted away
	Phase       Phase   // phase after the tick
	Stale       bool    // the token was rejected and nothing ran
	Err         error   // the tick failed and was rolled back
}

// Loop drives one game session: scheduling, the tick pipeline, error
// containment and rendering.
type Loop struct {
	game     Game
	session  *Session
	resolver *Resolver
	sched    Scheduler
	logger   *log.Logger
	rebuild  func() (Game, error)

	ticks   uint64
	lastErr error
	frameOK bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger tick failures are reported to.
func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

// WithRebuild sets a constructor Restart uses to build a fresh Game, so
// settings changed since the previous session take effect. When it fails
// the previous game is kept.
func WithRebuild(fn func() (Game, error)) Option {
	return func(lp *Loop) {
		lp.rebuild = fn
	}
}

// NewLoop creates a Ready session for g and spawns its initial entities.
func NewLoop(g Game, seed uint64, opts ...Option) (*Loop, error) {
	l := &Loop{
		game:     g,
		session:  NewSession(g.Vitals(), seed),
		resolver: NewResolver(g.Rules()...),
		logger:   log.New(io.Discard),
		frameOK:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := g.Setup(l.session); err != nil {
		return nil, fmt.Errorf("engine: setup %s: %w", g.ID(), err)
	}
	return l, nil
}

// Game returns the game being run.
func (l *Loop) Game() Game { return l.game }

// Session returns the session.
func (l *Loop) Session() *Session { return l.session }

// Phase returns the session phase.
func (l *Loop) Phase() Phase { return l.session.Phase() }

// Ticks returns the number of ticks run since the last (re)start.
func (l *Loop) Ticks() uint64 { return l.ticks }

// LastError returns the most recent tick failure, cleared by the next
// successful tick.
func (l *Loop) LastError() error { return l.lastErr }

// Start moves a Ready session to Running and starts the scheduler.
func (l *Loop) Start() error {
	if err := l.session.Start(); err != nil {
		return err
	}
	l.sched.Start()
	return nil
}

// Restart resets a Won or Lost session (fresh store, zero score, initial
// vitals, no timers) and starts it again. With WithRebuild the game is
// recreated first.
func (l *Loop) Restart() error {
	if !l.session.Phase().Terminal() {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, l.session.Phase())
	}
	l.sched.Stop()
	if l.rebuild != nil {
		if g, err := l.rebuild(); err != nil {
			l.logger.Warn("cannot rebuild game, keeping previous settings", "game", l.game.ID(), "err", err)
		} else {
			l.game = g
			l.resolver = NewResolver(g.Rules()...)
			l.session.initial = g.Vitals()
		}
	}
	l.session.reset()
	if err := l.game.Setup(l.session); err != nil {
		return fmt.Errorf("engine: setup %s: %w", l.game.ID(), err)
	}
	l.ticks = 0
	l.lastErr = nil
	l.frameOK = true
	return l.Start()
}

// Stop halts tick delivery without changing the phase. Idempotent.
func (l *Loop) Stop() {
	l.sched.Stop()
}

// Resume restarts tick delivery for a Running session halted by Stop. Time
// spent stopped is not simulated.
func (l *Loop) Resume() error {
	if !l.session.Running() {
		return fmt.Errorf("%w: resume from %s", ErrNotRunning, l.session.Phase())
	}
	if !l.sched.Running() {
		l.sched.Start()
	}
	return nil
}

// Arm returns the token for the next tick. False means no tick should be
// scheduled.
func (l *Loop) Arm() (Token, bool) {
	if !l.session.Running() {
		l.sched.Stop()
		return Token{}, false
	}
	return l.sched.Arm()
}

// Tick runs the tick a token was armed for. Stale tokens (from before a
// stop or restart, or already fired) run nothing.
func (l *Loop) Tick(tok Token, now time.Time, in core.InputState) TickReport {
	dt, ok := l.sched.Accept(tok, now)
	if !ok {
		return TickReport{Tick: l.ticks, Phase: l.session.Phase(), Stale: true}
	}
	return l.Advance(dt, in)
}

// Advance runs one tick of dt seconds regardless of the scheduler. Headless
// drivers and tests use it for fixed-step simulation.
func (l *Loop) Advance(dt float64, in core.InputState) TickReport {
	s := l.session
	if !s.Running() {
		return TickReport{Tick: l.ticks, Phase: s.Phase(), Err: ErrNotRunning}
	}
	if dt < 0 {
		dt = 0
	}

	l.ticks++
	rep := TickReport{Tick: l.ticks, DT: dt}

	snap := s.snapshot()
	var gameState any
	stateful, hasState := l.game.(Stateful)
	if hasState {
		gameState = stateful.SaveState()
	}

	if err := l.run(dt, in, &rep); err != nil {
		s.restore(snap)
		if hasState {
			stateful.RestoreState(gameState)
		}
		l.lastErr = err
		l.frameOK = false
		rep.Err = err
		rep.Resolutions, rep.Removed = 0, 0
		l.logger.Error("tick failed", "game", l.game.ID(), "tick", l.ticks, "err", err)
	} else {
		l.lastErr = nil
		l.frameOK = true
	}

	if !s.Running() {
		l.sched.Stop()
	}
	rep.Phase = s.Phase()
	return rep
}

// run is the tick pipeline. Panics are converted to errors so the caller
// can roll back.
func (l *Loop) run(dt float64, in core.InputState, rep *TickReport) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTickPanic, r)
		}
	}()

	s := l.session
	s.Store.Compact()

	if err := l.game.Control(s, in, dt); err != nil {
		return fmt.Errorf("control: %w", err)
	}
	if s.Running() {
		s.timers.advance(s, dt)
	}
	if s.Running() {
		Step(s.Store, l.game.Environment(), dt)
		n, err := l.resolver.Resolve(s)
		if err != nil {
			return err
		}
		rep.Resolutions = n
	}
	if s.Running() {
		if err := l.game.Settle(s, dt); err != nil {
			return fmt.Errorf("settle: %w", err)
		}
	}
	rep.Removed = s.Store.Compact()
	return nil
}

// Render draws the current frame into dst and reports whether it did. After
// a failed tick the previous frame is left in dst untouched.
func (l *Loop) Render(dst *core.Screen) bool {
	if !l.frameOK {
		return false
	}
	Render(l.session, dst, l.game)
	return true
}
