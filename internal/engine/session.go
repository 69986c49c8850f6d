package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	// ErrInvalidTransition is returned when a phase change is not allowed
	// from the current phase.
	ErrInvalidTransition = errors.New("engine: invalid phase transition")

	// ErrNotRunning is reported by a tick requested while the session is
	// not Running.
	ErrNotRunning = errors.New("engine: session not running")
)

// Phase is the coarse session lifecycle stage.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	}
	return "unknown"
}

// Terminal reports whether the phase ends a session.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Vitals are the starting lives and health of a session. A zero value means
// the game does not track that counter.
type Vitals struct {
	Lives  int
	Health int
}

// Session owns the entity store, score, vitals, timers and RNG of one play
// session. Restarting resets it in place under a new generation.
type Session struct {
	Store *Store
	Rand  *rand.Rand

	timers     Timers
	pcg        rand.PCG
	phase      Phase
	score      int
	lives      int
	health     int
	initial    Vitals
	generation uint64
}

// NewSession creates a Ready session with the given starting vitals.
func NewSession(v Vitals, seed uint64) *Session {
	s := &Session{
		Store:   NewStore(),
		initial: v,
		lives:   v.Lives,
		health:  v.Health,
	}
	s.pcg.Seed(seed, seed^0x9e3779b97f4a7c15)
	s.Rand = rand.New(&s.pcg)
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Running reports whether the session is in the Running phase.
func (s *Session) Running() bool { return s.phase == PhaseRunning }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Health returns the remaining health.
func (s *Session) Health() int { return s.health }

// Initial returns the starting vitals.
func (s *Session) Initial() Vitals { return s.initial }

// Generation identifies the current reset epoch. It changes on every restart.
func (s *Session) Generation() uint64 { return s.generation }

// Start moves a Ready session to Running.
func (s *Session) Start() error {
	if s.phase != PhaseReady {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.phase)
	}
	s.phase = PhaseRunning
	return nil
}

// AddScore adds points. Non-positive amounts are ignored so the score never
// decreases.
func (s *Session) AddScore(n int) {
	if n > 0 {
		s.score += n
	}
}

// Damage subtracts health. Reaching zero loses the session. Ignored unless
// Running.
func (s *Session) Damage(n int) {
	if !s.Running() || n <= 0 {
		return
	}
	s.health -= n
	if s.health <= 0 {
		s.health = 0
		s.phase = PhaseLost
	}
}

// LoseLife takes one life and reports whether any remain. The last life
// loses the session.
func (s *Session) LoseLife() bool {
	if !s.Running() {
		return false
	}
	s.lives--
	if s.lives <= 0 {
		s.lives = 0
		s.phase = PhaseLost
		return false
	}
	return true
}

// Win ends a Running session as won.
func (s *Session) Win() {
	if s.Running() {
		s.phase = PhaseWon
	}
}

// Lose ends a Running session as lost.
func (s *Session) Lose() {
	if s.Running() {
		s.phase = PhaseLost
	}
}

// Chance rolls an event whose probability is given per 1/60 s, adjusted so
// the expected rate does not depend on dt.
func (s *Session) Chance(per60, dt float64) bool {
	if per60 <= 0 || dt <= 0 {
		return false
	}
	if per60 >= 1 {
		return true
	}
	return s.Rand.Float64() < 1-math.Pow(1-per60, dt*refRate)
}

// After schedules fn to run once, delay seconds of simulated time from now.
func (s *Session) After(delay float64, fn func(s *Session)) TimerID {
	return s.timers.add(s.generation, delay, 0, fn)
}

// Every schedules fn to run every period seconds of simulated time.
func (s *Session) Every(period float64, fn func(s *Session)) TimerID {
	return s.timers.add(s.generation, period, period, fn)
}

// CancelTimer stops a timer.
func (s *Session) CancelTimer(id TimerID) {
	s.timers.Cancel(id)
}

// PendingTimers returns the number of live timers.
func (s *Session) PendingTimers() int {
	return s.timers.Pending()
}

// reset returns the session to Ready with a fresh store, zero score, the
// initial vitals and no timers. The generation bump invalidates anything
// still holding on to the previous epoch.
func (s *Session) reset() {
	s.generation++
	s.timers.clear()
	s.Store.Reset()
	s.score = 0
	s.lives = s.initial.Lives
	s.health = s.initial.Health
	s.phase = PhaseReady
}

type sessionSnapshot struct {
	store  Snapshot
	timers timersSnapshot
	pcg    rand.PCG
	phase  Phase
	score  int
	lives  int
	health int
}

func (s *Session) snapshot() sessionSnapshot {
	return sessionSnapshot{
		store:  s.Store.Snapshot(),
		timers: s.timers.snapshot(),
		pcg:    s.pcg,
		phase:  s.phase,
		score:  s.score,
		lives:  s.lives,
		health: s.health,
	}
}

func (s *Session) restore(snap sessionSnapshot) {
	s.Store.Restore(snap.store)
	s.timers.restore(snap.timers)
	s.pcg = snap.pcg
	s.phase = snap.phase
	s.score = snap.score
	s.lives = snap.lives
	s.health = snap.health
}
