package core

import (
	"sync"
	"time"
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionFire           // Space - shoot, jump
	ActionStart          // Enter - leave the ready screen
	ActionRestart        // R - restart after win or loss
	ActionPause          // P
	ActionQuit           // Q, Ctrl+C

	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputState is the latched input read by a game once per tick.
// It is a value: sampling copies it, so a tick never observes a change made
// by an input event that arrives while the tick runs.
type InputState struct {
	held [actionCount]bool

	// Pointer is the last tracked pointer position in screen cells.
	// Valid only when HasPointer is set.
	Pointer    Vec
	HasPointer bool
}

// Held reports whether the action is currently pressed.
func (s InputState) Held(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return s.held[a]
}

// Axis returns the horizontal and vertical direction implied by the held
// movement actions, each in {-1, 0, 1}.
func (s InputState) Axis() (dx, dy float64) {
	if s.Held(ActionLeft) {
		dx--
	}
	if s.Held(ActionRight) {
		dx++
	}
	if s.Held(ActionUp) {
		dy--
	}
	if s.Held(ActionDown) {
		dy++
	}
	return dx, dy
}

// With returns a copy of s with the given actions held. Used by tests and
// autopilots to build input without a Sampler.
func (s InputState) With(actions ...Action) InputState {
	for _, a := range actions {
		if a > ActionNone && a < actionCount {
			s.held[a] = true
		}
	}
	return s
}

// HoldWindow is how long a Tap keeps an action latched. Terminals report key
// presses (and auto-repeat) but never releases, so a tap is treated as a hold
// that lapses unless the key repeats.
const HoldWindow = 150 * time.Millisecond

// Sampler latches the most recent state of each action.
// Input handlers write to it; the game loop reads it once per tick with Sample.
// There is no queue: the last event for an action wins.
type Sampler struct {
	mu      sync.Mutex
	held    [actionCount]bool
	expires [actionCount]time.Time
	pointer Vec
	hasPtr  bool
}

// NewSampler creates a sampler with nothing held.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Press latches an action as held until Release.
func (s *Sampler) Press(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	s.mu.Lock()
	s.held[a] = true
	s.expires[a] = time.Time{}
	s.mu.Unlock()
}

// Release clears an action.
func (s *Sampler) Release(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	s.mu.Lock()
	s.held[a] = false
	s.expires[a] = time.Time{}
	s.mu.Unlock()
}

// Tap latches an action that lapses HoldWindow after now.
// Opposite directions are released so the newest key wins.
func (s *Sampler) Tap(a Action, now time.Time) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o := opposite(a); o != ActionNone {
		s.held[o] = false
		s.expires[o] = time.Time{}
	}
	s.held[a] = true
	s.expires[a] = now.Add(HoldWindow)
}

// SetPointer records the pointer position.
func (s *Sampler) SetPointer(x, y float64) {
	s.mu.Lock()
	s.pointer = Vec{X: x, Y: y}
	s.hasPtr = true
	s.mu.Unlock()
}

// ClearPointer forgets the pointer (touch ended or mouse released).
func (s *Sampler) ClearPointer() {
	s.mu.Lock()
	s.hasPtr = false
	s.mu.Unlock()
}

// Reset releases every action and forgets the pointer.
func (s *Sampler) Reset() {
	s.mu.Lock()
	s.held = [actionCount]bool{}
	s.expires = [actionCount]time.Time{}
	s.hasPtr = false
	s.mu.Unlock()
}

// Sample returns the latched state at now without consuming it.
// Taps whose hold window has passed are released first.
func (s *Sampler) Sample(now time.Time) InputState {
	s.mu.Lock()
	defer s.mu.Unlock()
	for a := range s.held {
		if s.held[a] && !s.expires[a].IsZero() && !now.Before(s.expires[a]) {
			s.held[a] = false
			s.expires[a] = time.Time{}
		}
	}
	return InputState{held: s.held, Pointer: s.pointer, HasPointer: s.hasPtr}
}

func opposite(a Action) Action {
	switch a {
	case ActionUp:
		return ActionDown
	case ActionDown:
		return ActionUp
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	}
	return ActionNone
}
