package engine

import "github.com/vovakirdan/arcade-loop/internal/core"

// Game is one arcade game built on the engine. The engine owns the tick
// order; the game supplies the rules.
type Game interface {
	// ID returns a unique identifier (e.g., "shooter", "maze").
	// Used for CLI commands and leaderboard entries.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Vitals returns the starting lives and health.
	Vitals() Vitals

	// Environment returns the movement parameters for the current tick.
	Environment() *Env

	// Setup spawns the initial entity set into a freshly reset session and
	// resets any game-private state. Called on creation and on every restart.
	Setup(s *Session) error

	// Control runs before movement: applies input, steers AI, spawns.
	Control(s *Session, in core.InputState, dt float64) error

	// Rules returns the collision rules in resolution order.
	Rules() []Rule

	// Settle runs after collisions while the session is still Running:
	// scoring for entities that left the field, win checks, respawns.
	Settle(s *Session, dt float64) error

	Painter
}

// Painter draws a session.
type Painter interface {
	// Layers lists entity kinds back to front. Kinds not listed are not drawn.
	Layers() []Kind

	// Paint draws one active entity.
	Paint(dst *core.Screen, e *Entity)

	// Overlay draws the HUD and phase banners on top of the entities.
	Overlay(dst *core.Screen, s *Session)
}

// Stateful is implemented by games that keep mutable state outside the
// session (level index, cooldowns). The loop saves it before each tick and
// restores it if the tick fails.
type Stateful interface {
	SaveState() any
	RestoreState(state any)
}
