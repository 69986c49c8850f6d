// Package engine implements the shared arcade simulation: an entity store,
// per-entity movement rules, pairwise box collision, a session state machine
// with generation-keyed timers, and a tick loop that ties them together.
//
// The engine is single-threaded. A host (the terminal UI, a headless
// simulator, a test) calls Loop.Tick or Loop.Advance from one goroutine and
// feeds it input sampled from a core.Sampler.
package engine

import "github.com/vovakirdan/arcade-loop/internal/core"

// Kind tags what an entity is. Collision rules and draw order are keyed by it.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindProjectile
	KindEnemy
	KindBoss
	KindMinion
	KindPellet
	KindPowerPellet
	KindBrick
	KindBall
	KindPaddle
	KindTile
	KindSegment
	KindObstacle
	KindGoal
	KindDecoration

	kindCount
)

var kindNames = [kindCount]string{
	KindNone:        "none",
	KindPlayer:      "player",
	KindProjectile:  "projectile",
	KindEnemy:       "enemy",
	KindBoss:        "boss",
	KindMinion:      "minion",
	KindPellet:      "pellet",
	KindPowerPellet: "power-pellet",
	KindBrick:       "brick",
	KindBall:        "ball",
	KindPaddle:      "paddle",
	KindTile:        "tile",
	KindSegment:     "segment",
	KindObstacle:    "obstacle",
	KindGoal:        "goal",
	KindDecoration:  "decoration",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// ID identifies an entity within one store. Zero is never assigned.
type ID uint32

// Motion selects the movement rule applied by Step.
type Motion uint8

const (
	MotionStatic     Motion = iota // never moves on its own
	MotionLinear                   // constant velocity
	MotionPlatformer               // gravity, thrust, friction, solid resolution
	MotionPatrol                   // gravity and constant walk speed, turns at walls
	MotionGrid                     // tile-constrained with deferred turns
)

// Boundary selects what happens when an entity reaches the playfield edge.
type Boundary uint8

const (
	BoundaryNone    Boundary = iota
	BoundaryWrap             // leaves one edge, re-enters the opposite one
	BoundaryClamp            // pinned inside the playfield
	BoundaryClampX           // pinned horizontally only (free to fall out)
	BoundaryDespawn          // deactivated once fully outside
)

// Dir is a grid direction.
type Dir uint8

const (
	DirNone Dir = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Vec returns the unit vector for the direction.
func (d Dir) Vec() core.Vec {
	switch d {
	case DirUp:
		return core.Vec{Y: -1}
	case DirDown:
		return core.Vec{Y: 1}
	case DirLeft:
		return core.Vec{X: -1}
	case DirRight:
		return core.Vec{X: 1}
	}
	return core.Vec{}
}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

// Horizontal reports whether the direction moves along the x axis.
func (d Dir) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Dirs lists the four movement directions in a fixed order.
var Dirs = [4]Dir{DirUp, DirLeft, DirDown, DirRight}

// Entity is any simulated object. It is a plain value owned by a Store;
// entities refer to each other only by ID.
type Entity struct {
	ID       ID
	Kind     Kind
	Box      core.Box
	Vel      core.Vec
	Health   int
	Value    int // points awarded, damage dealt, or a game-specific counter
	Owner    ID  // originator, e.g. the ship that fired a projectile
	Motion   Motion
	Boundary Boundary

	// Platformer motion.
	Thrust   float64 // -1, 0 or 1
	Grounded bool

	// Grid and patrol motion.
	Dir     Dir
	NextDir Dir
	Speed   float64

	Variant int // sprite or behaviour variant chosen by the game
	Active  bool
}

// Kill deactivates the entity. It stops taking part in the current tick and
// is removed by the next Compact.
func (e *Entity) Kill() {
	e.Active = false
}
