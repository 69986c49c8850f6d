package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second requested from the host
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// HUDRows is the number of rows at the top of the screen reserved for the
// score line. Games lay out their playfield below it.
const HUDRows = 1

// Playfield returns the world-space box available to a game whose world
// units are screen cells.
func (c RuntimeConfig) Playfield() Box {
	return NewBox(0, 0, float64(c.ScreenW), float64(c.ScreenH-HUDRows))
}
