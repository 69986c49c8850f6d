package config

import "math"

// DifficultyManager calculates dynamic game parameters from score and
// elapsed play time.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(score int, seconds float64) float64 {
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = seconds / maxAt
	default:
		return d.cfg.InitialLevel
	}

	progress = clampF(progress, 0, 1)
	return d.cfg.InitialLevel + progress*(1-d.cfg.InitialLevel)
}

// Speed scales a base speed from base up to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(base float64, score int, seconds float64) float64 {
	return base * (1 + d.Level(score, seconds)*d.cfg.Scaling.SpeedMultiplier)
}

// Interval shortens a base interval by up to interval_reduction of itself,
// never below a quarter of base.
func (d *DifficultyManager) Interval(base float64, score int, seconds float64) float64 {
	cut := d.Level(score, seconds) * d.cfg.Scaling.IntervalReduction
	return math.Max(base*(1-cut), base/4)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
