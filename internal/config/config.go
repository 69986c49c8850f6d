// Package config provides YAML-based game tuning, difficulty presets and a
// hot-reloading config cache for the arcade games.
package config

// ShooterConfig tunes the space shooter.
type ShooterConfig struct {
	Player     ShooterPlayer    `yaml:"player"`
	Weapon     ShooterWeapon    `yaml:"weapon"`
	Enemies    ShooterEnemies   `yaml:"enemies"`
	Stars      ShooterStars     `yaml:"stars"`
	Boss       ShooterBoss      `yaml:"boss"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShooterPlayer defines the player ship.
type ShooterPlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // cells per second
	Health int     `yaml:"health"`
}

// ShooterWeapon defines the player's gun.
type ShooterWeapon struct {
	AutoFire        bool    `yaml:"auto_fire"`
	Interval        float64 `yaml:"interval"` // seconds between shots
	ProjectileSpeed float64 `yaml:"projectile_speed"`
}

// ShooterEnemies defines the falling enemies.
type ShooterEnemies struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpawnChance float64 `yaml:"spawn_chance"` // per 1/60 s
	ScoreFactor float64 `yaml:"score_factor"` // added spawn chance per point
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	Damage      int     `yaml:"damage"`
	Points      int     `yaml:"points"`
}

// ShooterStars defines the scrolling background.
type ShooterStars struct {
	Count    int     `yaml:"count"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// ShooterBoss defines the boss wave.
type ShooterBoss struct {
	Enabled        bool    `yaml:"enabled"`
	Score          int     `yaml:"score"` // score that summons the boss
	Health         int     `yaml:"health"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	MinionInterval float64 `yaml:"minion_interval"`
	MinionSpeed    float64 `yaml:"minion_speed"`
	MinionDamage   int     `yaml:"minion_damage"`
	Points         int     `yaml:"points"`
}

// MazeConfig tunes the maze chase.
type MazeConfig struct {
	Layout  []string     `yaml:"layout"`
	Player  MazePlayer   `yaml:"player"`
	Ghosts  MazeGhosts   `yaml:"ghosts"`
	Scoring MazeScoring  `yaml:"scoring"`
	Power   MazePowerUp  `yaml:"power"`
}

// MazePlayer defines the player.
type MazePlayer struct {
	Speed float64 `yaml:"speed"` // tiles per second
	Lives int     `yaml:"lives"`
}

// MazeGhosts defines the chasers.
type MazeGhosts struct {
	Speed           float64 `yaml:"speed"`
	FrightenedSpeed float64 `yaml:"frightened_speed"`
	TurnChance      float64 `yaml:"turn_chance"` // per 1/60 s at an open junction
}

// MazeScoring defines point values.
type MazeScoring struct {
	Pellet int `yaml:"pellet"`
	Power  int `yaml:"power"`
	Ghost  int `yaml:"ghost"`
}

// MazePowerUp defines the power pellet effect.
type MazePowerUp struct {
	Duration float64 `yaml:"duration"` // seconds ghosts stay frightened
}

// PlatformerConfig tunes the side-scrolling platformer.
type PlatformerConfig struct {
	Physics      PlatformerPhysics `yaml:"physics"`
	EnemySpeed   float64           `yaml:"enemy_speed"`
	Lives        int               `yaml:"lives"`
	StompPoints  int               `yaml:"stomp_points"`
	FlagPoints   int               `yaml:"flag_points"`
	RespawnDelay float64           `yaml:"respawn_delay"`
	LevelDelay   float64           `yaml:"level_delay"`
	Levels       [][]string        `yaml:"levels"`
}

// PlatformerPhysics holds movement constants in tiles and seconds.
type PlatformerPhysics struct {
	Gravity   float64 `yaml:"gravity"`
	MaxFall   float64 `yaml:"max_fall"`
	Accel     float64 `yaml:"accel"`
	Friction  float64 `yaml:"friction"`
	MaxSpeed  float64 `yaml:"max_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Bounce    float64 `yaml:"bounce"` // upward speed after a stomp
}

// BreakoutConfig tunes breakout.
type BreakoutConfig struct {
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Bricks     BreakoutBricks   `yaml:"bricks"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutPhysics defines ball speeds in cells per second.
type BreakoutPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	SpeedStep    float64 `yaml:"speed_step"` // added on every paddle hit
	MaxBallSpeed float64 `yaml:"max_ball_speed"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
}

// BreakoutPaddle defines the paddle.
type BreakoutPaddle struct {
	Width float64 `yaml:"width"`
}

// BreakoutBricks defines the wall.
type BreakoutBricks struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	Top     int `yaml:"top"`
	Points  int `yaml:"points"`
}

// SnakeConfig tunes snake.
type SnakeConfig struct {
	StepInterval float64 `yaml:"step_interval"` // seconds per grid step
	MinInterval  float64 `yaml:"min_interval"`
	SpeedUpEvery int     `yaml:"speed_up_every"` // food eaten per speed step
	SpeedUpBy    float64 `yaml:"speed_up_by"`
	StartLength  int     `yaml:"start_length"`
	Points       int     `yaml:"points"`
}

// RunnerConfig tunes the endless runner.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Target     int              `yaml:"target"` // obstacles to clear for a win, 0 for endless
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines jump and scroll speeds.
type RunnerPhysics struct {
	Gravity   float64 `yaml:"gravity"`
	JumpSpeed float64 `yaml:"jump_speed"`
	BaseSpeed float64 `yaml:"base_speed"`
	SpeedStep float64 `yaml:"speed_step"` // added every speed_every points
	SpeedEvery int    `yaml:"speed_every"`
}

// RunnerObstacles defines obstacle spawning.
type RunnerObstacles struct {
	Interval  float64 `yaml:"interval"` // seconds between spawn checks
	Chance    float64 `yaml:"chance"`
	MinHeight int     `yaml:"min_height"`
	MaxHeight int     `yaml:"max_height"`
	Width     float64 `yaml:"width"`
	Lanes     int     `yaml:"lanes"` // 1 keeps everything on the ground; more add raised obstacles to run under
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // fraction removed from spawn intervals at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts a difficulty section for a named preset. An empty
// preset leaves the config as loaded.
func ApplyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
