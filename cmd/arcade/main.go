// arcade runs retro arcade games in the terminal, over SSH and behind a
// small leaderboard web service.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Pick games interactively
//	arcade scores [game]     - Show the leaderboard
//	arcade serve             - Run the leaderboard service and SSH arcade
//	arcade sim <game>        - Run a game headless with an autopilot
//
// Global flags:
//
//	--fps <rate>        - Tick rate (default: 60)
//	--seed <value>      - RNG seed for reproducible gameplay
//	--board <spec>      - Leaderboard: file:DIR, sqlite:PATH or http(s)://URL
//	--name <player>     - Name scores are saved under
//	--config-dir <dir>  - Directory searched first for game YAML configs
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/leaderboard"
	"github.com/vovakirdan/arcade-loop/internal/platform/tui"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-loop/internal/games/breakout"
	_ "github.com/vovakirdan/arcade-loop/internal/games/maze"
	_ "github.com/vovakirdan/arcade-loop/internal/games/platformer"
	_ "github.com/vovakirdan/arcade-loop/internal/games/runner"
	_ "github.com/vovakirdan/arcade-loop/internal/games/shooter"
	_ "github.com/vovakirdan/arcade-loop/internal/games/snake"
)

const defaultBoard = "file:~/.arcade/board"

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagBoard     string
	flagName      string
	flagConfigDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade - retro games in your terminal",
	Long: `Arcade runs six classic games in the terminal on one deterministic
engine: shooter, maze, platformer, breakout, snake and runner.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker with scores
  scores   - View the leaderboard
  serve    - Run the leaderboard web service and the SSH arcade
  sim      - Run a game headless with an autopilot

Examples:
  arcade list
  arcade play snake
  arcade menu --name ann
  arcade scores runner --board sqlite:~/.arcade/board.db
  arcade serve --http :8080 --ssh :23234
  arcade sim shooter --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", tui.DefaultTickRate, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagBoard, "board", defaultBoard, "Leaderboard: file:DIR, sqlite:PATH or http(s)://URL")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", defaultName(), "Player name for saved scores (empty disables saving)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Directory searched first for <game>.yaml configs")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

func defaultName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// openBoard opens the --board leaderboard. Playing works without one, so
// callers that can do without it get a warning instead of an exit.
func openBoard(required bool) leaderboard.Store {
	board, err := leaderboard.Open(flagBoard)
	if err != nil {
		if required {
			fail("cannot open leaderboard %s: %v", flagBoard, err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard %s: %v\n", flagBoard, err)
		return nil
	}
	return board
}

// hostOptions builds the terminal host options from the global flags.
func hostOptions(board leaderboard.Store, logger *log.Logger) tui.Options {
	return tui.Options{
		Board:    board,
		Config:   config.NewSource(flagConfigDir),
		Player:   flagName,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Logger:   logger,
	}
}

// fileLogger logs to path, or nowhere when path is empty. The alternate
// screen owns the terminal while a game runs.
func fileLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           log.DebugLevel,
	}), f, nil
}
