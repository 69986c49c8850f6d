package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-loop/internal/config"
	"github.com/vovakirdan/arcade-loop/internal/core"
	"github.com/vovakirdan/arcade-loop/internal/platform/tui"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

var (
	flagDifficulty string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD - Move (the mouse steers shooter and breakout)
  Space       - Fire / jump
  Enter       - Start
  P           - Pause
  R           - Restart (after a win or loss)
  B/Esc       - Leave (when paused or over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play snake
  arcade play runner --difficulty hard
  arcade play shooter --config-dir ./configs --log arcade.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write engine logs to this file")
}

func parseDifficulty(s string) (config.DifficultyPreset, error) {
	switch p := config.DifficultyPreset(s); p {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	difficulty, err := parseDifficulty(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}

	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < rt.ScreenW || h < rt.ScreenH+1) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the game needs %dx%d\n", w, h, rt.ScreenW, rt.ScreenH+1)
	}

	logger, closer, err := fileLogger(flagLogFile)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	board := openBoard(false)
	opts := hostOptions(board, logger)
	opts.Difficulty = difficulty

	runErr := tui.RunGame(gameID, opts)
	if board != nil {
		board.Close()
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
