package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-loop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to pick a game, left/right to pick a difficulty and
Enter to play. Tab opens the scoreboard. Leaving a game returns to the menu.

Examples:
  arcade menu
  arcade menu --fps 30 --name ann
  arcade menu --board sqlite:~/.arcade/board.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagLogFile, "log", "", "Write engine logs to this file")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closer, err := fileLogger(flagLogFile)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	board := openBoard(false)
	runErr := tui.RunSession(hostOptions(board, logger))
	if board != nil {
		board.Close()
	}
	if runErr != nil {
		fail("running menu: %v", runErr)
	}
}
