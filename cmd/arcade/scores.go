package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-loop/internal/leaderboard"
	"github.com/vovakirdan/arcade-loop/internal/platform/tui"
	"github.com/vovakirdan/arcade-loop/internal/registry"
)

var (
	flagScoresTop   int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the leaderboard",
	Long: `Print the best scores for a game, or for every game when none is given.
With --interactive the scoreboard opens in the terminal UI.

Examples:
  arcade scores snake
  arcade scores --top 10
  arcade scores runner --board http://localhost:8080
  arcade scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresTop, "top", leaderboard.TopN, "Number of entries per game")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the scoreboard in the terminal UI")
}

func runScores(_ *cobra.Command, args []string) {
	var games []registry.GameInfo
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
			os.Exit(1)
		}
		games = []registry.GameInfo{{ID: args[0], Title: registry.Title(args[0])}}
	} else {
		games = registry.List()
	}

	board := openBoard(true)
	defer board.Close()

	if flagInteractive {
		if err := tui.RunScoreboard(board, games[0].ID); err != nil {
			fail("running scoreboard: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i, g := range games {
		if i > 0 {
			fmt.Println()
		}
		entries, err := board.Top(ctx, g.ID, flagScoresTop)
		if err != nil {
			fail("retrieving scores: %v", err)
		}
		printScores(g.Title, entries)
	}
}

func printScores(title string, entries []leaderboard.Entry) {
	fmt.Printf("High Scores - %s\n", title)
	if len(entries) == 0 {
		fmt.Println("  No scores recorded yet.")
		return
	}
	width := len("Name")
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	fmt.Printf("  %-4s  %-*s  %s\n", "Rank", width, "Name", "Score")
	fmt.Printf("  %-4s  %-*s  %s\n", "----", width, "----", "-----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-*s  %d\n", i+1, width, e.Name, e.Score)
	}
}
