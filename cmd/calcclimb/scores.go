package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/calc-climb/internal/platform/tui"
	"github.com/vovakirdan/calc-climb/internal/registry"
	"github.com/vovakirdan/calc-climb/internal/storage"
)

var (
	flagScoresMatches bool
	flagScoresBrowse  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded runs",
	Long: `Display the best solo runs for a mode (default: calc), or the most
recent online matches with --matches. --browse opens the interactive
scoreboard instead.

Examples:
  calcclimb scores
  calcclimb scores calc_practice
  calcclimb scores --matches
  calcclimb scores --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresMatches, "matches", false, "Show recent online matches")
	scoresCmd.Flags().BoolVar(&flagScoresBrowse, "browse", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) {
	modeID := "calc"
	if len(args) == 1 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'calcclimb list' to see available modes.")
		os.Exit(1)
	}

	if flagDBPath == "" {
		fmt.Fprintln(os.Stderr, "Error: score storage is disabled (--db is empty)")
		os.Exit(1)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresBrowse:
		cfg := runtimeConfig()
		err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	case flagScoresMatches:
		err = printMatches(store)
	default:
		err = printRuns(store, modeID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printRuns(store *storage.Store, modeID string) error {
	runs, err := store.TopScores(modeID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n", modeID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Clear a stage in 'calcclimb play' to get on the board!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-4s  %-10s  %s\n", "Rank", "Stages", "Tier", "Seed", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-10s  %s\n", "----", "------", "----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-4d  %-10d  %s\n",
			i+1, r.Stages, r.Tier, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestStages(modeID); err == nil {
		fmt.Printf("Best: %d stages\n", best)
	}
	return nil
}

func printMatches(store *storage.Store) error {
	matches, err := store.RecentOnlineMatches(20)
	if err != nil {
		return err
	}

	fmt.Println("Recent online matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-5s  %-10s  %-8s  %s\n", "Date", "Room", "Level", "Seed", "Reason", "Winner")
	fmt.Printf("  %-16s  %-5s  %-5s  %-10s  %-8s  %s\n", "----", "----", "-----", "----", "------", "------")
	for _, m := range matches {
		fmt.Printf("  %-16s  %-5s  %-5d  %-10d  %-8s  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.RoomCode, m.LevelIndex+1, m.Seed, m.Reason, m.WinnerSession)
	}
	return nil
}
