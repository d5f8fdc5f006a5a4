package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/calc-climb/internal/platform/tui"
	"github.com/vovakirdan/calc-climb/internal/registry"
)

var flagPractice bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a solo run",
	Long: `Start a solo run in the current terminal.

Campaign mode raises the tier after every cleared stage; practice mode
keeps the tier and only changes the seed.

Controls:
  Arrows/WASD  - Move and climb
  Space/Up     - Jump
  R            - Restart the stage (same level)
  N            - Next stage after a clear
  P            - Pause
  Esc/B        - Leave
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a text screenshot

Difficulty options:
  easy   - Start at tier 0, progresses
  normal - Start at tier 3, progresses
  hard   - Start at tier 6, progresses
  fixed  - No progression, stays at the configured tier

Examples:
  calcclimb play
  calcclimb play --practice --tier 5
  calcclimb play --difficulty hard
  calcclimb play --seed 42 --difficulty fixed
  calcclimb play --config ./my-calcclimb.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagTier, "tier", -1, "Start tier (overrides the difficulty preset)")
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Practice mode: the tier never changes")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := gameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	modeID := "calc"
	if flagPractice {
		modeID = "calc_practice"
	}
	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(flagDBPath)
	runErr := tui.Run(game, store, runtimeConfig(), gameCfg.Input.HoldTicks)
	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
