// calcclimb is an arcade puzzle-platformer for the terminal: climb the
// level, collect numbers and operators, and make the calculator hit the
// target.
//
// Usage:
//
//	calcclimb play            - Play the campaign (or --practice)
//	calcclimb menu            - Menu with solo modes, online play and scores
//	calcclimb online          - Play online against a calcclimb server
//	calcclimb serve           - Host SSH sessions and the websocket relay
//	calcclimb gen             - Print a generated level and its solution
//	calcclimb list            - List game modes
//	calcclimb scores          - Show recorded runs and matches
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set level seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.calcclimb/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the game modes.
	_ "github.com/vovakirdan/calc-climb/internal/games/calcclimb"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "calcclimb",
	Short: "Calc Climb - an arithmetic puzzle-platformer in your terminal",
	Long: `Calc Climb is a puzzle-platformer. Each level hides a target number;
collect number and operator tiles in alternation until the calculator
shows it.

Available commands:
  play     - Play the solo campaign or practice mode
  menu     - Interactive menu
  online   - Race another player to the target
  serve    - Host SSH play and the online relay
  gen      - Print a level for a tier and seed
  list     - Show the game modes
  scores   - View recorded runs

Examples:
  calcclimb play
  calcclimb play --difficulty hard
  calcclimb online --server ws://localhost:8080/ws
  calcclimb serve --ssh :23234 --ws :8080
  calcclimb gen --tier 4 --seed 1234 --solve`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Level seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.calcclimb/scores.db", "Path to scores database (empty disables)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(onlineCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(scoresCmd)
}
