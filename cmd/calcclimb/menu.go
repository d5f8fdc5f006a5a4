package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/calc-climb/internal/platform/tui"
)

var flagMenuServer string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select. Leaving a game
returns to the menu. Online play appears when --server is given.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  calcclimb menu
  calcclimb menu --fps 30
  calcclimb menu --server ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagMenuServer, "server", "", "Websocket URL of a calcclimb server for online play")
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg, err := gameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var dialer tui.Dialer
	if flagMenuServer != "" {
		dialer = remoteDialer(flagMenuServer)
	}

	store := openStore(flagDBPath)
	runErr := tui.RunSession(store, runtimeConfig(), gameCfg, dialer)
	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
