package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/calc-climb/internal/platform/tui"
	"github.com/vovakirdan/calc-climb/internal/platform/ws"
)

const dialTimeout = 10 * time.Second

var flagServer string

var onlineCmd = &cobra.Command{
	Use:   "online",
	Short: "Race another player online",
	Long: `Connect to a calcclimb server and play a head-to-head match.

One player creates a room and shares the five-letter code; the other
joins with it. Both get the same level; the first to reach the target
wins. Press M after a result to ask for a rematch.

Examples:
  calcclimb online --server ws://localhost:8080/ws
  calcclimb online --server wss://calcclimb.example.com/ws`,
	Args: cobra.NoArgs,
	Run:  runOnline,
}

func init() {
	onlineCmd.Flags().StringVar(&flagServer, "server", "ws://localhost:8080/ws", "Websocket URL of a calcclimb server")
	onlineCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

// remoteDialer opens a websocket relay per online visit.
func remoteDialer(url string) tui.Dialer {
	return func() (tui.Relay, error) {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		defer cancel()
		c, err := ws.Dial(ctx, url)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func runOnline(_ *cobra.Command, _ []string) {
	gameCfg, err := gameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	relay, err := remoteDialer(flagServer)()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer relay.Close()

	notice, err := tui.RunOnline(relay, runtimeConfig(), gameCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if notice != "" {
		fmt.Fprintln(os.Stderr, notice)
	}
}
