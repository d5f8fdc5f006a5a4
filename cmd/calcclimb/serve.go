package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/calc-climb/internal/multiplayer"
	"github.com/vovakirdan/calc-climb/internal/platform/tui"
	"github.com/vovakirdan/calc-climb/internal/platform/ws"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagServeDBPath string
	flagIdleTimeout int
	flagVerbose     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host SSH play and the online relay",
	Long: `Start the calcclimb servers. Both share one room coordinator, so an SSH
player and a websocket client can meet in the same room.

  --ssh   SSH server: every connection gets the full menu
  --ws    HTTP server: /ws relay, /rooms counters, /health heartbeat

Pass an empty address to disable either server. Match results and solo
runs are recorded only when --db is set.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.calcclimb/host_key

Examples:
  calcclimb serve                           # SSH on :23234, websocket on :8080
  calcclimb serve --ssh "" --ws :9000       # relay only
  calcclimb serve --db ~/.calcclimb/server.db

Players can connect with:
  ssh localhost -p 23234
  calcclimb online --server ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", ":8080", "Websocket server address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeDBPath, "db", "", "Path to results database (empty disables)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every HTTP request and relayed event")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagWSAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: both --ssh and --ws are disabled")
		os.Exit(1)
	}

	gameCfg, err := gameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	newLogger := func(prefix string) *log.Logger {
		return log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          prefix,
			Level:           level,
		})
	}

	store := openStore(flagServeDBPath)
	defer closeStore(store)

	coordCfg := multiplayer.DefaultCoordinatorConfig()
	coordCfg.Levels = gameCfg.Network.OnlineLevels
	coord := multiplayer.NewCoordinator(coordCfg, nil, newLogger("coordinator"))
	if store != nil {
		coord.SetResultSaver(store)
	}
	coord.Start()
	defer coord.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.TickRate = flagFPS

		sshServer, err := tui.NewSSHServer(sshCfg, gameCfg, store, coord)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating SSH server: %v\n", err)
			os.Exit(1)
		}
		g.Go(func() error { return sshServer.ListenAndServe(ctx) })
		fmt.Printf("SSH: ssh localhost -p %s\n", portOf(flagSSHAddr))
	}

	if flagWSAddr != "" {
		wsServer := ws.NewServer(coord, newLogger("calcclimb-ws"))
		g.Go(func() error { return wsServer.ListenAndServe(ctx, flagWSAddr) })
		fmt.Printf("Relay: calcclimb online --server ws://localhost:%s/ws\n", portOf(flagWSAddr))
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port of a host:port listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
