package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeMode   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the typefall SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. All sessions share the server's
configuration and word provider.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.typefall/host_key

Examples:
  typefall serve                           # Listen on :23234
  typefall serve --ssh :2222               # Listen on port 2222
  typefall serve --mode endless            # Endless games for everyone

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeMode, "mode", "campaign", "Game mode: campaign or endless")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := engine.ParseMode(flagServeMode)
	if err != nil {
		return err
	}

	provider, closer, err := openProvider(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	scfg := tui.DefaultSSHServerConfig()
	scfg.Address = flagSSHAddr
	scfg.HostKeyPath = flagHostKey
	scfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	scfg.Game = cfg
	scfg.Provider = provider
	scfg.Mode = mode
	scfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(scfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting typefall SSH server on %s\n", scfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
