package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/platform/web"
)

var (
	flagWebAddr  string
	flagWebMode  string
	flagWebDebug bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser bridge",
	Long: `Start an HTTP server exposing the game over a websocket.

Routes:
  GET /api/v1/health    - Liveness and open session count
  GET /api/v1/levels    - Per-level settings as JSON
  GET /api/v1/ws/play   - Websocket, one game per connection

Client messages:
  {"e":"start"}  {"e":"key","k":"a"}  {"e":"advance"}  {"e":"restart"}

Examples:
  typefall web
  typefall web --addr :9000 --fps 30 --debug`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8800", "HTTP listen address")
	webCmd.Flags().StringVar(&flagWebMode, "mode", "campaign", "Game mode: campaign or endless")
	webCmd.Flags().BoolVar(&flagWebDebug, "debug", false, "Log every request")
}

func runWeb(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := engine.ParseMode(flagWebMode)
	if err != nil {
		return err
	}

	provider, closer, err := openProvider(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	level := slog.LevelInfo
	if flagWebDebug {
		level = slog.LevelDebug
	}
	logger := web.NewLogger(os.Stdout, level)
	slog.SetDefault(logger)

	wcfg := web.DefaultConfig()
	wcfg.Addr = flagWebAddr
	wcfg.Game = cfg
	wcfg.Provider = provider
	wcfg.Mode = mode
	wcfg.Seed = flagSeed
	wcfg.TickRate = flagFPS
	wcfg.Logger = logger

	server, err := web.NewServer(wcfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Listen(ctx)
}
