package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/platform/tui"
)

var (
	flagEndless bool
	flagLevel   int
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the current terminal.

Controls:
  letters   - Type into the buffer
  Backspace - Delete the last letter
  Enter     - Clear the buffer / start / next level
  Esc       - Pause
  Ctrl+R    - Restart
  Tab       - Results (after the game ends)
  Ctrl+C    - Quit

Difficulty options:
  easy   - Fewer words on screen, slower travel
  normal - Default pacing
  hard   - More words, faster travel
  fixed  - No progression, stays at the starting level

Examples:
  typefall play
  typefall play --difficulty easy
  typefall play --endless --level 3
  typefall play --provider lexicon --db ./words.db`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Repeat the last level instead of winning")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Starting level")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write engine logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, closer, err := openProvider(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	mode := engine.ModeCampaign
	if flagEndless {
		mode = engine.ModeEndless
	}

	opts := []engine.Option{
		engine.WithSeed(flagSeed),
		engine.WithMode(mode),
		engine.WithStartLevel(flagLevel),
		engine.WithProvider(provider),
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		opts = append(opts, engine.WithLogger(log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
			Prefix:          "engine",
		})))
	}

	game, err := engine.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer game.Destroy()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     game.Seed(),
	}

	if err := tui.Run(game, rc); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	data := game.ScoreData()
	fmt.Printf("Final score: %d  (level %d, %d words, max combo %d)\n",
		data.TotalScore, game.Level(), data.TotalWords, data.MaxCombo)
	return nil
}
