// typefall is a terminal typing game: words drift toward the center of the
// screen and are destroyed by typing them.
//
// Usage:
//
//	typefall play             - Play in the terminal
//	typefall serve            - Start SSH server for remote play
//	typefall web              - Serve the websocket bridge for browsers
//	typefall levels           - Show per-level settings
//	typefall providers        - List word providers
//	typefall words import     - Import a word list into the lexicon
//	typefall words stats      - Show lexicon statistics
//	typefall replay <script>  - Run a scripted game deterministically
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--provider <id>       - Word provider (builtin, http, lexicon)
//	--db <path>           - Lexicon database path
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/registry"
	"github.com/vovakirdan/typefall/internal/wordbank"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagProvider   string
	flagDBPath     string
	flagEnvFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "typefall",
	Short: "Typefall - type the words before they land",
	Long: `Typefall is a real-time typing game for the terminal. Words drift from
the edges toward the center; type one to destroy it before it arrives.
Type the name of a collected power-up (freeze, slow, bomb, shield) to use it.

Examples:
  typefall play
  typefall play --difficulty hard --endless
  typefall serve --ssh :2222
  typefall web --addr :8800
  typefall words import ./animals.txt --tier medium
  typefall replay ./run.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "Word provider: builtin, http, lexicon")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to lexicon database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", "", "Path to .env file (default ./.env if present)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadConfig resolves the configuration from file, environment, preset and
// flags, in that order, and validates the result.
func loadConfig() (config.Config, error) {
	var envFiles []string
	if flagEnvFile != "" {
		envFiles = append(envFiles, flagEnvFile)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagProvider != "" {
		cfg.WordBank.Provider = flagProvider
	}
	if flagDBPath != "" {
		cfg.WordBank.LexiconPath = flagDBPath
	}
	return cfg, config.Validate(cfg)
}

// openProvider builds the configured word provider.
func openProvider(cfg config.Config) (wordbank.Provider, io.Closer, error) {
	return registry.Create(cfg.WordBank.Provider, cfg.WordBank)
}
