package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Run a scripted game deterministically",
	Long: `Replay a YAML script of timed keystrokes against a seeded game and
print the outcome. Replays always use the built-in word lists.

Script format:
  seed: 42
  mode: campaign        # or endless
  duration: 60s
  tick: 16ms
  keys:
    - at: 1.2s
      type: cat
    - at: 2s
      key: backspace

Examples:
  typefall replay ./run.yaml
  typefall replay ./run.yaml --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open script: %w", err)
	}
	script, err := replay.Load(f)
	f.Close()
	if err != nil {
		return err
	}

	res, err := replay.Run(cfg, script)
	if err != nil {
		return err
	}

	fmt.Printf("State:  %s after %d frames\n", res.Final.State, res.Frames)
	fmt.Printf("Level:  %d  (%d/%d words)\n", res.Final.Level, res.Final.Cleared, res.Final.Required)
	fmt.Printf("Score:  %d  (%d words, max combo %d, %d misses)\n",
		res.Score.TotalScore, res.Score.TotalWords, res.Score.MaxCombo, res.Score.Misses)

	kinds := make([]engine.EventKind, 0, len(res.Events))
	for k := range res.Events {
		if k != engine.EventWordsMoved {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Println()
	for _, k := range kinds {
		fmt.Printf("  %-18s  %d\n", k, res.Events[k])
	}
	return nil
}
