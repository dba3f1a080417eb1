package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/difficulty"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show per-level settings",
	Long: `Shows the difficulty budget of every level for the resolved configuration.

Examples:
  typefall levels
  typefall levels --difficulty hard
  typefall levels --config ./my-typefall.yaml`,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mgr := difficulty.NewManager(cfg.Difficulty, core.NewRand(1))

	fmt.Printf("  %-5s  %-6s  %-6s  %-5s  %-6s  %s\n", "Level", "Words", "Budget", "Speed", "Length", "Effects")
	fmt.Printf("  %-5s  %-6s  %-6s  %-5s  %-6s  %s\n", "-----", "-----", "------", "-----", "------", "-------")
	for l := 1; l <= mgr.MaxLevel(); l++ {
		s := mgr.LevelSettings(l)
		fmt.Printf("  %-5d  %-6d  %-6d  %-5d  %-6d  %d\n",
			l, cfg.Game.WordsToClear(l), s.BaseWordScore, s.MaxSpeed, s.MaxLength, s.MaxModifierScore)
	}

	if !cfg.Game.Progression {
		fmt.Println()
		fmt.Println("Progression is off: the game stays at its starting level.")
	}
	return nil
}
