package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typefall/internal/storage"
	"github.com/vovakirdan/typefall/internal/wordbank"
)

var flagTier string

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the local word lexicon",
	Long: `Import word lists into the SQLite lexicon used by the "lexicon" provider.

Examples:
  typefall words import ./animals.txt --tier medium
  typefall words stats
  typefall play --provider lexicon`,
}

var wordsImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import word lists (one word per line, # comments)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWordsImport,
}

var wordsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lexicon statistics",
	RunE:  runWordsStats,
}

func init() {
	wordsImportCmd.Flags().StringVar(&flagTier, "tier", "medium", "Tier for imported words: easy, medium, hard, expert")
	wordsCmd.AddCommand(wordsImportCmd)
	wordsCmd.AddCommand(wordsStatsCmd)
}

func openLexicon() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.WordBank.LexiconPath)
}

func runWordsImport(cmd *cobra.Command, args []string) error {
	tier, err := wordbank.ParseTier(flagTier)
	if err != nil {
		return err
	}

	store, err := openLexicon()
	if err != nil {
		return err
	}
	defer store.Close()

	total := 0
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", path, err)
		}
		added, err := store.ImportReader(cmd.Context(), f, tier, filepath.Base(path))
		f.Close()
		if err != nil {
			return err
		}
		fmt.Printf("  %-30s  +%d\n", path, added)
		total += added
	}

	fmt.Println()
	fmt.Printf("Imported %d new %s words.\n", total, tier)
	return nil
}

func runWordsStats(_ *cobra.Command, _ []string) error {
	store, err := openLexicon()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	if stats.Total == 0 {
		fmt.Println("The lexicon is empty.")
		fmt.Println()
		fmt.Println("Run 'typefall words import <file>' to add words.")
		return nil
	}

	fmt.Printf("Words: %d  (last import %s)\n\n", stats.Total, stats.LastImport.Format("2006-01-02 15:04"))

	fmt.Printf("  %-8s  %s\n", "Tier", "Count")
	fmt.Printf("  %-8s  %s\n", "----", "-----")
	for t := wordbank.TierEasy; t <= wordbank.TierExpert; t++ {
		fmt.Printf("  %-8s  %d\n", t, stats.ByTier[t])
	}

	lengths := make([]int, 0, len(stats.ByLength))
	for l := range stats.ByLength {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	fmt.Println()
	fmt.Printf("  %-8s  %s\n", "Length", "Count")
	fmt.Printf("  %-8s  %s\n", "------", "-----")
	for _, l := range lengths {
		fmt.Printf("  %-8d  %d\n", l, stats.ByLength[l])
	}
	return nil
}
