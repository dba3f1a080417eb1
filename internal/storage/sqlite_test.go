package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/wordbank"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "lexicon.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestImportWords(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	added, err := store.ImportWords(ctx, []string{"Gopher", "channel", "gopher", "123", "select"}, wordbank.TierMedium, "test")
	if err != nil {
		t.Fatalf("ImportWords() failed: %v", err)
	}
	// "gopher" once; "123" normalizes to nothing
	if added != 3 {
		t.Errorf("ImportWords() added %d, expected 3", added)
	}

	// Re-importing is a no-op
	added, err = store.ImportWords(ctx, []string{"channel"}, wordbank.TierMedium, "test")
	if err != nil {
		t.Fatalf("ImportWords() failed: %v", err)
	}
	if added != 0 {
		t.Errorf("re-import added %d, expected 0", added)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, expected 3", n)
	}
}

func TestImportReader(t *testing.T) {
	store := openTestStore(t)
	list := "# animals\nwombat\n\n  quokka  \nnarwhal\n"

	added, err := store.ImportReader(context.Background(), strings.NewReader(list), wordbank.TierHard, "animals.txt")
	if err != nil {
		t.Fatalf("ImportReader() failed: %v", err)
	}
	if added != 3 {
		t.Errorf("ImportReader() added %d, expected 3", added)
	}

	entries, err := store.WordsByTier(context.Background(), wordbank.TierHard)
	if err != nil {
		t.Fatalf("WordsByTier() failed: %v", err)
	}
	if len(entries) != 3 || entries[0].Word != "narwhal" {
		t.Errorf("WordsByTier() = %+v, expected narwhal first", entries)
	}
	if entries[0].Source != "animals.txt" || entries[0].Length != 7 {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestRandomWordsFiltersByLength(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	store.ImportWords(ctx, []string{"ant", "bear", "camel", "donkey", "elephant"}, wordbank.TierEasy, "test")

	tests := []struct {
		minLen, maxLen int
		expected       int
	}{
		{3, 3, 1},
		{4, 6, 3},
		{1, 0, 5},
		{9, 12, 0},
	}
	for _, tt := range tests {
		words, err := store.RandomWords(ctx, 10, tt.minLen, tt.maxLen)
		if err != nil {
			t.Fatalf("RandomWords() failed: %v", err)
		}
		if len(words) != tt.expected {
			t.Errorf("RandomWords(%d..%d) returned %d words, expected %d", tt.minLen, tt.maxLen, len(words), tt.expected)
		}
		for _, w := range words {
			if len(w) < tt.minLen || (tt.maxLen > 0 && len(w) > tt.maxLen) {
				t.Errorf("word %q outside %d..%d", w, tt.minLen, tt.maxLen)
			}
		}
	}

	words, _ := store.RandomWords(ctx, 2, 1, 0)
	if len(words) != 2 {
		t.Errorf("RandomWords(count=2) returned %d", len(words))
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("Total = %d, expected 0", stats.Total)
	}

	store.ImportWords(ctx, []string{"cat", "dog", "horse"}, wordbank.TierEasy, "a")
	store.ImportWords(ctx, []string{"algorithm"}, wordbank.TierExpert, "b")

	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("Total = %d, expected 4", stats.Total)
	}
	if stats.ByTier[wordbank.TierEasy] != 3 || stats.ByTier[wordbank.TierExpert] != 1 {
		t.Errorf("ByTier = %v", stats.ByTier)
	}
	if stats.ByLength[3] != 2 || stats.ByLength[9] != 1 {
		t.Errorf("ByLength = %v", stats.ByLength)
	}
	if stats.LastImport.IsZero() {
		t.Error("LastImport should be set")
	}

	if err := store.ClearWords(ctx); err != nil {
		t.Fatalf("ClearWords() failed: %v", err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("Count() = %d after ClearWords, expected 0", n)
	}
}

func TestLexiconProvider(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := NewLexiconProvider(store, 3, 8)
	if _, err := p.FetchWords(ctx, 5); !errors.Is(err, wordbank.ErrNoWords) {
		t.Errorf("FetchWords() on empty lexicon = %v, expected ErrNoWords", err)
	}

	store.ImportWords(ctx, []string{"lantern", "ox", "compass", "cartography"}, wordbank.TierMedium, "test")
	words, err := p.FetchWords(ctx, 5)
	if err != nil {
		t.Fatalf("FetchWords() failed: %v", err)
	}
	// "ox" is too short and "cartography" too long
	if len(words) != 2 {
		t.Errorf("FetchWords() = %v, expected lantern and compass", words)
	}
}

func TestLexiconFeedsBank(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	store.ImportWords(ctx, []string{"zephyr", "quartz", "sphinx"}, wordbank.TierHard, "test")

	cfg := config.DefaultConfig().WordBank
	b := wordbank.New(cfg, core.NewRand(1), wordbank.WithProvider(NewLexiconProvider(store, cfg.MinLength, 0)))
	defer b.Destroy()
	if !b.Prefetch(ctx) {
		t.Fatal("Prefetch() should start a fetch")
	}

	deadline := time.Now().Add(5 * time.Second)
	for b.Fetching() && time.Now().Before(deadline) {
		b.Update(0, 0)
		time.Sleep(time.Millisecond)
	}
	if b.PoolSize() != 3 {
		t.Errorf("PoolSize() = %d, expected 3", b.PoolSize())
	}
}
