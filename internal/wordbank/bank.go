// Package wordbank supplies level-appropriate words without repeats.
//
// The bank always has its built-in tiered list to fall back on. An optional
// Provider can enrich the pool: fetches run on a background goroutine and
// their results are merged on the next Update, so a slow or failing source
// never blocks a tick.
package wordbank

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/difficulty"
	"github.com/vovakirdan/typefall/internal/powerup"
)

// maxWordLength bounds merged provider words.
const maxWordLength = 20

type fetchResult struct {
	words []string
	err   error
}

// Bank holds the candidate words for the current level.
type Bank struct {
	cfg    config.WordBankConfig
	rng    *rand.Rand
	logger *log.Logger

	level      int
	pool       []string // provider words, in arrival order
	inPool     map[string]bool
	candidates []string
	used       map[string]bool

	provider Provider
	pending  chan fetchResult
	fetching bool
	cancel   context.CancelFunc
}

// Option configures a Bank.
type Option func(*Bank)

// WithProvider attaches an asynchronous word source.
func WithProvider(p Provider) Option {
	return func(b *Bank) { b.provider = p }
}

// WithLogger sets the logger used for provider failures and exhaustion warnings.
func WithLogger(l *log.Logger) Option {
	return func(b *Bank) { b.logger = l }
}

// New creates a bank at level 1 with candidates already filled.
func New(cfg config.WordBankConfig, rng *rand.Rand, opts ...Option) *Bank {
	b := &Bank{
		cfg:     cfg,
		rng:     rng,
		level:   1,
		inPool:  make(map[string]bool),
		used:    make(map[string]bool),
		pending: make(chan fetchResult, 1),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}
	b.RefillForLevel(1, cfg.RefillCount)
	return b
}

// Level returns the level the bank is serving.
func (b *Bank) Level() int {
	return b.level
}

// StartLevel switches to a level, forgets the used set and refills.
func (b *Bank) StartLevel(level int) {
	b.level = max(level, 1)
	clear(b.used)
	b.RefillForLevel(b.level, b.cfg.RefillCount)
}

// RefillForLevel rebuilds the candidate list with up to count unused words
// whose length fits the level.
func (b *Bank) RefillForLevel(level int, count int) {
	eligible := b.eligible(level, b.cfg.MinLength, b.cfg.MaxLengthForLevel(level))
	b.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > count {
		eligible = eligible[:count]
	}
	b.candidates = eligible
}

// Candidates returns how many unused candidates remain.
func (b *Bank) Candidates() int {
	return len(b.candidates)
}

// TakeWord returns an unused word with length in [d.Length, d.Length+2]
// and marks it used. It refills when fewer than LowWater candidates match,
// widens the search when none do, and as a last resort returns Placeholder.
// It never fails.
func (b *Bank) TakeWord(d difficulty.WordDifficulty) string {
	maxLen := b.cfg.MaxLengthForLevel(b.level)
	lo := min(max(d.Length, b.cfg.MinLength), maxLen)
	hi := min(d.Length+2, maxLen)
	hi = max(hi, lo)

	matching := b.matching(lo, hi)
	if len(matching) < b.cfg.LowWater {
		b.RefillForLevel(b.level, b.cfg.RefillCount)
		matching = b.matching(lo, hi)
	}
	if len(matching) > 0 {
		idx := matching[b.rng.Intn(len(matching))]
		word := b.candidates[idx]
		b.candidates = append(b.candidates[:idx], b.candidates[idx+1:]...)
		b.MarkUsed(word)
		return word
	}

	if word, ok := b.nearest(d.Length); ok {
		b.MarkUsed(word)
		return word
	}

	for t := TierEasy; t <= TierExpert; t++ {
		for _, w := range builtin[t] {
			if !b.used[w] {
				b.MarkUsed(w)
				return w
			}
		}
	}

	b.logger.Warn("word bank exhausted, using placeholder", "level", b.level, "length", d.Length)
	return Placeholder
}

// MarkUsed prevents a word from being offered again this level.
func (b *Bank) MarkUsed(word string) {
	b.used[word] = true
	for i, c := range b.candidates {
		if c == word {
			b.candidates = append(b.candidates[:i], b.candidates[i+1:]...)
			break
		}
	}
}

// IsUsed reports whether a word was already handed out this level.
func (b *Bank) IsUsed(word string) bool {
	return b.used[word]
}

// Prefetch starts a background fetch from the attached provider unless one
// is already running. Returns false when nothing was started.
func (b *Bank) Prefetch(ctx context.Context) bool {
	if b.provider == nil || b.fetching || b.cfg.PrefetchCount <= 0 {
		return false
	}
	b.fetching = true

	fctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	b.cancel = cancel
	provider, count, out := b.provider, b.cfg.PrefetchCount, b.pending

	go func() {
		defer cancel()
		words, err := provider.FetchWords(fctx, count)
		out <- fetchResult{words: words, err: err}
	}()
	return true
}

// Fetching reports whether a background fetch is in flight.
func (b *Bank) Fetching() bool {
	return b.fetching
}

// Update merges a finished fetch, if any, without blocking.
func (b *Bank) Update(now, delta time.Duration) {
	select {
	case res := <-b.pending:
		b.fetching = false
		b.cancel = nil
		if res.err != nil {
			b.logger.Warn("word provider failed, keeping built-in words", "error", res.err)
			return
		}
		added := b.Merge(res.words)
		b.logger.Debug("merged provider words", "received", len(res.words), "added", added)
	default:
	}
}

// Merge normalizes words and adds new ones to the pool. Power-up names are
// skipped so typing one always means activation. Returns how many were added.
func (b *Bank) Merge(words []string) int {
	added := 0
	for _, w := range words {
		w = Normalize(w)
		if len(w) < b.cfg.MinLength || len(w) > maxWordLength || b.inPool[w] {
			continue
		}
		if _, reserved := powerup.ParseKind(w); reserved {
			continue
		}
		b.inPool[w] = true
		b.pool = append(b.pool, w)
		added++
	}
	return added
}

// PoolSize returns how many provider words have been merged.
func (b *Bank) PoolSize() int {
	return len(b.pool)
}

// Destroy cancels an in-flight fetch.
func (b *Bank) Destroy() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// eligible lists unused words from the pool and the tiers unlocked at
// level with length in [lo, hi], without duplicates.
func (b *Bank) eligible(level, lo, hi int) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(w string) {
		if seen[w] || b.used[w] || len(w) < lo || len(w) > hi {
			return
		}
		seen[w] = true
		out = append(out, w)
	}
	for _, w := range b.pool {
		add(w)
	}
	for _, t := range TiersForLevel(level) {
		for _, w := range builtin[t] {
			add(w)
		}
	}
	return out
}

func (b *Bank) matching(lo, hi int) []int {
	var idx []int
	for i, w := range b.candidates {
		if len(w) >= lo && len(w) <= hi && !b.used[w] {
			idx = append(idx, i)
		}
	}
	return idx
}

// nearest picks an unused level word whose length is closest to length.
func (b *Bank) nearest(length int) (string, bool) {
	all := b.eligible(b.level, b.cfg.MinLength, maxWordLength)
	if len(all) == 0 {
		return "", false
	}
	best := -1
	var picks []string
	for _, w := range all {
		dist := abs(len(w) - length)
		switch {
		case best < 0 || dist < best:
			best = dist
			picks = append(picks[:0], w)
		case dist == best:
			picks = append(picks, w)
		}
	}
	return picks[b.rng.Intn(len(picks))], true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
