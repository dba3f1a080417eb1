package wordbank

import (
	"fmt"
	"strings"
)

// Tier partitions the built-in list by difficulty.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	TierExpert
)

// String returns the tier name used in configs and the lexicon store.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	case TierExpert:
		return "expert"
	default:
		return "unknown"
	}
}

// ParseTier converts a tier name back to a Tier.
func ParseTier(s string) (Tier, error) {
	for t := TierEasy; t <= TierExpert; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("wordbank: unknown tier %q", s)
}

// TiersForLevel returns the tiers unlocked at a level. Tiers accumulate:
// easy at 1, medium from 2, hard from 3, expert from 4.
func TiersForLevel(level int) []Tier {
	n := min(max(level, 1), int(TierExpert)+1)
	tiers := make([]Tier, 0, n)
	for t := TierEasy; int(t) < n; t++ {
		tiers = append(tiers, t)
	}
	return tiers
}

// Placeholder is returned when no word at all can be found.
const Placeholder = "word"

var builtin = map[Tier][]string{
	TierEasy: {
		"cat", "dog", "run", "jump", "play", "fast", "soft", "big", "small", "red",
		"blue", "green", "walk", "talk", "eat", "sleep", "work", "game", "code", "type",
		"word", "high", "low", "rest", "stop", "start", "open", "close", "read", "write",
		"click", "drag", "sun", "moon", "star", "tree", "leaf", "rock", "sand", "wave",
		"fish", "bird", "frog", "lamp", "door", "key", "map", "pen", "cup", "box",
		"apple", "bread", "chair", "table", "house", "light", "music", "river", "stone", "cloud",
		"garden", "planet", "rocket", "silver", "winter", "summer", "forest", "bridge",
	},
	TierMedium: {
		"computer", "keyboard", "monitor", "program", "function", "variable", "constant",
		"developer", "software", "hardware", "network", "internet", "browser", "server",
		"client", "database", "algorithm", "interface", "library", "framework",
		"compiler", "terminal", "pointer", "channel", "module", "package", "buffer",
		"socket", "thread", "process", "payload", "session", "cluster", "storage",
		"pipeline", "request", "response", "handler", "router", "context", "iterator",
		"capture", "balance", "harvest", "journey", "lantern", "mystery", "shelter",
	},
	TierHard: {
		"javascript", "typescript", "programming", "development", "application", "responsive",
		"architecture", "optimization", "performance", "experience", "accessibility",
		"authentication", "authorization", "implementation", "documentation", "configuration",
		"integration", "deployment", "maintenance", "refactoring",
		"concurrency", "middleware", "scheduler", "serializer", "dependency", "repository",
		"benchmark", "allocation", "migration", "transaction", "replication", "observable",
		"throughput", "encryption", "compression", "validation", "invariant", "goroutine",
	},
	TierExpert: {
		"asynchronous", "serialization", "internationalization", "microservices",
		"infrastructure", "containerization", "virtualization", "orchestration",
		"parallelization", "encapsulation", "polymorphism", "inheritance", "abstraction",
		"functionality", "compatibility", "interoperability", "sustainability",
		"instrumentation", "observability", "deterministic", "synchronization",
		"decentralization", "characterization", "representation", "authentication",
		"multiplication", "transformation", "interpretation", "reconciliation",
	},
}

// BuiltinWords returns a copy of the built-in list for a tier.
func BuiltinWords(t Tier) []string {
	src := builtin[t]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Normalize lowercases a word and drops everything outside a-z.
// Returns "" when nothing remains.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
