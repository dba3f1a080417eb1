package core

import (
	"math/rand"
	"time"
)

// RuntimeConfig contains settings the front end passes to a session.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// ResolveSeed returns seed, or a time-based seed when seed is 0.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewRand returns a deterministic random source for the given seed.
// Every random decision in a session must draw from the one instance so a
// seed and an input script reproduce the same game.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
