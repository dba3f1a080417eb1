// Package difficulty maps a level to a point budget and partitions that
// budget into the speed, length and visual modifiers of each spawned word.
package difficulty

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
)

// Settings are the scaled limits for one level.
type Settings struct {
	BaseWordScore    int
	MaxSpeed         int
	MaxLength        int
	MaxModifierScore int
}

// Modifiers are the points spent on visual impairments.
type Modifiers struct {
	Blinking int
	Shaking  int
	Flipped  int
}

// Total returns the sum of all modifier points.
func (m Modifiers) Total() int {
	return m.Blinking + m.Shaking + m.Flipped
}

// WordDifficulty is the budget allocation for a single word.
// Speed + Length + Modifiers.Total() always equals TotalScore.
type WordDifficulty struct {
	TotalScore int
	Speed      int
	Length     int
	Modifiers  Modifiers
}

// Sum returns the points actually allocated across all categories.
func (d WordDifficulty) Sum() int {
	return d.Speed + d.Length + d.Modifiers.Total()
}

// Manager tracks the current level and generates word difficulties for it.
type Manager struct {
	cfg   config.DifficultyConfig
	rng   *rand.Rand
	level int
}

// NewManager creates a manager starting at level 1.
func NewManager(cfg config.DifficultyConfig, rng *rand.Rand) *Manager {
	return &Manager{
		cfg:   cfg,
		rng:   rng,
		level: 1,
	}
}

// Level returns the current level (1-indexed).
func (m *Manager) Level() int {
	return m.level
}

// MaxLevel returns the highest reachable level.
func (m *Manager) MaxLevel() int {
	return m.cfg.MaxLevel
}

// IncreaseLevel moves to the next level, clamping at MaxLevel.
// Returns the new level.
func (m *Manager) IncreaseLevel() int {
	if m.level < m.cfg.MaxLevel {
		m.level++
	}
	return m.level
}

// ResetLevel returns to level 1.
func (m *Manager) ResetLevel() {
	m.level = 1
}

// SetLevel jumps to a level, clamped into [1, MaxLevel].
func (m *Manager) SetLevel(level int) {
	m.level = core.Clamp(level, 1, m.cfg.MaxLevel)
}

// LevelSettings scales every base constant by 1 + (level-1)*LevelStep,
// rounded to the nearest integer.
func (m *Manager) LevelSettings(level int) Settings {
	if level < 1 {
		level = 1
	}
	mult := 1 + float64(level-1)*m.cfg.LevelStep
	scale := func(v int) int {
		return int(math.Round(float64(v) * mult))
	}
	return Settings{
		BaseWordScore:    scale(m.cfg.BaseWordScore),
		MaxSpeed:         scale(m.cfg.MaxSpeed),
		MaxLength:        scale(m.cfg.MaxLength),
		MaxModifierScore: scale(m.cfg.MaxModifierScore),
	}
}

// Current returns the settings for the current level.
func (m *Manager) Current() Settings {
	return m.LevelSettings(m.level)
}

// GenerateWordDifficulty allocates the budget for a new word at the current level.
func (m *Manager) GenerateWordDifficulty() WordDifficulty {
	var d WordDifficulty
	if m.level <= 1 {
		d = m.onRamp(m.LevelSettings(1))
	} else {
		d = m.partition(m.LevelSettings(m.level))
	}

	if !core.Invariant(d.Sum() == d.TotalScore, "difficulty budget mismatch",
		"level", m.level, "total", d.TotalScore, "sum", d.Sum()) {
		d.TotalScore = d.Sum()
	}
	return d
}

// onRamp builds the gentle level-1 profile: speed capped low, short words
// and at most one modifier. TotalScore records the points actually spent,
// which never exceeds the level budget.
func (m *Manager) onRamp(s Settings) WordDifficulty {
	ramp := m.cfg.OnRamp

	speed := m.rng.Intn(min(ramp.MaxSpeed, s.MaxSpeed) + 1)

	maxLen := max(min(ramp.MaxLength, s.MaxLength, s.BaseWordScore-speed), m.cfg.MinLength)
	length := m.cfg.MinLength + m.rng.Intn(maxLen-m.cfg.MinLength+1)
	if speed+length > s.BaseWordScore {
		speed = max(0, s.BaseWordScore-length)
	}

	d := WordDifficulty{Speed: speed, Length: length}

	budget := min(s.MaxModifierScore, s.BaseWordScore-speed-length)
	if budget > 0 && m.rng.Float64() < ramp.ModifierChance {
		pts := 1 + m.rng.Intn(budget)
		switch m.rng.Intn(3) {
		case 0:
			d.Modifiers.Blinking = pts
		case 1:
			d.Modifiers.Shaking = pts
		default:
			d.Modifiers.Flipped = pts
		}
	}

	d.TotalScore = d.Sum()
	return d
}

// partition spends exactly BaseWordScore points. Length is drawn first with
// a bias toward long words, speed takes what modifiers cannot absorb, and
// the remainder is split across the three modifiers.
func (m *Manager) partition(s Settings) WordDifficulty {
	total := s.BaseWordScore

	hi := max(min(s.MaxLength, total-1), m.cfg.MinLength)
	length := m.biasedLength(m.cfg.MinLength, hi)
	rest := total - length

	speedLo := max(0, rest-s.MaxModifierScore)
	speedHi := max(0, min(s.MaxSpeed, rest))
	speed := speedHi
	if speedLo <= speedHi {
		speed = speedLo + m.rng.Intn(speedHi-speedLo+1)
	}
	// Overflow beyond MaxModifierScore stays in the modifiers so the sum holds.

	mods := rest - speed
	blinking := m.rng.Intn(mods + 1)
	shaking := m.rng.Intn(mods - blinking + 1)

	return WordDifficulty{
		TotalScore: total,
		Speed:      speed,
		Length:     length,
		Modifiers: Modifiers{
			Blinking: blinking,
			Shaking:  shaking,
			Flipped:  mods - blinking - shaking,
		},
	}
}

// biasedLength picks a length in [lo, hi]. The top two values form the
// "long" band; the values below are split at their midpoint into "short"
// and "middle". Empty bands give their weight to nothing.
func (m *Manager) biasedLength(lo, hi int) int {
	if hi-lo < 2 {
		return lo + m.rng.Intn(hi-lo+1)
	}

	type band struct{ from, to, weight int }
	longFrom := hi - 1
	mid := lo + (longFrom-lo)/2
	bands := []band{
		{lo, mid - 1, m.cfg.LengthBias.Short},
		{mid, longFrom - 1, m.cfg.LengthBias.Middle},
		{longFrom, hi, m.cfg.LengthBias.Long},
	}

	total := 0
	for _, b := range bands {
		if b.to >= b.from {
			total += b.weight
		}
	}
	if total <= 0 {
		return lo + m.rng.Intn(hi-lo+1)
	}

	roll := m.rng.Intn(total)
	for _, b := range bands {
		if b.to < b.from {
			continue
		}
		if roll < b.weight {
			return b.from + m.rng.Intn(b.to-b.from+1)
		}
		roll -= b.weight
	}
	return hi
}

// Update implements the engine's manager capability. Difficulty has no timers.
func (m *Manager) Update(now, delta time.Duration) {}

// Destroy implements the engine's manager capability.
func (m *Manager) Destroy() {}
