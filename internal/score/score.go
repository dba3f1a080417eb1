// Package score computes per-word scores and aggregates level and game
// statistics.
package score

import (
	"math"
	"slices"
	"time"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/lifecycle"
)

// WordRecord is the score breakdown for one completed word. The bonus
// fields are rounded individually, so they can differ from
// TotalScore-BasePoints by a point.
type WordRecord struct {
	Word         string
	TotalScore   int
	BasePoints   int
	LengthBonus  int
	SpeedBonus   int
	EffectsBonus int
	ComboBonus   int
	TimeToType   time.Duration
	TypingSpeed  float64 // characters per second
}

// LevelRecord summarizes a finished level.
type LevelRecord struct {
	Level              int
	Score              int
	WordCount          int
	AverageTypingSpeed float64
}

// Data is the accumulated state of one game.
type Data struct {
	TotalScore        int
	TotalWords        int
	Words             []WordRecord
	Levels            []LevelRecord
	PowerUpsCollected int
	PowerUpsUsed      int
	HighestWordScore  int
	Combo             int
	MaxCombo          int
	Misses            int
}

// Engine scores words and keeps the running statistics.
type Engine struct {
	cfg      config.ScoringConfig
	tracking map[int]time.Duration

	levelScore    int
	levelWords    int
	levelSpeedSum float64

	data Data
}

// New creates an engine with empty statistics.
func New(cfg config.ScoringConfig) *Engine {
	return &Engine{
		cfg:      cfg,
		tracking: make(map[int]time.Duration),
	}
}

// StartTracking records when the player started typing a word.
// Subsequent calls for the same word keep the first start time.
func (e *Engine) StartTracking(wordID int, now time.Duration) {
	if _, ok := e.tracking[wordID]; !ok {
		e.tracking[wordID] = now
	}
}

// IsTracking reports whether a start time is recorded for the word.
func (e *Engine) IsTracking(wordID int) bool {
	_, ok := e.tracking[wordID]
	return ok
}

// StopTracking forgets a word that left the field without being typed.
func (e *Engine) StopTracking(wordID int) {
	delete(e.tracking, wordID)
}

// ClearTracking forgets every tracked word.
func (e *Engine) ClearTracking() {
	clear(e.tracking)
}

// Calculate returns the score breakdown for typing w in elapsed time with
// the given combo count. It does not change any state.
func (e *Engine) Calculate(w lifecycle.Word, elapsed time.Duration, combo int) WordRecord {
	c := e.cfg
	length := len(w.Text)
	base := length * c.PointsPerLetter

	lengthPct := float64(max(0, length-c.LengthThreshold)) * c.LengthBonus

	var effectsPct float64
	if w.Effects.Blinking {
		effectsPct += c.BlinkingBonus
	}
	if w.Effects.Shaking {
		effectsPct += c.ShakingBonus
	}
	if w.Effects.Flipped {
		effectsPct += c.FlippedBonus
	}

	comboPct := math.Min(float64(combo)*c.ComboStep, c.ComboMax)

	var cps float64
	if elapsed > 0 {
		cps = float64(length) / elapsed.Seconds()
	}
	speedPct := math.Max(0, cps-c.SpeedThreshold) * c.SpeedBonus

	fb := float64(base)
	return WordRecord{
		Word:         w.Text,
		TotalScore:   int(math.Round(fb * (1 + lengthPct + effectsPct + comboPct + speedPct))),
		BasePoints:   base,
		LengthBonus:  int(math.Round(fb * lengthPct)),
		SpeedBonus:   int(math.Round(fb * speedPct)),
		EffectsBonus: int(math.Round(fb * effectsPct)),
		ComboBonus:   int(math.Round(fb * comboPct)),
		TimeToType:   elapsed,
		TypingSpeed:  cps,
	}
}

// CompleteWord scores a typed word, appends its record and extends the
// combo. A word that was never tracked scores no speed bonus.
func (e *Engine) CompleteWord(w lifecycle.Word, now time.Duration) WordRecord {
	var elapsed time.Duration
	if start, ok := e.tracking[w.ID]; ok {
		elapsed = max(now-start, 0)
		delete(e.tracking, w.ID)
	}

	rec := e.Calculate(w, elapsed, e.data.Combo)

	e.data.Combo++
	e.data.MaxCombo = max(e.data.MaxCombo, e.data.Combo)
	e.data.TotalScore += rec.TotalScore
	e.data.TotalWords++
	e.data.HighestWordScore = max(e.data.HighestWordScore, rec.TotalScore)
	e.data.Words = append(e.data.Words, rec)

	e.levelScore += rec.TotalScore
	e.levelWords++
	e.levelSpeedSum += rec.TypingSpeed
	return rec
}

// RecordMiss counts a wrong keystroke and breaks the combo.
func (e *Engine) RecordMiss() {
	e.data.Misses++
	e.data.Combo = 0
}

// BreakCombo resets the combo without counting a miss.
func (e *Engine) BreakCombo() {
	e.data.Combo = 0
}

// RecordPowerUpCollected counts a collected power-up.
func (e *Engine) RecordPowerUpCollected() {
	e.data.PowerUpsCollected++
}

// RecordPowerUpUsed counts an activated power-up.
func (e *Engine) RecordPowerUpUsed() {
	e.data.PowerUpsUsed++
}

// CompleteLevel snapshots the per-level counters into a LevelRecord and
// resets them.
func (e *Engine) CompleteLevel(level int) LevelRecord {
	rec := LevelRecord{
		Level:     level,
		Score:     e.levelScore,
		WordCount: e.levelWords,
	}
	if e.levelWords > 0 {
		rec.AverageTypingSpeed = e.levelSpeedSum / float64(e.levelWords)
	}
	e.data.Levels = append(e.data.Levels, rec)

	e.levelScore = 0
	e.levelWords = 0
	e.levelSpeedSum = 0
	return rec
}

// LevelScore returns the score accumulated in the current level.
func (e *Engine) LevelScore() int {
	return e.levelScore
}

// ScoreData returns a copy of the accumulated statistics.
func (e *Engine) ScoreData() Data {
	d := e.data
	d.Words = slices.Clone(e.data.Words)
	d.Levels = slices.Clone(e.data.Levels)
	return d
}

// ResetAll clears every statistic for a new game.
func (e *Engine) ResetAll() {
	e.data = Data{}
	e.levelScore = 0
	e.levelWords = 0
	e.levelSpeedSum = 0
	clear(e.tracking)
}

// Update implements the engine's manager capability.
func (e *Engine) Update(now, delta time.Duration) {}

// Destroy implements the engine's manager capability.
func (e *Engine) Destroy() {
	e.ResetAll()
}
