// Package config provides YAML-based configuration loading, validation and
// difficulty presets for typefall.
package config

import "time"

// Config is the complete tunable configuration for a game session.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Motion     MotionConfig     `yaml:"motion"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	WordBank   WordBankConfig   `yaml:"wordbank"`
}

// GameConfig controls level pacing and spawn scheduling.
type GameConfig struct {
	WordsToClearBase     int            `yaml:"words_to_clear_base" validate:"gte=1"`
	WordsToClearPerLevel int            `yaml:"words_to_clear_per_level" validate:"gte=0"`
	MaxWordsOnScreen     int            `yaml:"max_words_on_screen" validate:"gte=1,lte=16"`
	MinSpawnGap          time.Duration  `yaml:"min_spawn_gap" validate:"gte=0"`
	WatchdogInterval     time.Duration  `yaml:"watchdog_interval" validate:"gt=0"`
	Progression          bool           `yaml:"progression"` // false keeps the starting level forever
	Viewport             ViewportConfig `yaml:"viewport"`
}

// ViewportConfig is the size of the simulated world in world units.
type ViewportConfig struct {
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
}

// DifficultyConfig holds the level-1 base values that every level scales.
type DifficultyConfig struct {
	MaxLevel         int          `yaml:"max_level" validate:"gte=1,lte=20"`
	LevelStep        float64      `yaml:"level_step" validate:"gte=0,lte=2"`
	BaseWordScore    int          `yaml:"base_word_score" validate:"gte=3"`
	MaxSpeed         int          `yaml:"max_speed" validate:"gte=0"`
	MinLength        int          `yaml:"min_length" validate:"gte=1"`
	MaxLength        int          `yaml:"max_length" validate:"gtefield=MinLength"`
	MaxModifierScore int          `yaml:"max_modifier_score" validate:"gte=0"`
	OnRamp           OnRampConfig `yaml:"on_ramp"`
	LengthBias       LengthBias   `yaml:"length_bias"`
}

// OnRampConfig shapes the gentler word generation used on level 1.
type OnRampConfig struct {
	MaxSpeed       int     `yaml:"max_speed" validate:"gte=0"`
	MaxLength      int     `yaml:"max_length" validate:"gte=1"`
	ModifierChance float64 `yaml:"modifier_chance" validate:"gte=0,lte=1"`
}

// LengthBias weights the short, middle and long thirds of the length range
// for levels above the on-ramp.
type LengthBias struct {
	Short  int `yaml:"short" validate:"gte=0"`
	Middle int `yaml:"middle" validate:"gte=0"`
	Long   int `yaml:"long" validate:"gte=0"`
}

// MotionConfig defines spawn geometry and travel timing.
type MotionConfig struct {
	BaseDuration  time.Duration `yaml:"base_duration" validate:"gt=0"`
	MinDuration   time.Duration `yaml:"min_duration" validate:"gt=0,ltefield=BaseDuration"`
	SpeedFactor   float64       `yaml:"speed_factor" validate:"gte=0"`
	ArrivalRadius float64       `yaml:"arrival_radius" validate:"gt=0"`
	SpawnMargin   float64       `yaml:"spawn_margin" validate:"gte=0"`
	MinAngle      float64       `yaml:"min_angle" validate:"gte=0,lte=180"` // degrees
	MaxAngle      float64       `yaml:"max_angle" validate:"gtefield=MinAngle,lte=180"`
}

// PowerUpConfig defines power-up spawn odds and effect timings.
type PowerUpConfig struct {
	SpawnChance    float64        `yaml:"spawn_chance" validate:"gte=0,lte=0.5"`
	FreezeDuration time.Duration  `yaml:"freeze_duration" validate:"gt=0"`
	SlowDuration   time.Duration  `yaml:"slow_duration" validate:"gt=0"`
	SlowFactor     float64        `yaml:"slow_factor" validate:"gt=0,lt=1"`
	Weights        PowerUpWeights `yaml:"weights"`
}

// PowerUpWeights are relative spawn weights per kind (higher = more common).
type PowerUpWeights struct {
	Freeze int `yaml:"freeze" validate:"gte=0"`
	Slow   int `yaml:"slow" validate:"gte=0"`
	Bomb   int `yaml:"bomb" validate:"gte=0"`
	Shield int `yaml:"shield" validate:"gte=0"`
}

// Total returns the sum of all weights.
func (w PowerUpWeights) Total() int {
	return w.Freeze + w.Slow + w.Bomb + w.Shield
}

// ScoringConfig holds the per-word scoring constants.
type ScoringConfig struct {
	PointsPerLetter int     `yaml:"points_per_letter" validate:"gte=1"`
	LengthThreshold int     `yaml:"length_threshold" validate:"gte=0"`
	LengthBonus     float64 `yaml:"length_bonus" validate:"gte=0"`
	SpeedThreshold  float64 `yaml:"speed_threshold" validate:"gte=0"` // characters per second
	SpeedBonus      float64 `yaml:"speed_bonus" validate:"gte=0"`
	BlinkingBonus   float64 `yaml:"blinking_bonus" validate:"gte=0"`
	ShakingBonus    float64 `yaml:"shaking_bonus" validate:"gte=0"`
	FlippedBonus    float64 `yaml:"flipped_bonus" validate:"gte=0"`
	ComboStep       float64 `yaml:"combo_step" validate:"gte=0"`
	ComboMax        float64 `yaml:"combo_max" validate:"gte=0"`
}

// WordBankConfig controls candidate selection and word providers.
type WordBankConfig struct {
	MinLength         int           `yaml:"min_length" validate:"gte=1"`
	MaxLengthBase     int           `yaml:"max_length_base" validate:"gtefield=MinLength"`
	MaxLengthPerLevel int           `yaml:"max_length_per_level" validate:"gte=0"`
	RefillCount       int           `yaml:"refill_count" validate:"gte=1"`
	LowWater          int           `yaml:"low_water" validate:"gte=1"`
	PrefetchCount     int           `yaml:"prefetch_count" validate:"gte=0"`
	Provider          string        `yaml:"provider" validate:"oneof=builtin http lexicon"`
	URL               string        `yaml:"url" validate:"omitempty,url"`
	Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
	LexiconPath       string        `yaml:"lexicon_path"`
}

// MaxLengthForLevel returns the longest candidate length allowed at a level.
func (w WordBankConfig) MaxLengthForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return w.MaxLengthBase + (level-1)*w.MaxLengthPerLevel
}

// WordsToClear returns how many words must be completed to clear a level.
func (g GameConfig) WordsToClear(level int) int {
	if level < 1 {
		level = 1
	}
	return g.WordsToClearBase + (level-1)*g.WordsToClearPerLevel
}
