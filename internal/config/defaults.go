package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/typefall.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration (the "normal" preset).
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			WordsToClearBase:     10,
			WordsToClearPerLevel: 5,
			MaxWordsOnScreen:     3,
			MinSpawnGap:          500 * time.Millisecond,
			WatchdogInterval:     2 * time.Second,
			Progression:          true,
			Viewport: ViewportConfig{
				Width:  800,
				Height: 600,
			},
		},
		Difficulty: DifficultyConfig{
			MaxLevel:         5,
			LevelStep:        0.2,
			BaseWordScore:    10,
			MaxSpeed:         5,
			MinLength:        3,
			MaxLength:        5,
			MaxModifierScore: 5,
			OnRamp: OnRampConfig{
				MaxSpeed:       1,
				MaxLength:      5,
				ModifierChance: 0.3,
			},
			LengthBias: LengthBias{
				Short:  30,
				Middle: 30,
				Long:   40,
			},
		},
		Motion: MotionConfig{
			BaseDuration:  10 * time.Second,
			MinDuration:   3 * time.Second,
			SpeedFactor:   0.08,
			ArrivalRadius: 32,
			SpawnMargin:   40,
			MinAngle:      30,
			MaxAngle:      150,
		},
		PowerUps: PowerUpConfig{
			SpawnChance:    0.10,
			FreezeDuration: 3 * time.Second,
			SlowDuration:   5 * time.Second,
			SlowFactor:     0.5,
			Weights: PowerUpWeights{
				Freeze: 30,
				Slow:   30,
				Bomb:   15,
				Shield: 25,
			},
		},
		Scoring: ScoringConfig{
			PointsPerLetter: 10,
			LengthThreshold: 5,
			LengthBonus:     0.5,
			SpeedThreshold:  5,
			SpeedBonus:      0.3,
			BlinkingBonus:   0.2,
			ShakingBonus:    0.3,
			FlippedBonus:    0.4,
			ComboStep:       0.1,
			ComboMax:        1.0,
		},
		WordBank: WordBankConfig{
			MinLength:         3,
			MaxLengthBase:     7,
			MaxLengthPerLevel: 2,
			RefillCount:       40,
			LowWater:          5,
			PrefetchCount:     100,
			Provider:          "builtin",
			URL:               "https://random-word-api.herokuapp.com/word",
			Timeout:           3 * time.Second,
			LexiconPath:       "~/.typefall/lexicon.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
