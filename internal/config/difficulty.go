package config

import (
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q (want easy, normal, hard or fixed)", s)
}

// ApplyPreset adjusts pacing values of cfg for the given preset.
// Normal leaves the configuration untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Game.MaxWordsOnScreen = 2
		cfg.Game.WordsToClearBase = 8
		cfg.Game.MinSpawnGap = 800 * time.Millisecond
		cfg.Motion.BaseDuration = 13 * time.Second
		cfg.PowerUps.SpawnChance = 0.15
	case DifficultyHard:
		cfg.Game.MaxWordsOnScreen = 4
		cfg.Game.WordsToClearBase = 12
		cfg.Game.MinSpawnGap = 350 * time.Millisecond
		cfg.Motion.BaseDuration = 8 * time.Second
		cfg.PowerUps.SpawnChance = 0.07
	case DifficultyFixed:
		cfg.Game.Progression = false
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
