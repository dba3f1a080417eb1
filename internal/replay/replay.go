// Package replay runs a game from a YAML script of timed keystrokes.
// A script with a fixed seed always produces the same final snapshot.
package replay

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/input"
	"github.com/vovakirdan/typefall/internal/score"
)

// Step is one scripted input. Exactly one of Type or Key is set: Type
// types every letter of a string at the same instant, Key presses a
// single named key.
type Step struct {
	At   time.Duration `yaml:"at" validate:"gte=0"`
	Type string        `yaml:"type" validate:"required_without=Key,excluded_with=Key"`
	Key  string        `yaml:"key"`
}

// Script describes a replay.
type Script struct {
	Seed     int64         `yaml:"seed" validate:"ne=0"`
	Mode     string        `yaml:"mode" validate:"omitempty,oneof=campaign endless"`
	Level    int           `yaml:"level" validate:"gte=0"`
	Duration time.Duration `yaml:"duration" validate:"gt=0"`
	Tick     time.Duration `yaml:"tick" validate:"gte=0"`
	Keys     []Step        `yaml:"keys" validate:"dive"`
}

// Result is the outcome of a replay.
type Result struct {
	Final  engine.Snapshot
	Score  score.Data
	Frames int
	Events map[engine.EventKind]int
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes and validates a script.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("replay: cannot parse script: %w", err)
	}
	if s.Tick == 0 {
		s.Tick = time.Second / 60
	}
	if err := validate.Struct(s); err != nil {
		return s, fmt.Errorf("replay: invalid script: %w", err)
	}
	for i, st := range s.Keys {
		if st.Key != "" {
			if _, ok := input.ParseKey(st.Key); !ok {
				return s, fmt.Errorf("replay: step %d: unknown key %q", i, st.Key)
			}
		}
	}
	sort.SliceStable(s.Keys, func(i, j int) bool { return s.Keys[i].At < s.Keys[j].At })
	return s, nil
}

// Load reads a script from r.
func Load(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("replay: cannot read script: %w", err)
	}
	return Parse(data)
}

// Run plays the script against a fresh game built from cfg. No word
// provider is attached so the run stays deterministic. It stops at the
// script's duration or when the game ends.
func Run(cfg config.Config, s Script) (Result, error) {
	opts := []engine.Option{engine.WithSeed(s.Seed)}
	if s.Mode != "" {
		mode, err := engine.ParseMode(s.Mode)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, engine.WithMode(mode))
	}
	if s.Level > 0 {
		opts = append(opts, engine.WithStartLevel(s.Level))
	}

	g, err := engine.New(cfg, opts...)
	if err != nil {
		return Result{}, err
	}
	defer g.Destroy()

	res := Result{Events: make(map[engine.EventKind]int)}
	g.StartGame(0)

	next := 0
	for now := s.Tick; now <= s.Duration; now += s.Tick {
		for next < len(s.Keys) && s.Keys[next].At <= now {
			press(g, s.Keys[next], now)
			next++
		}
		for _, e := range g.OnTick(now, s.Tick) {
			res.Events[e.Kind]++
		}
		res.Frames++

		switch g.State() {
		case engine.StateLevelComplete:
			g.AdvanceLevel(now)
		case engine.StateGameOver, engine.StateWon:
			res.Final = g.Snapshot()
			res.Score = g.ScoreData()
			return res, nil
		}
	}

	res.Final = g.Snapshot()
	res.Score = g.ScoreData()
	return res, nil
}

func press(g *engine.Game, st Step, now time.Duration) {
	if st.Key != "" {
		if k, ok := input.ParseKey(st.Key); ok {
			g.OnKeyInput(k, now)
		}
		return
	}
	for _, r := range st.Type {
		g.OnKeyInput(input.Char(r), now)
	}
}
