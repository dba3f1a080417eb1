package engine

import (
	"math"

	"github.com/vovakirdan/typefall/internal/powerup"
)

// WordView is the render-facing state of one in-flight word.
type WordView struct {
	ID       int     `json:"id"`
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Progress float64 `json:"progress"`
	Blinking bool    `json:"blinking,omitempty"`
	Shaking  bool    `json:"shaking,omitempty"`
	Flipped  bool    `json:"flipped,omitempty"`
	PowerUp  string  `json:"powerup,omitempty"`
}

// EffectView is a running timed power-up.
type EffectView struct {
	Kind      string `json:"kind"`
	Remaining int64  `json:"remaining_ms"`
}

// Snapshot captures the complete game state for rendering, the browser
// bridge and determinism checks.
type Snapshot struct {
	At        int64          `json:"at"`
	State     State          `json:"state"`
	Mode      Mode           `json:"mode"`
	Level     int            `json:"level"`
	MaxLevel  int            `json:"max_level"`
	Cleared   int            `json:"cleared"`
	Required  int            `json:"required"`
	Score     int            `json:"score"`
	Combo     int            `json:"combo"`
	Buffer    string         `json:"buffer"`
	Shield    bool           `json:"shield"`
	Inventory map[string]int `json:"inventory"`
	Effects   []EffectView   `json:"effects"`
	Words     []WordView     `json:"words"`
}

// Snapshot returns the current game state. Coordinates are rounded to
// thousandths so equal games compare equal across platforms.
func (g *Game) Snapshot() Snapshot {
	data := g.score.ScoreData()

	inv := make(map[string]int, len(powerup.Kinds))
	for k, n := range g.powerups.Inventory() {
		inv[k.String()] = n
	}

	effects := make([]EffectView, 0, 2)
	for _, eff := range g.powerups.Active() {
		effects = append(effects, EffectView{
			Kind:      eff.Kind.String(),
			Remaining: eff.Remaining(g.now).Milliseconds(),
		})
	}

	words := g.words.Words()
	views := make([]WordView, 0, len(words))
	for _, w := range words {
		v := WordView{
			ID:       w.ID,
			Text:     w.Text,
			X:        round3(w.Position.X),
			Y:        round3(w.Position.Y),
			Progress: round3(w.Progress()),
			Blinking: w.Effects.Blinking,
			Shaking:  w.Effects.Shaking,
			Flipped:  w.Effects.Flipped,
		}
		if w.IsPowerUp {
			v.PowerUp = w.PowerUp.String()
		}
		views = append(views, v)
	}

	return Snapshot{
		At:        g.now.Milliseconds(),
		State:     g.state,
		Mode:      g.mode,
		Level:     g.Level(),
		MaxLevel:  g.MaxLevel(),
		Cleared:   g.cleared,
		Required:  g.required,
		Score:     data.TotalScore,
		Combo:     data.Combo,
		Buffer:    g.matcher.Buffer(),
		Shield:    g.powerups.HasActiveShield(),
		Inventory: inv,
		Effects:   effects,
		Words:     views,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
