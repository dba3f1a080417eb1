// Package lifecycle owns the in-flight words: where they spawn, how they
// move toward the target, and when they arrive.
package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/difficulty"
	"github.com/vovakirdan/typefall/internal/powerup"
)

// ErrInvalidViewport is returned by Spawn for a viewport without area.
var ErrInvalidViewport = errors.New("lifecycle: viewport must have positive width and height")

// Effects are the visual impairments applied to a word.
type Effects struct {
	Blinking bool
	Shaking  bool
	Flipped  bool
}

// Any reports whether at least one effect is set.
func (e Effects) Any() bool {
	return e.Blinking || e.Shaking || e.Flipped
}

// Word is an in-flight entity.
type Word struct {
	ID             int
	Text           string
	Origin         core.Vec2
	Target         core.Vec2
	Velocity       core.Vec2 // world units per second
	Position       core.Vec2
	SpawnTime      time.Duration
	TravelDuration time.Duration
	Effects        Effects
	IsPowerUp      bool
	PowerUp        powerup.Kind
	Difficulty     difficulty.WordDifficulty
}

// DistanceToTarget returns how far the word still has to travel.
func (w Word) DistanceToTarget() float64 {
	return w.Position.Dist(w.Target)
}

// Progress returns the traveled fraction of the path in [0, 1].
func (w Word) Progress() float64 {
	total := w.Origin.Dist(w.Target)
	if total <= 0 {
		return 1
	}
	return core.ClampF(1-w.DistanceToTarget()/total, 0, 1)
}

// DifficultySource generates word difficulties for the current level.
type DifficultySource interface {
	GenerateWordDifficulty() difficulty.WordDifficulty
}

// WordSource hands out unused words.
type WordSource interface {
	TakeWord(d difficulty.WordDifficulty) string
}

// PowerUpSource decides whether and which power-up a spawn becomes.
type PowerUpSource interface {
	ShouldSpawnAsPowerUp() bool
	RandomKind() powerup.Kind
}

// Engine tracks the in-flight words of one game.
type Engine struct {
	cfg    config.MotionConfig
	rng    *rand.Rand
	words  []*Word
	nextID int
}

// New creates an empty lifecycle engine.
func New(cfg config.MotionConfig, rng *rand.Rand) *Engine {
	return &Engine{
		cfg:    cfg,
		rng:    rng,
		nextID: 1,
	}
}

// Spawn creates a word just outside the viewport heading for its center.
// Power-up words use the kind name as their text and do not consume a bank word.
func (e *Engine) Spawn(now time.Duration, ds DifficultySource, ws WordSource, ps PowerUpSource, vp core.Viewport) (Word, error) {
	if !vp.Valid() {
		return Word{}, fmt.Errorf("%w: got %vx%v", ErrInvalidViewport, vp.Width, vp.Height)
	}

	d := ds.GenerateWordDifficulty()

	w := &Word{
		ID:         e.nextID,
		SpawnTime:  now,
		Difficulty: d,
		Effects: Effects{
			Blinking: d.Modifiers.Blinking > 0,
			Shaking:  d.Modifiers.Shaking > 0,
			Flipped:  d.Modifiers.Flipped > 0,
		},
	}

	if ps.ShouldSpawnAsPowerUp() {
		w.IsPowerUp = true
		w.PowerUp = ps.RandomKind()
		w.Text = w.PowerUp.String()
	} else {
		w.Text = ws.TakeWord(d)
	}

	target := vp.Center()
	angle := (e.cfg.MinAngle + e.rng.Float64()*(e.cfg.MaxAngle-e.cfg.MinAngle)) * math.Pi / 180
	radius := vp.HalfDiagonal() + e.cfg.SpawnMargin
	// Upper arc: y grows downward, so subtract the sine.
	origin := core.Vec2{
		X: target.X + math.Cos(angle)*radius,
		Y: target.Y - math.Sin(angle)*radius,
	}

	w.Origin = origin
	w.Target = target
	w.Position = origin
	w.TravelDuration = e.TravelDuration(d.Speed)
	w.Velocity = target.Sub(origin).Scale(1 / w.TravelDuration.Seconds())

	e.nextID++
	e.words = append(e.words, w)
	return *w, nil
}

// TravelDuration returns max(BaseDuration / (1 + speed*SpeedFactor), MinDuration).
func (e *Engine) TravelDuration(speed int) time.Duration {
	d := time.Duration(float64(e.cfg.BaseDuration) / (1 + float64(max(speed, 0))*e.cfg.SpeedFactor))
	return max(d, e.cfg.MinDuration)
}

// Tick advances every word by velocity*slowFactor*delta unless frozen and
// returns copies of the words now within the arrival radius. Positions are
// clamped so a word never passes its target. The caller decides what an
// arrival means and removes the words.
func (e *Engine) Tick(delta time.Duration, frozen bool, slowFactor float64) []Word {
	if !frozen && delta > 0 {
		dt := delta.Seconds() * slowFactor
		for _, w := range e.words {
			e.advance(w, dt)
		}
	}

	var arrived []Word
	for _, w := range e.words {
		if w.DistanceToTarget() <= e.cfg.ArrivalRadius {
			arrived = append(arrived, *w)
		}
	}
	return arrived
}

func (e *Engine) advance(w *Word, dt float64) {
	step := w.Velocity.Scale(dt)
	remaining := w.Target.Sub(w.Position)

	next := w.Position.Add(step)
	if step.Len() >= remaining.Len() {
		next = w.Target
	}
	if !core.Invariant(next.IsFinite(), "non-finite word position", "id", w.ID, "text", w.Text) {
		return
	}
	w.Position = next
}

// Remove deletes a word by ID and returns it. No scoring happens here.
func (e *Engine) Remove(id int) (Word, bool) {
	for i, w := range e.words {
		if w.ID == id {
			e.words = append(e.words[:i], e.words[i+1:]...)
			return *w, true
		}
	}
	return Word{}, false
}

// RemoveAll clears the field and returns the removed words.
func (e *Engine) RemoveAll() []Word {
	out := e.Words()
	e.words = nil
	return out
}

// Get returns a copy of the word with the given ID.
func (e *Engine) Get(id int) (Word, bool) {
	for _, w := range e.words {
		if w.ID == id {
			return *w, true
		}
	}
	return Word{}, false
}

// Words returns copies of every in-flight word in spawn order.
func (e *Engine) Words() []Word {
	out := make([]Word, len(e.words))
	for i, w := range e.words {
		out[i] = *w
	}
	return out
}

// Len returns the number of in-flight words.
func (e *Engine) Len() int {
	return len(e.words)
}

// Reset clears the field and restarts word IDs.
func (e *Engine) Reset() {
	e.words = nil
	e.nextID = 1
}

// Update implements the engine's manager capability. Motion needs the
// freeze and slow state, so the game calls Tick directly instead.
func (e *Engine) Update(now, delta time.Duration) {}

// Destroy implements the engine's manager capability.
func (e *Engine) Destroy() {
	e.words = nil
}
