// Package powerup implements the power-up inventory and effect state machine.
//
// Freeze and slow are timed effects. The shield is armed until it absorbs
// one arrival. The bomb is instant: activating it only spends inventory and
// the caller clears the field.
package powerup

import (
	"math/rand"
	"sort"
	"time"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
)

// Kind identifies a power-up. Its String form is the word typed to activate it.
type Kind int

const (
	Freeze Kind = iota
	Slow
	Bomb
	Shield
)

// Kinds lists every power-up kind in display order.
var Kinds = []Kind{Freeze, Slow, Bomb, Shield}

// String returns the activation word of the kind.
func (k Kind) String() string {
	switch k {
	case Freeze:
		return "freeze"
	case Slow:
		return "slow"
	case Bomb:
		return "bomb"
	case Shield:
		return "shield"
	default:
		return "unknown"
	}
}

// Description returns a short HUD description.
func (k Kind) Description() string {
	switch k {
	case Freeze:
		return "Freeze all words"
	case Slow:
		return "Halve word speed"
	case Bomb:
		return "Clear the field"
	case Shield:
		return "Block one hit"
	default:
		return ""
	}
}

// ParseKind returns the kind whose activation word is name.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// ActiveEffect is a running timed effect.
type ActiveEffect struct {
	Kind  Kind
	Start time.Duration
	End   time.Duration
}

// Remaining returns the time left at now, never negative.
func (e ActiveEffect) Remaining(now time.Duration) time.Duration {
	return max(e.End-now, 0)
}

// Inventory maps each kind to its collected count.
type Inventory map[Kind]int

// Engine owns inventory and active effects for one game.
type Engine struct {
	cfg       config.PowerUpConfig
	rng       *rand.Rand
	inventory Inventory
	active    map[Kind]ActiveEffect
	shield    bool
}

// New creates an engine with an empty inventory.
func New(cfg config.PowerUpConfig, rng *rand.Rand) *Engine {
	return &Engine{
		cfg:       cfg,
		rng:       rng,
		inventory: make(Inventory),
		active:    make(map[Kind]ActiveEffect),
	}
}

// ShouldSpawnAsPowerUp rolls the configured spawn chance.
func (e *Engine) ShouldSpawnAsPowerUp() bool {
	return e.rng.Float64() < e.cfg.SpawnChance
}

// RandomKind picks a kind using the configured weights.
func (e *Engine) RandomKind() Kind {
	w := e.cfg.Weights
	weights := []int{w.Freeze, w.Slow, w.Bomb, w.Shield}
	total := w.Total()
	if total <= 0 {
		return Kinds[e.rng.Intn(len(Kinds))]
	}

	roll := e.rng.Intn(total)
	for i, weight := range weights {
		if roll < weight {
			return Kinds[i]
		}
		roll -= weight
	}
	return Shield
}

// Collect adds one of kind to the inventory.
func (e *Engine) Collect(k Kind) {
	e.inventory[k]++
}

// Count returns how many of kind are in the inventory.
func (e *Engine) Count(k Kind) int {
	return e.inventory[k]
}

// TryActivate spends one of kind and starts its effect. It fails, leaving
// the inventory untouched, when the count is zero or a shield is already armed.
func (e *Engine) TryActivate(k Kind, now time.Duration) bool {
	if e.inventory[k] <= 0 {
		return false
	}
	if k == Shield && e.shield {
		return false
	}

	e.inventory[k]--
	if !core.Invariant(e.inventory[k] >= 0, "negative power-up inventory", "kind", k) {
		e.inventory[k] = 0
	}

	switch k {
	case Freeze:
		e.active[Freeze] = ActiveEffect{Kind: Freeze, Start: now, End: now + e.cfg.FreezeDuration}
	case Slow:
		e.active[Slow] = ActiveEffect{Kind: Slow, Start: now, End: now + e.cfg.SlowDuration}
	case Shield:
		e.shield = true
	case Bomb:
		// instant; the caller clears the field
	}
	return true
}

// Tick expires timed effects whose end is at or before now and returns
// the kinds that expired, in kind order.
func (e *Engine) Tick(now time.Duration) []Kind {
	var expired []Kind
	for k, eff := range e.active {
		if eff.End <= now {
			delete(e.active, k)
			expired = append(expired, k)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Update implements the engine's manager capability.
func (e *Engine) Update(now, delta time.Duration) {
	e.Tick(now)
}

// IsFreezeActive reports whether word motion is suspended.
func (e *Engine) IsFreezeActive() bool {
	_, ok := e.active[Freeze]
	return ok
}

// SlowFactor returns the velocity multiplier: SlowFactor while slow is
// active, 1 otherwise.
func (e *Engine) SlowFactor() float64 {
	if _, ok := e.active[Slow]; ok {
		return e.cfg.SlowFactor
	}
	return 1.0
}

// HasActiveShield reports whether the next arrival will be absorbed.
func (e *Engine) HasActiveShield() bool {
	return e.shield
}

// ConsumeShield uses up an armed shield. Returns false if none was armed.
func (e *Engine) ConsumeShield() bool {
	if !e.shield {
		return false
	}
	e.shield = false
	return true
}

// Active returns the running timed effects in kind order.
func (e *Engine) Active() []ActiveEffect {
	out := make([]ActiveEffect, 0, len(e.active))
	for _, eff := range e.active {
		out = append(out, eff)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Inventory returns a copy of the inventory with every kind present.
func (e *Engine) Inventory() Inventory {
	out := make(Inventory, len(Kinds))
	for _, k := range Kinds {
		out[k] = e.inventory[k]
	}
	return out
}

// ClearActive stops every effect and disarms the shield. Inventory is kept.
func (e *Engine) ClearActive() {
	clear(e.active)
	e.shield = false
}

// Reset clears effects and inventory for a new game.
func (e *Engine) Reset() {
	e.ClearActive()
	clear(e.inventory)
}

// Destroy implements the engine's manager capability.
func (e *Engine) Destroy() {
	e.Reset()
}
