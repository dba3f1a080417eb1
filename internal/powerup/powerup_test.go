package powerup

import (
	"testing"
	"time"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
)

func newTestEngine() *Engine {
	return New(config.DefaultConfig().PowerUps, core.NewRand(1))
}

func TestActivateWithEmptyInventory(t *testing.T) {
	e := newTestEngine()

	for _, k := range Kinds {
		before := e.Inventory()
		if e.TryActivate(k, time.Second) {
			t.Errorf("TryActivate(%s) with zero inventory should fail", k)
		}
		after := e.Inventory()
		if before[k] != after[k] {
			t.Errorf("%s inventory changed from %d to %d", k, before[k], after[k])
		}
	}
	if e.IsFreezeActive() || e.HasActiveShield() || e.SlowFactor() != 1 {
		t.Error("no effect should be active after failed activations")
	}
}

func TestFreezeLifecycle(t *testing.T) {
	e := newTestEngine()
	e.Collect(Freeze)

	start := 10 * time.Second
	if !e.TryActivate(Freeze, start) {
		t.Fatal("TryActivate(freeze) failed with one in inventory")
	}
	if e.Count(Freeze) != 0 {
		t.Errorf("Count(freeze) = %d, expected 0", e.Count(Freeze))
	}

	e.Tick(start + 2999*time.Millisecond)
	if !e.IsFreezeActive() {
		t.Error("freeze should still be active just before 3s")
	}

	expired := e.Tick(start + 3*time.Second)
	if e.IsFreezeActive() {
		t.Error("freeze should expire at exactly 3s")
	}
	if len(expired) != 1 || expired[0] != Freeze {
		t.Errorf("Tick expired %v, expected [freeze]", expired)
	}
}

func TestSlowFactorAndReplace(t *testing.T) {
	e := newTestEngine()
	e.Collect(Slow)
	e.Collect(Slow)

	e.TryActivate(Slow, 0)
	if e.SlowFactor() != 0.5 {
		t.Errorf("SlowFactor() = %v, expected 0.5", e.SlowFactor())
	}

	// A second activation replaces the first rather than stacking
	e.TryActivate(Slow, 4*time.Second)
	if e.SlowFactor() != 0.5 {
		t.Errorf("SlowFactor() = %v, expected 0.5 (non-stacking)", e.SlowFactor())
	}
	active := e.Active()
	if len(active) != 1 {
		t.Fatalf("Active() has %d effects, expected 1", len(active))
	}
	if active[0].End != 9*time.Second {
		t.Errorf("slow ends at %v, expected 9s", active[0].End)
	}

	e.Tick(5 * time.Second)
	if e.SlowFactor() != 0.5 {
		t.Error("replaced slow should still be running at 5s")
	}
	e.Tick(9 * time.Second)
	if e.SlowFactor() != 1 {
		t.Errorf("SlowFactor() = %v, expected 1 after expiry", e.SlowFactor())
	}
}

func TestShieldSingleHit(t *testing.T) {
	e := newTestEngine()
	e.Collect(Shield)
	e.Collect(Shield)

	if !e.TryActivate(Shield, 0) {
		t.Fatal("TryActivate(shield) failed")
	}
	if !e.HasActiveShield() {
		t.Fatal("shield should be armed")
	}

	// Arming again while armed must not spend inventory
	if e.TryActivate(Shield, time.Second) {
		t.Error("TryActivate(shield) should fail while a shield is armed")
	}
	if e.Count(Shield) != 1 {
		t.Errorf("Count(shield) = %d, expected 1", e.Count(Shield))
	}

	// Shields do not expire with time
	e.Tick(time.Hour)
	if !e.HasActiveShield() {
		t.Error("shield should stay armed until consumed")
	}

	if !e.ConsumeShield() {
		t.Error("ConsumeShield() should succeed once")
	}
	if e.ConsumeShield() {
		t.Error("ConsumeShield() should fail once the shield is used")
	}
	if e.HasActiveShield() {
		t.Error("shield should be gone after absorbing a hit")
	}
}

func TestBombIsInstant(t *testing.T) {
	e := newTestEngine()
	e.Collect(Bomb)

	if !e.TryActivate(Bomb, 0) {
		t.Fatal("TryActivate(bomb) failed")
	}
	if e.Count(Bomb) != 0 {
		t.Errorf("Count(bomb) = %d, expected 0", e.Count(Bomb))
	}
	if len(e.Active()) != 0 {
		t.Error("bomb should not leave a timed effect")
	}
}

func TestClearActiveKeepsInventory(t *testing.T) {
	e := newTestEngine()
	for _, k := range Kinds {
		e.Collect(k)
		e.Collect(k)
	}
	e.TryActivate(Freeze, 0)
	e.TryActivate(Slow, 0)
	e.TryActivate(Shield, 0)

	e.ClearActive()

	if e.IsFreezeActive() || e.SlowFactor() != 1 || e.HasActiveShield() {
		t.Error("ClearActive should stop all effects")
	}
	inv := e.Inventory()
	if inv[Freeze] != 1 || inv[Slow] != 1 || inv[Shield] != 1 || inv[Bomb] != 2 {
		t.Errorf("inventory after ClearActive = %v", inv)
	}

	e.Reset()
	for _, k := range Kinds {
		if e.Count(k) != 0 {
			t.Errorf("Count(%s) = %d after Reset, expected 0", k, e.Count(k))
		}
	}
}

func TestInventoryIsACopy(t *testing.T) {
	e := newTestEngine()
	e.Collect(Freeze)

	inv := e.Inventory()
	inv[Freeze] = 99
	if e.Count(Freeze) != 1 {
		t.Error("mutating the snapshot should not affect the engine")
	}
	if len(inv) != len(Kinds) {
		t.Errorf("snapshot has %d kinds, expected %d", len(inv), len(Kinds))
	}
}

func TestRandomKindRespectsWeights(t *testing.T) {
	cfg := config.DefaultConfig().PowerUps
	cfg.Weights = config.PowerUpWeights{Bomb: 1}
	e := New(cfg, core.NewRand(5))

	for i := 0; i < 100; i++ {
		if k := e.RandomKind(); k != Bomb {
			t.Fatalf("RandomKind() = %s, expected only bomb", k)
		}
	}
}

func TestShouldSpawnRate(t *testing.T) {
	e := newTestEngine()
	hits := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if e.ShouldSpawnAsPowerUp() {
			hits++
		}
	}
	ratio := float64(hits) / n
	if ratio < 0.08 || ratio > 0.12 {
		t.Errorf("spawn ratio = %.3f, expected about 0.10", ratio)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("laser"); ok {
		t.Error("ParseKind should reject unknown names")
	}
}
