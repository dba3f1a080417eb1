// Package engine orchestrates one typefall game: level state, spawn
// scheduling, arrivals, keystrokes and the per-tick event queue.
package engine

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/difficulty"
	"github.com/vovakirdan/typefall/internal/input"
	"github.com/vovakirdan/typefall/internal/lifecycle"
	"github.com/vovakirdan/typefall/internal/powerup"
	"github.com/vovakirdan/typefall/internal/score"
	"github.com/vovakirdan/typefall/internal/wordbank"
)

// Manager is the capability every sub-engine implements.
type Manager interface {
	Update(now, delta time.Duration)
	Destroy()
}

// Mode selects how the game ends.
type Mode string

const (
	ModeCampaign Mode = "campaign" // clearing the last level wins
	ModeEndless  Mode = "endless"  // the last level repeats until game over
)

// ParseMode converts a mode name. Empty means campaign.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCampaign:
		return ModeCampaign, nil
	case ModeEndless:
		return ModeEndless, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected campaign or endless)", s)
}

// State is the game's position in its lifecycle.
type State string

const (
	StateReady         State = "ready"
	StatePlaying       State = "playing"
	StateLevelComplete State = "level_complete"
	StateGameOver      State = "game_over"
	StateWon           State = "won"
)

// Option configures a Game.
type Option func(*Game)

// WithSeed fixes the random seed. Zero picks a time-based seed.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.seed = seed }
}

// WithLogger sets the logger shared by the engine and word bank.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithProvider attaches an asynchronous word provider to the bank.
func WithProvider(p wordbank.Provider) Option {
	return func(g *Game) { g.provider = p }
}

// WithMode selects campaign or endless play.
func WithMode(m Mode) Option {
	return func(g *Game) { g.mode = m }
}

// WithStartLevel starts and restarts at the given level.
func WithStartLevel(level int) Option {
	return func(g *Game) { g.startLevel = level }
}

// WithViewport overrides the configured world size.
func WithViewport(vp core.Viewport) Option {
	return func(g *Game) { g.viewport = vp }
}

// Game owns every sub-engine of one session. It is not safe for concurrent
// use; front ends drive it from a single goroutine.
type Game struct {
	cfg      config.Config
	log      *log.Logger
	seed     int64
	rng      *rand.Rand
	mode     Mode
	viewport core.Viewport
	provider wordbank.Provider

	startLevel int

	difficulty *difficulty.Manager
	bank       *wordbank.Bank
	powerups   *powerup.Engine
	words      *lifecycle.Engine
	matcher    *input.Matcher
	score      *score.Engine

	state     State
	now       time.Duration
	cleared   int
	required  int
	lastSpawn time.Duration
	spawned   bool // a word has spawned this level
	lastSeen  time.Duration
	queue     queue
}

// New validates cfg and builds a game in the ready state.
func New(cfg config.Config, opts ...Option) (*Game, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:  cfg,
		mode: ModeCampaign,
		viewport: core.Viewport{
			Width:  cfg.Game.Viewport.Width,
			Height: cfg.Game.Viewport.Height,
		},
		startLevel: 1,
		state:      StateReady,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = log.NewWithOptions(io.Discard, log.Options{Prefix: "engine"})
	}
	if !g.viewport.Valid() {
		return nil, fmt.Errorf("engine: %w", lifecycle.ErrInvalidViewport)
	}
	if _, err := ParseMode(string(g.mode)); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	g.seed = core.ResolveSeed(g.seed)
	g.rng = core.NewRand(g.seed)

	bankOpts := []wordbank.Option{wordbank.WithLogger(g.log)}
	if g.provider != nil {
		bankOpts = append(bankOpts, wordbank.WithProvider(g.provider))
	}

	g.difficulty = difficulty.NewManager(cfg.Difficulty, g.rng)
	g.difficulty.SetLevel(g.startLevel)
	g.startLevel = g.difficulty.Level()
	g.bank = wordbank.New(cfg.WordBank, g.rng, bankOpts...)
	g.powerups = powerup.New(cfg.PowerUps, g.rng)
	g.words = lifecycle.New(cfg.Motion, g.rng)
	g.matcher = input.NewMatcher()
	g.score = score.New(cfg.Scoring)

	return g, nil
}

// managers lists the sub-engines updated at the start of every tick.
// Power-ups and motion need their results, so OnTick drives them directly.
func (g *Game) managers() []Manager {
	return []Manager{g.bank, g.difficulty, g.score}
}

// Seed returns the resolved random seed.
func (g *Game) Seed() int64 { return g.seed }

// Mode returns the play mode.
func (g *Game) Mode() Mode { return g.mode }

// State returns the lifecycle state.
func (g *Game) State() State { return g.state }

// Level returns the current level.
func (g *Game) Level() int { return g.difficulty.Level() }

// MaxLevel returns the last level.
func (g *Game) MaxLevel() int { return g.difficulty.MaxLevel() }

// Progress returns the words cleared and required in this level.
func (g *Game) Progress() (cleared, required int) { return g.cleared, g.required }

// Buffer returns the typing buffer.
func (g *Game) Buffer() string { return g.matcher.Buffer() }

// Words returns copies of the in-flight words.
func (g *Game) Words() []lifecycle.Word { return g.words.Words() }

// Inventory returns a copy of the power-up inventory.
func (g *Game) Inventory() powerup.Inventory { return g.powerups.Inventory() }

// ActiveEffects returns the running timed power-ups.
func (g *Game) ActiveEffects() []powerup.ActiveEffect { return g.powerups.Active() }

// ShieldArmed reports whether the next arrival will be absorbed.
func (g *Game) ShieldArmed() bool { return g.powerups.HasActiveShield() }

// ScoreData returns the accumulated statistics.
func (g *Game) ScoreData() score.Data { return g.score.ScoreData() }

// Viewport returns the world size used for spawning.
func (g *Game) Viewport() core.Viewport { return g.viewport }

// Now returns the time of the last tick or keystroke.
func (g *Game) Now() time.Duration { return g.now }

// Settings returns the difficulty settings of the current level.
func (g *Game) Settings() difficulty.Settings { return g.difficulty.Current() }

// StartGame begins play from the ready state. It returns false in any
// other state; use RestartGame there.
func (g *Game) StartGame(now time.Duration) bool {
	if g.state != StateReady {
		return false
	}
	g.reset(now)
	return true
}

// RestartGame starts a new game from any state. The inventory is cleared.
func (g *Game) RestartGame(now time.Duration) {
	g.reset(now)
}

func (g *Game) reset(now time.Duration) {
	g.now = now
	g.words.Reset()
	g.powerups.Reset()
	g.score.ResetAll()
	g.matcher.Reset()
	g.difficulty.SetLevel(g.startLevel)
	g.beginLevel(now)
	g.log.Info("game started", "seed", g.seed, "mode", g.mode, "level", g.Level())
}

// beginLevel prepares the bank and level counters and starts playing.
func (g *Game) beginLevel(now time.Duration) {
	level := g.difficulty.Level()
	g.bank.StartLevel(level)
	g.bank.Prefetch(context.Background())

	g.cleared = 0
	g.required = g.cfg.Game.WordsToClear(level)
	g.spawned = false
	g.lastSpawn = now
	g.lastSeen = now
	g.state = StatePlaying
	g.queue.push(Event{Kind: EventLevelStarted, Time: now, Level: level})
}

// clearField removes every word, stops timed effects and resets the
// buffer. The inventory is kept.
func (g *Game) clearField(now time.Duration) {
	for _, w := range g.words.RemoveAll() {
		g.queue.push(Event{Kind: EventWordRemoved, Time: now, WordID: w.ID, Text: w.Text})
	}
	g.powerups.ClearActive()
	g.matcher.Reset()
	g.score.ClearTracking()
}

// CompleteLevel finishes the current level. In campaign mode the last
// level wins the game. Returns false unless playing.
func (g *Game) CompleteLevel() bool {
	if g.state != StatePlaying {
		return false
	}
	level := g.difficulty.Level()
	rec := g.score.CompleteLevel(level)
	g.clearField(g.now)
	g.queue.push(Event{Kind: EventLevelCompleted, Time: g.now, Level: level, Score: rec.Score})
	g.log.Info("level completed", "level", level, "score", rec.Score, "words", rec.WordCount)

	if g.mode == ModeCampaign && level >= g.difficulty.MaxLevel() {
		g.state = StateWon
		g.queue.push(Event{Kind: EventGameWon, Time: g.now, Score: g.score.ScoreData().TotalScore})
		return true
	}
	g.state = StateLevelComplete
	return true
}

// AdvanceLevel starts the next level after CompleteLevel. The inventory is
// preserved. Returns false unless a level was just completed.
func (g *Game) AdvanceLevel(now time.Duration) bool {
	if g.state != StateLevelComplete {
		return false
	}
	g.now = now
	g.difficulty.IncreaseLevel()
	g.beginLevel(now)
	return true
}

// OnTick advances the simulation to now and returns the events produced
// since the previous drain.
func (g *Game) OnTick(now, delta time.Duration) []Event {
	g.now = now
	for _, m := range g.managers() {
		m.Update(now, delta)
	}
	if g.state != StatePlaying {
		return g.queue.drain()
	}

	for _, k := range g.powerups.Tick(now) {
		g.queue.powerUp(EventPowerUpExpired, now, k)
	}

	frozen := g.powerups.IsFreezeActive()
	arrived := g.words.Tick(delta, frozen, g.powerups.SlowFactor())
	if !frozen && delta > 0 && g.words.Len() > 0 {
		g.queue.push(Event{Kind: EventWordsMoved, Time: now})
	}

	for _, w := range arrived {
		if g.resolveArrival(w, now) {
			return g.queue.drain()
		}
	}

	g.schedule(now)
	return g.queue.drain()
}

// resolveArrival spends the shield or ends the game. Returns true when
// the game is over.
func (g *Game) resolveArrival(w lifecycle.Word, now time.Duration) bool {
	g.words.Remove(w.ID)
	g.score.StopTracking(w.ID)

	if g.powerups.ConsumeShield() {
		g.queue.push(Event{Kind: EventShieldAbsorbed, Time: now, WordID: w.ID, Text: w.Text})
		g.log.Debug("shield absorbed arrival", "word", w.Text)
		return false
	}

	g.queue.push(Event{Kind: EventWordArrived, Time: now, WordID: w.ID, Text: w.Text})
	g.state = StateGameOver
	g.score.BreakCombo()
	g.matcher.Reset()
	data := g.score.ScoreData()
	g.queue.push(Event{Kind: EventGameOver, Time: now, Level: g.Level(), Score: data.TotalScore})
	g.log.Info("game over", "word", w.Text, "level", g.Level(), "score", data.TotalScore)
	return true
}

// schedule spawns at most one word per tick while below the on-screen cap
// and past the spawn gap. A field that stays empty for the watchdog
// interval forces a spawn regardless of the gap.
func (g *Game) schedule(now time.Duration) {
	if g.words.Len() > 0 {
		g.lastSeen = now
	}

	gc := g.cfg.Game
	due := g.words.Len() < gc.MaxWordsOnScreen && (!g.spawned || now-g.lastSpawn >= gc.MinSpawnGap)
	stalled := g.words.Len() == 0 && now-g.lastSeen >= gc.WatchdogInterval
	if !due && !stalled {
		return
	}
	if stalled && !due {
		g.log.Warn("field empty past watchdog, forcing spawn", "since", now-g.lastSeen)
	}

	w, err := g.words.Spawn(now, g.difficulty, g.bank, g.powerups, g.viewport)
	if err != nil {
		g.log.Error("spawn failed", "error", err)
		return
	}
	g.spawned = true
	g.lastSpawn = now
	g.lastSeen = now

	ev := Event{Kind: EventWordSpawned, Time: now, WordID: w.ID, Text: w.Text}
	if w.IsPowerUp {
		ev.PowerUp = w.PowerUp.String()
	}
	g.queue.push(ev)
}

// OnKeyInput feeds one keystroke and applies its result. Keys outside the
// playing state are ignored.
func (g *Game) OnKeyInput(k input.Key, now time.Duration) input.MatchResult {
	if g.state != StatePlaying {
		return input.MatchResult{}
	}
	g.now = now

	fb := g.matcher.Feed(k, g.words.Words(), g.powerups.Inventory())
	if fb.Ignored {
		return fb.Result
	}
	if fb.TrackWordID != 0 {
		g.score.StartTracking(fb.TrackWordID, now)
	}
	if fb.Miss {
		g.score.RecordMiss()
		g.queue.push(Event{Kind: EventMiss, Time: now, Text: fb.Buffer})
	}

	switch fb.Result.Kind {
	case input.ResultCompleted:
		g.completeWord(fb.Result.WordID, now)
	case input.ResultPowerUp:
		g.activate(fb.Result.PowerUp, now)
	}
	return fb.Result
}

func (g *Game) completeWord(id int, now time.Duration) {
	w, ok := g.words.Remove(id)
	if !core.Invariant(ok, "completed word not in flight", "id", id) {
		return
	}
	rec := g.score.CompleteWord(w, now)
	g.queue.push(Event{Kind: EventWordCompleted, Time: now, WordID: w.ID, Text: w.Text, Score: rec.TotalScore})

	if w.IsPowerUp {
		g.powerups.Collect(w.PowerUp)
		g.score.RecordPowerUpCollected()
		g.queue.powerUp(EventPowerUpCollected, now, w.PowerUp)
	}

	g.cleared++
	if g.cfg.Game.Progression && g.cleared >= g.required {
		g.CompleteLevel()
	}
}

func (g *Game) activate(k powerup.Kind, now time.Duration) {
	if !g.powerups.TryActivate(k, now) {
		return
	}
	g.score.RecordPowerUpUsed()
	g.queue.powerUp(EventPowerUpActivated, now, k)
	g.log.Debug("power-up activated", "kind", k)

	if k == powerup.Bomb {
		for _, w := range g.words.RemoveAll() {
			g.score.StopTracking(w.ID)
			g.queue.push(Event{Kind: EventWordRemoved, Time: now, WordID: w.ID, Text: w.Text})
		}
	}
}

// Destroy releases every sub-engine, cancelling any word fetch.
func (g *Game) Destroy() {
	for _, m := range append(g.managers(), g.powerups, g.words) {
		m.Destroy()
	}
}
