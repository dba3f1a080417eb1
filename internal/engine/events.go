package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/typefall/internal/powerup"
)

// EventKind identifies what happened during a tick or keystroke.
type EventKind int

const (
	EventWordSpawned EventKind = iota
	EventWordsMoved
	EventWordCompleted
	EventWordRemoved
	EventShieldAbsorbed
	EventWordArrived
	EventMiss
	EventPowerUpCollected
	EventPowerUpActivated
	EventPowerUpExpired
	EventLevelCompleted
	EventLevelStarted
	EventGameOver
	EventGameWon
)

var eventNames = map[EventKind]string{
	EventWordSpawned:      "spawned",
	EventWordsMoved:       "moved",
	EventWordCompleted:    "completed",
	EventWordRemoved:      "removed",
	EventShieldAbsorbed:   "shield_absorbed",
	EventWordArrived:      "arrived",
	EventMiss:             "miss",
	EventPowerUpCollected: "powerup_collected",
	EventPowerUpActivated: "powerup_activated",
	EventPowerUpExpired:   "powerup_expired",
	EventLevelCompleted:   "level_completed",
	EventLevelStarted:     "level_started",
	EventGameOver:         "game_over",
	EventGameWon:          "game_won",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// MarshalText encodes the kind by name for JSON frames.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is one entry of the per-tick event queue. Only the fields relevant
// to the kind are set.
type Event struct {
	Kind    EventKind     `json:"kind"`
	Time    time.Duration `json:"-"`
	At      int64         `json:"at"` // milliseconds, mirrors Time
	WordID  int           `json:"word,omitempty"`
	Text    string        `json:"text,omitempty"`
	PowerUp string        `json:"powerup,omitempty"`
	Score   int           `json:"score,omitempty"`
	Level   int           `json:"level,omitempty"`
}

func (e Event) String() string {
	switch {
	case e.Text != "":
		return fmt.Sprintf("%s %q", e.Kind, e.Text)
	case e.PowerUp != "":
		return fmt.Sprintf("%s %s", e.Kind, e.PowerUp)
	case e.Level > 0:
		return fmt.Sprintf("%s level=%d", e.Kind, e.Level)
	default:
		return e.Kind.String()
	}
}

// queue collects events between drains.
type queue struct {
	events []Event
}

func (q *queue) push(e Event) {
	e.At = e.Time.Milliseconds()
	q.events = append(q.events, e)
}

func (q *queue) powerUp(kind EventKind, now time.Duration, k powerup.Kind) {
	q.push(Event{Kind: kind, Time: now, PowerUp: k.String()})
}

// drain returns the queued events and empties the queue.
func (q *queue) drain() []Event {
	out := q.events
	q.events = nil
	return out
}
