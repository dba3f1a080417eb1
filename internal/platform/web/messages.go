package web

import "github.com/vovakirdan/typefall/internal/engine"

// ClientEvent is the action a browser asks for.
type ClientEvent string

const (
	EventStart   ClientEvent = "start"
	EventKey     ClientEvent = "key"
	EventAdvance ClientEvent = "advance"
	EventRestart ClientEvent = "restart"
)

// ClientMsg is one message read from the socket. Key uses the names
// input.ParseKey accepts: a single letter, "backspace", "enter" or "space".
type ClientMsg struct {
	Event ClientEvent `json:"e" validate:"required,oneof=start key advance restart"`
	Key   string      `json:"k" validate:"required_if=Event key,max=16"`
}

// FrameType tags server frames.
type FrameType string

const (
	FrameHello FrameType = "hello"
	FrameState FrameType = "state"
	FrameError FrameType = "error"
)

// Frame is one message written to the socket.
type Frame struct {
	Type     FrameType        `json:"t"`
	Session  string           `json:"id,omitempty"`
	Seed     int64            `json:"seed,omitempty"`
	Events   []engine.Event   `json:"ev,omitempty"`
	Snapshot *engine.Snapshot `json:"s,omitempty"`
	Err      string           `json:"err,omitempty"`
}

// LevelInfo describes one level for the levels endpoint.
type LevelInfo struct {
	Level            int `json:"level"`
	WordsToClear     int `json:"words_to_clear"`
	BaseWordScore    int `json:"base_word_score"`
	MaxSpeed         int `json:"max_speed"`
	MaxLength        int `json:"max_length"`
	MaxModifierScore int `json:"max_modifier_score"`
}
