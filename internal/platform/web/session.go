package web

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/input"
)

// session drives one game for one socket. Game time advances by a fixed
// step per tick, independent of wall-clock jitter.
type session struct {
	id   string
	game *engine.Game
	step time.Duration
	now  time.Duration
	send func(Frame) error
	log  *slog.Logger
}

func newSession(id string, game *engine.Game, step time.Duration, send func(Frame) error, logger *slog.Logger) *session {
	return &session{
		id:   id,
		game: game,
		step: step,
		send: send,
		log:  logger.With("session", id),
	}
}

// hello announces the session and the starting state.
func (s *session) hello() error {
	snap := s.game.Snapshot()
	return s.send(Frame{Type: FrameHello, Session: s.id, Seed: s.game.Seed(), Snapshot: &snap})
}

// apply handles one validated client message.
func (s *session) apply(msg ClientMsg) error {
	switch msg.Event {
	case EventStart:
		if !s.game.StartGame(s.now) {
			return fmt.Errorf("cannot start in state %s", s.game.State())
		}
	case EventAdvance:
		if !s.game.AdvanceLevel(s.now) {
			return fmt.Errorf("cannot advance in state %s", s.game.State())
		}
	case EventRestart:
		s.game.RestartGame(s.now)
	case EventKey:
		k, ok := input.ParseKey(msg.Key)
		if !ok {
			return fmt.Errorf("unknown key %q", msg.Key)
		}
		s.game.OnKeyInput(k, s.now)
	default:
		return fmt.Errorf("unknown event %q", msg.Event)
	}
	return nil
}

// tick advances the clock one step and sends the resulting frame.
func (s *session) tick() error {
	s.now += s.step
	events := s.game.OnTick(s.now, s.step)
	snap := s.game.Snapshot()
	for _, e := range events {
		switch e.Kind {
		case engine.EventLevelCompleted, engine.EventGameOver, engine.EventGameWon:
			s.log.Info("game event", "event", e.Kind.String(), "level", snap.Level, "score", snap.Score)
		}
	}
	return s.send(Frame{Type: FrameState, Events: events, Snapshot: &snap})
}

// run multiplexes client messages and ticks until the context ends, the
// input channel closes or a send fails.
func (s *session) run(ctx context.Context, in <-chan ClientMsg, ticks <-chan time.Time) error {
	if err := s.hello(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-in:
			if !ok {
				return nil
			}
			if err := s.apply(msg); err != nil {
				s.log.Debug("rejected message", "event", msg.Event, "error", err)
				if err := s.send(Frame{Type: FrameError, Err: err.Error()}); err != nil {
					return err
				}
			}
		case <-ticks:
			if err := s.tick(); err != nil {
				return err
			}
		}
	}
}
