package web

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/engine"
)

type recorder struct {
	frames []Frame
}

func (r *recorder) send(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func newTestSession(t *testing.T) (*session, *recorder) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.PowerUps.SpawnChance = 0
	cfg.Game.MaxWordsOnScreen = 1

	game, err := engine.New(cfg, engine.WithSeed(3))
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	t.Cleanup(game.Destroy)

	rec := &recorder{}
	logger := NewLogger(io.Discard, slog.LevelDebug)
	return newSession("test", game, time.Second/30, rec.send, logger), rec
}

func TestSessionPlay(t *testing.T) {
	s, rec := newTestSession(t)

	if err := s.apply(ClientMsg{Event: EventStart}); err != nil {
		t.Fatalf("apply(start) failed: %v", err)
	}
	if err := s.tick(); err != nil {
		t.Fatalf("tick() failed: %v", err)
	}
	if len(rec.frames) != 1 || rec.frames[0].Type != FrameState {
		t.Fatalf("frames = %+v, expected one state frame", rec.frames)
	}
	snap := rec.frames[0].Snapshot
	if snap == nil || len(snap.Words) != 1 {
		t.Fatalf("snapshot = %+v, expected one word", snap)
	}

	for _, r := range snap.Words[0].Text {
		if err := s.apply(ClientMsg{Event: EventKey, Key: string(r)}); err != nil {
			t.Fatalf("apply(key %q) failed: %v", r, err)
		}
	}
	s.tick()
	last := rec.frames[len(rec.frames)-1]
	if last.Snapshot.Score == 0 {
		t.Error("score should be positive after typing the word")
	}
	completed := false
	for _, e := range last.Events {
		if e.Kind == engine.EventWordCompleted {
			completed = true
		}
	}
	if !completed {
		t.Errorf("events = %v, expected a completion", last.Events)
	}
}

func TestSessionRejects(t *testing.T) {
	s, _ := newTestSession(t)

	tests := []ClientMsg{
		{Event: EventAdvance},
		{Event: EventKey, Key: "f7"},
		{Event: "jump"},
	}
	for _, msg := range tests {
		if err := s.apply(msg); err == nil {
			t.Errorf("apply(%+v) should fail", msg)
		}
	}

	s.apply(ClientMsg{Event: EventStart})
	if err := s.apply(ClientMsg{Event: EventStart}); err == nil {
		t.Error("second start should fail")
	}
	if err := s.apply(ClientMsg{Event: EventRestart}); err != nil {
		t.Errorf("restart failed: %v", err)
	}
}

func TestSessionRun(t *testing.T) {
	s, rec := newTestSession(t)

	in := make(chan ClientMsg, 4)
	ticks := make(chan time.Time)
	done := make(chan error, 1)
	go func() { done <- s.run(context.Background(), in, ticks) }()

	in <- ClientMsg{Event: EventStart}
	ticks <- time.Time{}
	in <- ClientMsg{Event: EventAdvance}
	close(in)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() = %v, expected nil on closed input", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run() did not return")
	}

	if len(rec.frames) != 3 {
		t.Fatalf("len(frames) = %d, expected hello, state and error", len(rec.frames))
	}
	want := []FrameType{FrameHello, FrameState, FrameError}
	for i, f := range rec.frames {
		if f.Type != want[i] {
			t.Errorf("frame %d type = %s, expected %s", i, f.Type, want[i])
		}
	}
	if rec.frames[0].Session != "test" || rec.frames[0].Seed != 3 {
		t.Errorf("hello = %+v", rec.frames[0])
	}
}
