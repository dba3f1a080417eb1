package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/engine"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.PowerUps.SpawnChance = 0
	cfg.Game.MaxWordsOnScreen = 1

	game, err := engine.New(cfg, engine.WithSeed(7))
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	t.Cleanup(game.Destroy)
	return NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartAndType(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, TickMsg{})
	if m.game.State() != engine.StateReady {
		t.Fatalf("State() = %s, expected ready before enter", m.game.State())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game.State() != engine.StatePlaying {
		t.Fatalf("State() = %s, expected playing after enter", m.game.State())
	}

	m = send(t, m, TickMsg{})
	words := m.game.Words()
	if len(words) != 1 {
		t.Fatalf("len(Words()) = %d, expected 1", len(words))
	}
	for _, r := range words[0].Text {
		m = send(t, m, runes(string(r)))
	}
	if got := m.game.ScoreData().TotalWords; got != 1 {
		t.Errorf("TotalWords = %d, expected 1", got)
	}
}

func TestModelPauseStopsClock(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, TickMsg{})
	before := m.Now()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Paused() {
		t.Fatal("esc should pause")
	}
	m = send(t, m, TickMsg{})
	m = send(t, m, runes("x"))
	if m.Now() != before {
		t.Errorf("Now() = %v while paused, expected %v", m.Now(), before)
	}
	if m.game.Buffer() != "" {
		t.Errorf("Buffer() = %q, keys should be ignored while paused", m.game.Buffer())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = send(t, m, TickMsg{})
	if m.Now() != before+frameStep(60) {
		t.Errorf("Now() = %v after resume, expected %v", m.Now(), before+frameStep(60))
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.game.State() != engine.StatePlaying {
		t.Errorf("State() = %s, expected playing after restart", m.game.State())
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
	if m.View() == "" {
		t.Error("View() should not be empty")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestKeyMapLettersAreTyped(t *testing.T) {
	km := DefaultGameKeyMap()
	var all []key.Binding
	for _, row := range km.FullHelp() {
		all = append(all, row...)
	}
	for _, r := range "abcdefghijklmnopqrstuvwxyz" {
		msg := runes(string(r))
		for _, b := range all {
			if key.Matches(msg, b) {
				t.Errorf("letter %q matches control binding %v", r, b.Keys())
			}
		}
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Advance) {
		t.Error("enter should match Advance")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit) {
		t.Error("ctrl+c should match Quit")
	}
}
