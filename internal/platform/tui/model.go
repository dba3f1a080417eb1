package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/input"
)

// Model is the Bubble Tea model for one typefall game. Game time advances
// by a fixed step per tick, so pausing simply stops the clock.
type Model struct {
	game        *engine.Game
	screen      *core.Screen
	config      core.RuntimeConfig
	keys        GameKeyMap
	help        help.Model
	results     ResultsModel
	now         time.Duration
	paused      bool
	showResults bool
	quitting    bool
}

// NewModel creates a model driving game. The screen keeps one row for the
// help line.
func NewModel(game *engine.Game, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	h := help.New()
	h.Width = cfg.ScreenW
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		config: cfg,
		keys:   DefaultGameKeyMap(),
		help:   h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey routes control bindings and types everything else.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.game.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.game.RestartGame(m.now)
		m.paused = false
		m.showResults = false
		return m, nil

	case key.Matches(msg, m.keys.Results):
		if isOver(state) {
			m.showResults = !m.showResults
			if m.showResults {
				m.results = NewResultsModel(m.game.ScoreData(), m.config.ScreenW, m.config.ScreenH)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if state == engine.StatePlaying {
			m.paused = !m.paused
		}
		return m, nil
	}

	if m.showResults {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	if state != engine.StatePlaying {
		if key.Matches(msg, m.keys.Advance) {
			switch state {
			case engine.StateReady:
				m.game.StartGame(m.now)
			case engine.StateLevelComplete:
				m.game.AdvanceLevel(m.now)
			}
		}
		return m, nil
	}

	if m.paused {
		return m, nil
	}
	if k, ok := input.ParseKey(msg.String()); ok {
		m.game.OnKeyInput(k, m.now)
	}
	return m, nil
}

// handleResize resizes the screen. The world keeps its size; only the
// projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width
	if m.showResults {
		m.results, _ = m.results.Update(msg)
	}
	return m, nil
}

// handleTick advances the game clock by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if !m.paused {
		step := frameStep(m.config.TickRate)
		m.now += step
		m.game.OnTick(m.now, step)
	}
	return m, tickCmd(m.config.TickRate)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showResults {
		return m.results.View()
	}

	DrawGame(m.screen, m.game.Snapshot(), m.game.Viewport(), m.paused)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Now returns the game clock.
func (m Model) Now() time.Duration {
	return m.now
}

// Paused reports whether the clock is stopped.
func (m Model) Paused() bool {
	return m.paused
}

func isOver(s engine.State) bool {
	return s == engine.StateGameOver || s == engine.StateWon
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game *engine.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
