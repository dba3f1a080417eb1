package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/wordbank"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.typefall/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the configuration every session plays with.
	Game config.Config

	// Provider feeds every session's word bank. Nil uses the built-in lists.
	Provider wordbank.Provider

	Mode       engine.Mode
	StartLevel int
	TickRate   int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultConfig(),
		Mode:        engine.ModeCampaign,
		StartLevel:  1,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server hosting one game per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "typefall-ssh",
	})

	if err := config.Validate(cfg.Game); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".typefall", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a fresh game and model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sess, _ := sshSession.Context().Value(sessionKey{}).(*session)
	if sess == nil {
		sess = &session{id: uuid.NewString()}
	}
	game, err := s.newGame(sess.id)
	if err != nil {
		s.logger.Error("cannot create game", "session", sess.id, "error", err)
		return nil, nil
	}
	sess.game = game

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     game.Seed(),
	}

	return NewModel(game, rc), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) newGame(sessionID string) (*engine.Game, error) {
	return engine.New(s.config.Game,
		engine.WithSeed(0),
		engine.WithMode(s.config.Mode),
		engine.WithStartLevel(s.config.StartLevel),
		engine.WithProvider(s.config.Provider),
		engine.WithLogger(s.logger.With("session", sessionID)),
	)
}

type sessionKey struct{}

// session tracks the game owned by one connection.
type session struct {
	id   string
	game *engine.Game
}

// loggingMiddleware tags each session with an ID, logs its lifetime and
// releases its game once the program exits.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		sess := &session{id: uuid.NewString()}
		id := sess.id
		sshSession.Context().SetValue(sessionKey{}, sess)

		started := time.Now()
		s.logger.Info("session started",
			"session", id,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		if sess.game != nil {
			s.logger.Info("session score", "session", id, "score", sess.game.ScoreData().TotalScore, "level", sess.game.Level())
			sess.game.Destroy()
		}
		s.logger.Info("session ended",
			"session", id,
			"user", sshSession.User(),
			"duration", time.Since(started).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
