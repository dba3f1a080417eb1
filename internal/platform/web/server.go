// Package web serves typefall to browsers: a small JSON API and a
// websocket that runs one game per connection.
package web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	fiberWS "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/difficulty"
	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/wordbank"
)

// Config holds configuration for the web server.
type Config struct {
	Addr       string
	Game       config.Config
	Provider   wordbank.Provider // nil uses the built-in lists
	Mode       engine.Mode
	StartLevel int
	TickRate   int
	Seed       int64 // 0 gives every session a time-based seed

	Logger       *slog.Logger
	EngineLogger *log.Logger // optional, tagged per session
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:       ":8800",
		Game:       config.DefaultConfig(),
		Mode:       engine.ModeCampaign,
		StartLevel: 1,
		TickRate:   30,
	}
}

// NewLogger returns a colored slog logger.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// Server is the fiber application plus its session bookkeeping.
type Server struct {
	cfg      Config
	app      *fiber.App
	validate *validator.Validate
	log      *slog.Logger
	sessions atomic.Int64
}

// NewServer builds the application and its routes.
func NewServer(cfg Config) (*Server, error) {
	if err := config.Validate(cfg.Game); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      cfg.Logger,
	}

	s.app = fiber.New(fiber.Config{
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	s.app.Use(func(c *fiber.Ctx) error {
		s.log.Debug("request", "ip", c.IP(), "path", c.Path())
		return c.Next()
	})

	v1 := s.app.Group("/api/v1")
	v1.Get("/health", s.health)
	v1.Get("/levels", s.levels)

	wsGr := v1.Group("/ws")
	wsGr.Use(UpgradeWall)
	wsGr.Get("/play", s.play())

	return s, nil
}

// App exposes the fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the context is cancelled.
func (s *Server) Listen(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errc <- s.app.Listen(s.cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down", "sessions", s.sessions.Load())
		return s.app.ShutdownWithTimeout(10 * time.Second)
	}
}

// UpgradeWall rejects plain HTTP requests to websocket routes.
func UpgradeWall(c *fiber.Ctx) error {
	if fiberWS.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"sessions": s.sessions.Load(),
	})
}

func (s *Server) levels(c *fiber.Ctx) error {
	mgr := difficulty.NewManager(s.cfg.Game.Difficulty, core.NewRand(1))
	out := make([]LevelInfo, 0, mgr.MaxLevel())
	for l := 1; l <= mgr.MaxLevel(); l++ {
		st := mgr.LevelSettings(l)
		out = append(out, LevelInfo{
			Level:            l,
			WordsToClear:     s.cfg.Game.Game.WordsToClear(l),
			BaseWordScore:    st.BaseWordScore,
			MaxSpeed:         st.MaxSpeed,
			MaxLength:        st.MaxLength,
			MaxModifierScore: st.MaxModifierScore,
		})
	}
	return c.JSON(out)
}

func (s *Server) newGame(id string) (*engine.Game, error) {
	opts := []engine.Option{
		engine.WithSeed(s.cfg.Seed),
		engine.WithMode(s.cfg.Mode),
		engine.WithStartLevel(s.cfg.StartLevel),
		engine.WithProvider(s.cfg.Provider),
	}
	if s.cfg.EngineLogger != nil {
		opts = append(opts, engine.WithLogger(s.cfg.EngineLogger.With("session", id)))
	}
	return engine.New(s.cfg.Game, opts...)
}

// decode parses and validates one client message.
func (s *Server) decode(data []byte) (ClientMsg, error) {
	var msg ClientMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("malformed message: %w", err)
	}
	if err := s.validate.Struct(msg); err != nil {
		return msg, fmt.Errorf("invalid message: %w", err)
	}
	return msg, nil
}

func (s *Server) play() fiber.Handler {
	return fiberWS.New(func(c *fiberWS.Conn) {
		id := uuid.NewString()
		game, err := s.newGame(id)
		if err != nil {
			s.log.Error("play:newGame", "error", err)
			return
		}
		defer game.Destroy()

		s.sessions.Add(1)
		defer s.sessions.Add(-1)
		s.log.Info("session started", "session", id, "ip", c.IP(), "seed", game.Seed())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		send := func(f Frame) error {
			data, err := json.Marshal(f)
			if err != nil {
				return err
			}
			return c.WriteMessage(fiberWS.TextMessage, data)
		}
		sess := newSession(id, game, time.Second/time.Duration(s.cfg.TickRate), send, s.log)

		in := make(chan ClientMsg, 16)
		go s.readLoop(ctx, c, in)

		ticker := time.NewTicker(sess.step)
		defer ticker.Stop()

		if err := sess.run(ctx, in, ticker.C); err != nil {
			s.log.Debug("session stopped", "session", id, "error", err)
		}
		s.log.Info("session ended", "session", id, "score", game.ScoreData().TotalScore, "level", game.Level())
	})
}

// readLoop forwards valid messages until the socket fails. Invalid
// messages are logged and skipped.
func (s *Server) readLoop(ctx context.Context, c *fiberWS.Conn, in chan<- ClientMsg) {
	defer close(in)
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}
		msg, err := s.decode(data)
		if err != nil {
			s.log.Debug("readLoop:decode", "error", err)
			continue
		}
		select {
		case in <- msg:
		case <-ctx.Done():
			return
		}
	}
}
