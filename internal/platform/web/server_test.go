package web

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Logger = NewLogger(io.Discard, slog.LevelDebug)
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	return s
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
	if err != nil {
		t.Fatalf("Test() failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, expected 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestLevels(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/levels", nil))
	if err != nil {
		t.Fatalf("Test() failed: %v", err)
	}
	var levels []LevelInfo
	if err := json.NewDecoder(resp.Body).Decode(&levels); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(levels) != 5 {
		t.Fatalf("len(levels) = %d, expected 5", len(levels))
	}
	if levels[0].WordsToClear != 10 || levels[1].WordsToClear != 15 {
		t.Errorf("WordsToClear = %d, %d, expected 10, 15", levels[0].WordsToClear, levels[1].WordsToClear)
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].BaseWordScore < levels[i-1].BaseWordScore {
			t.Errorf("level %d budget %d below level %d", levels[i].Level, levels[i].BaseWordScore, levels[i-1].Level)
		}
	}
}

func TestPlayRequiresUpgrade(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/ws/play", nil))
	if err != nil {
		t.Fatalf("Test() failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("status = %d, expected 426", resp.StatusCode)
	}
}

func TestDecode(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"start", `{"e":"start"}`, true},
		{"key", `{"e":"key","k":"a"}`, true},
		{"backspace", `{"e":"key","k":"backspace"}`, true},
		{"key without value", `{"e":"key"}`, false},
		{"unknown event", `{"e":"jump"}`, false},
		{"missing event", `{"k":"a"}`, false},
		{"malformed", `{"e":`, false},
		{"long key", `{"e":"key","k":"abcdefghijklmnopqrstuvwxyz"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.decode([]byte(tt.data))
			if (err == nil) != tt.valid {
				t.Errorf("decode(%s) error = %v, expected valid=%v", tt.data, err, tt.valid)
			}
		})
	}
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.Game.MaxWordsOnScreen = 0
	if _, err := NewServer(cfg); err == nil {
		t.Error("NewServer() should reject an invalid game config")
	}
}
