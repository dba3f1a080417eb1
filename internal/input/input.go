// Package input turns keystrokes into a typing buffer and resolves that
// buffer against the in-flight words and the power-up inventory.
package input

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/typefall/internal/lifecycle"
	"github.com/vovakirdan/typefall/internal/powerup"
)

// Special identifies a non-character key.
type Special int

const (
	KeyRune Special = iota
	KeyBackspace
	KeyEnter
	KeySpace
)

// Key is a single keystroke.
type Key struct {
	Special Special
	Rune    rune
}

// Char returns the key for a printable rune.
func Char(r rune) Key {
	if r == ' ' {
		return Key{Special: KeySpace}
	}
	return Key{Special: KeyRune, Rune: r}
}

var (
	Backspace = Key{Special: KeyBackspace}
	Enter     = Key{Special: KeyEnter}
)

// ParseKey converts a key name to a Key. It accepts "backspace", "enter",
// "space" and any single rune. Front ends use it for terminal key strings,
// websocket messages and replay scripts.
func ParseKey(s string) (Key, bool) {
	switch strings.ToLower(s) {
	case "backspace", "ctrl+h":
		return Backspace, true
	case "enter", "return":
		return Enter, true
	case "space", " ":
		return Key{Special: KeySpace}, true
	}
	if utf8.RuneCountInString(s) != 1 {
		return Key{}, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return Char(r), true
}

// String returns the key name accepted by ParseKey.
func (k Key) String() string {
	switch k.Special {
	case KeyBackspace:
		return "backspace"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	default:
		return string(k.Rune)
	}
}

// ResultKind classifies a match.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultPartial
	ResultPowerUp
	ResultCompleted
)

func (k ResultKind) String() string {
	switch k {
	case ResultPartial:
		return "partial"
	case ResultPowerUp:
		return "powerup"
	case ResultCompleted:
		return "completed"
	default:
		return "none"
	}
}

// MatchResult is the outcome of resolving the buffer.
// WordID is set for partial and completed results, PowerUp for activations.
type MatchResult struct {
	Kind    ResultKind
	WordID  int
	PowerUp powerup.Kind
}

// Resolve matches buffer against words and inventory. Priority: an
// available power-up name, then an exact word (closest wins), then a strict
// prefix (closest wins).
func Resolve(buffer string, words []lifecycle.Word, inv powerup.Inventory) MatchResult {
	if buffer == "" {
		return MatchResult{}
	}

	if k, ok := powerup.ParseKind(buffer); ok && inv[k] > 0 {
		return MatchResult{Kind: ResultPowerUp, PowerUp: k}
	}

	if w, ok := closest(words, func(text string) bool { return text == buffer }); ok {
		return MatchResult{Kind: ResultCompleted, WordID: w.ID}
	}

	if w, ok := closest(words, func(text string) bool {
		return len(text) > len(buffer) && strings.HasPrefix(text, buffer)
	}); ok {
		return MatchResult{Kind: ResultPartial, WordID: w.ID}
	}

	return MatchResult{}
}

// closest returns the matching word nearest its target. Ties go to the
// older word.
func closest(words []lifecycle.Word, match func(string) bool) (lifecycle.Word, bool) {
	var (
		best  lifecycle.Word
		found bool
	)
	for _, w := range words {
		if !match(w.Text) {
			continue
		}
		if !found || w.DistanceToTarget() < best.DistanceToTarget() ||
			(w.DistanceToTarget() == best.DistanceToTarget() && w.ID < best.ID) {
			best = w
			found = true
		}
	}
	return best, found
}

// Feedback describes what a keystroke did.
type Feedback struct {
	Result MatchResult
	// Ignored is set for keys the matcher does not understand.
	Ignored bool
	// Miss is set when an appended rune leaves a buffer that matches nothing.
	Miss bool
	// TrackWordID names the word to start speed tracking for, or 0.
	TrackWordID int
	Buffer      string
}

// Matcher holds the typing buffer for one game.
type Matcher struct {
	buf []rune
}

// NewMatcher creates a matcher with an empty buffer.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Buffer returns the current buffer.
func (m *Matcher) Buffer() string {
	return string(m.buf)
}

// Reset clears the buffer.
func (m *Matcher) Reset() {
	m.buf = m.buf[:0]
}

// Feed applies one keystroke and resolves the resulting buffer. The buffer
// is cleared after a completion or a power-up activation.
func (m *Matcher) Feed(k Key, words []lifecycle.Word, inv powerup.Inventory) Feedback {
	wasEmpty := len(m.buf) == 0
	appended := false

	switch k.Special {
	case KeyBackspace:
		if len(m.buf) > 0 {
			m.buf = m.buf[:len(m.buf)-1]
		}
	case KeyEnter:
		m.Reset()
	case KeySpace:
		return Feedback{Ignored: true, Buffer: m.Buffer()}
	case KeyRune:
		if !unicode.IsPrint(k.Rune) || unicode.IsSpace(k.Rune) {
			return Feedback{Ignored: true, Buffer: m.Buffer()}
		}
		m.buf = append(m.buf, unicode.ToLower(k.Rune))
		appended = true
	default:
		return Feedback{Ignored: true, Buffer: m.Buffer()}
	}

	buffer := m.Buffer()
	fb := Feedback{Result: Resolve(buffer, words, inv)}

	if appended && wasEmpty {
		if w, ok := closest(words, func(text string) bool { return strings.HasPrefix(text, buffer) }); ok {
			fb.TrackWordID = w.ID
		}
	}

	if appended && fb.Result.Kind == ResultNone && !powerUpPrefix(buffer, inv) {
		fb.Miss = true
	}

	switch fb.Result.Kind {
	case ResultCompleted, ResultPowerUp:
		m.Reset()
	}
	fb.Buffer = m.Buffer()
	return fb
}

// powerUpPrefix reports whether buffer is on the way to an available
// power-up name.
func powerUpPrefix(buffer string, inv powerup.Inventory) bool {
	for _, k := range powerup.Kinds {
		if inv[k] > 0 && strings.HasPrefix(k.String(), buffer) {
			return true
		}
	}
	return false
}
