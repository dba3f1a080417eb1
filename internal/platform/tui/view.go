package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/typefall/internal/core"
	"github.com/vovakirdan/typefall/internal/engine"
	"github.com/vovakirdan/typefall/internal/powerup"
)

const (
	warnProgress = 0.75 // words past this share of their trip turn orange
	blinkPeriod  = 400  // ms per blink phase
	shakePeriod  = 80   // ms per shake step
)

var shakeOffsets = [...]int{-1, 0, 1, 0}

// FieldRect returns the playfield box for a screen size. Row 0 holds the
// HUD and the last row the input line.
func FieldRect(width, height int) core.Rect {
	return core.NewRect(0, 1, width, height-2)
}

// Project maps a world position into the interior of the field box.
// Positions outside the viewport are clamped to the border.
func Project(p core.Vec2, vp core.Viewport, field core.Rect) (x, y int) {
	innerW, innerH := field.W-2, field.H-2
	if innerW < 1 || innerH < 1 || !vp.Valid() {
		return field.X, field.Y
	}
	fx := core.ClampF(p.X/vp.Width, 0, 1)
	fy := core.ClampF(p.Y/vp.Height, 0, 1)
	x = field.X + 1 + int(math.Round(fx*float64(innerW-1)))
	y = field.Y + 1 + int(math.Round(fy*float64(innerH-1)))
	return x, y
}

// DrawGame renders a snapshot into s.
func DrawGame(s *core.Screen, snap engine.Snapshot, vp core.Viewport, paused bool) {
	s.Clear()
	if s.Width() < 20 || s.Height() < 8 {
		s.DrawText(0, 0, "terminal too small", core.ColorWarning)
		return
	}

	field := FieldRect(s.Width(), s.Height())
	drawHUD(s, snap)
	s.DrawBox(field, core.ColorDim)

	frozen, slowed := false, false
	for _, eff := range snap.Effects {
		switch eff.Kind {
		case powerup.Freeze.String():
			frozen = true
		case powerup.Slow.String():
			slowed = true
		}
	}

	tracked := trackedWord(snap)
	for _, w := range snap.Words {
		drawWord(s, w, snap, vp, field, w.ID == tracked, frozen, slowed)
	}

	tx, ty := Project(vp.Center(), vp, field)
	if snap.Shield {
		s.DrawText(tx-1, ty, "(@)", core.ColorShield)
	} else {
		s.Set(tx, ty, '@', core.ColorTarget)
	}

	s.DrawText(0, s.Height()-1, "> "+snap.Buffer, core.ColorTyped)
	s.Set(2+len([]rune(snap.Buffer)), s.Height()-1, '_', core.ColorDim)

	if lines, c := overlayLines(snap, paused); lines != nil {
		drawOverlay(s, lines, c)
	}
}

func drawHUD(s *core.Screen, snap engine.Snapshot) {
	left := fmt.Sprintf("LV %d/%d  SCORE %d  COMBO x%d  WORDS %d/%d",
		snap.Level, snap.MaxLevel, snap.Score, snap.Combo, snap.Cleared, snap.Required)
	if snap.Mode == engine.ModeEndless {
		left = fmt.Sprintf("LV %d  SCORE %d  COMBO x%d  WORDS %d/%d",
			snap.Level, snap.Score, snap.Combo, snap.Cleared, snap.Required)
	}
	s.DrawText(0, 0, left, core.ColorDefault)

	var parts []string
	for _, eff := range snap.Effects {
		parts = append(parts, fmt.Sprintf("%s %.1fs", strings.ToUpper(eff.Kind), float64(eff.Remaining)/1000))
	}
	for _, k := range powerup.Kinds {
		if n := snap.Inventory[k.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", k, n))
		}
	}
	right := strings.Join(parts, "  ")
	s.DrawText(s.Width()-len([]rune(right)), 0, right, core.ColorPowerUp)
}

// trackedWord returns the ID of the word the buffer is heading for: the
// one closest to the target among those starting with the buffer.
func trackedWord(snap engine.Snapshot) int {
	if snap.Buffer == "" {
		return 0
	}
	best, bestProgress := 0, -1.0
	for _, w := range snap.Words {
		if strings.HasPrefix(w.Text, snap.Buffer) && w.Progress > bestProgress {
			best, bestProgress = w.ID, w.Progress
		}
	}
	return best
}

func drawWord(s *core.Screen, w engine.WordView, snap engine.Snapshot, vp core.Viewport, field core.Rect, tracked, frozen, slowed bool) {
	base := core.ColorWord
	switch {
	case frozen:
		base = core.ColorFrozen
	case slowed:
		base = core.ColorSlowed
	case w.PowerUp != "":
		base = core.ColorPowerUp
	case w.Progress >= warnProgress:
		base = core.ColorWarning
	}
	if w.Blinking && (snap.At/blinkPeriod)%2 == 1 {
		base = core.ColorDim
	}

	runes := []rune(w.Text)
	colors := make([]core.Color, len(runes))
	typed := 0
	if tracked {
		typed = len([]rune(snap.Buffer))
	}
	for i := range runes {
		switch {
		case i < typed:
			colors[i] = core.ColorTyped
		case tracked:
			colors[i] = core.ColorTracked
		default:
			colors[i] = base
		}
	}
	if w.Flipped {
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
			colors[i], colors[j] = colors[j], colors[i]
		}
	}

	x, y := Project(core.Vec2{X: w.X, Y: w.Y}, vp, field)
	x -= len(runes) / 2
	if w.Shaking {
		x += shakeOffsets[(int(snap.At/shakePeriod)+w.ID)%len(shakeOffsets)]
	}
	x = core.Clamp(x, field.X+1, max(field.X+1, field.Right()-1-len(runes)))
	for i, r := range runes {
		s.Set(x+i, y, r, colors[i])
	}
}

func overlayLines(snap engine.Snapshot, paused bool) ([]string, core.Color) {
	switch snap.State {
	case engine.StateReady:
		return []string{"T Y P E F A L L", "", "type the words before they reach @", "press enter to start"}, core.ColorTyped
	case engine.StateLevelComplete:
		return []string{
			fmt.Sprintf("LEVEL %d COMPLETE", snap.Level),
			fmt.Sprintf("score %d", snap.Score),
			"press enter for the next level",
		}, core.ColorTyped
	case engine.StateGameOver:
		return []string{
			"GAME OVER",
			fmt.Sprintf("final score %d  (level %d)", snap.Score, snap.Level),
			"ctrl+r restart   tab results",
		}, core.ColorTarget
	case engine.StateWon:
		return []string{
			"ALL LEVELS CLEARED",
			fmt.Sprintf("final score %d", snap.Score),
			"ctrl+r restart   tab results",
		}, core.ColorShield
	}
	if paused {
		return []string{"PAUSED", "esc to resume"}, core.ColorWarning
	}
	return nil, core.ColorDefault
}

func drawOverlay(s *core.Screen, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.NewRect((s.Width()-width-4)/2, (s.Height()-len(lines)-2)/2, width+4, len(lines)+2)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			s.Set(x, y, ' ', core.ColorDefault)
		}
	}
	s.DrawBox(box, c)
	for i, l := range lines {
		s.DrawTextCentered(box.Y+1+i, l, c)
	}
}
