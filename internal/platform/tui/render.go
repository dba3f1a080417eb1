package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/typefall/internal/core"
)

// colorStyles maps semantic cell roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorWord:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorTyped:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorTracked: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Underline(true),
	core.ColorPowerUp: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	core.ColorTarget:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorShield:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorFrozen:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorSlowed:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
