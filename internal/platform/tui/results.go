package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/typefall/internal/score"
)

// ResultsModel shows the end-of-game breakdown: one row per cleared level
// and a summary of the session.
type ResultsModel struct {
	data   score.Data
	table  table.Model
	width  int
	height int
}

// NewResultsModel creates a results view for the given score data.
func NewResultsModel(data score.Data, width, height int) ResultsModel {
	m := ResultsModel{data: data, width: width, height: height}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates the level table sized to the screen.
func (m ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 7},
		{Title: "Score", Width: 9},
		{Title: "Words", Width: 7},
		{Title: "Avg cps", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-12)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.data.Levels))
	for i, l := range m.data.Levels {
		rows[i] = table.Row{
			fmt.Sprintf("%d", l.Level),
			fmt.Sprintf("%d", l.Score),
			fmt.Sprintf("%d", l.WordCount),
			fmt.Sprintf("%.1f", l.AverageTypingSpeed),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Update scrolls the table.
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.table = m.createTable()
		m.updateTableRows()
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("RESULTS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	summary := m.summary()
	var levels string
	if len(m.data.Levels) == 0 {
		levels = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No level cleared.")
	} else {
		levels = m.table.View()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(levels), "  ", boxStyle.Render(summary)))
	return b.String()
}

func (m ResultsModel) summary() string {
	d := m.data
	best := "-"
	if len(d.Words) > 0 {
		top := d.Words[0]
		for _, w := range d.Words[1:] {
			if w.TotalScore > top.TotalScore {
				top = w
			}
		}
		best = fmt.Sprintf("%s (%d)", top.Word, top.TotalScore)
	}
	lines := []string{
		fmt.Sprintf("Total score   %d", d.TotalScore),
		fmt.Sprintf("Words typed   %d", d.TotalWords),
		fmt.Sprintf("Best word     %s", best),
		fmt.Sprintf("Max combo     %d", d.MaxCombo),
		fmt.Sprintf("Misses        %d", d.Misses),
		fmt.Sprintf("Power-ups     %d got / %d used", d.PowerUpsCollected, d.PowerUpsUsed),
	}
	return strings.Join(lines, "\n")
}

// centerText pads text to center it within width.
func centerText(text string, width int) string {
	textLen := lipgloss.Width(text)
	if textLen >= width {
		return text
	}
	padding := (width - textLen) / 2
	return strings.Repeat(" ", padding) + text
}
