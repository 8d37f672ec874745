package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle        = lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("245"))
	focusedLabelStyle = labelStyle.Foreground(lipgloss.Color("212"))
	okStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle          = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	if m.mode == modeList {
		body = m.listView()
	} else {
		body = m.formView()
	}

	status := okStyle.Render(m.status)
	if m.statusErr {
		status = errStyle.Render("✗ " + m.status)
	}
	counts := hintStyle.Render(fmt.Sprintf("%d pending · %d staged · esc back · ctrl+c quit",
		m.services.Adding.Len(), m.services.Deleting.Len()))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🎵 Songshelf"),
		boxStyle.Render(body),
		status,
		counts,
	)
}

func (m Model) formView() string {
	var b strings.Builder
	for i, input := range m.inputs {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(fieldLabels[i]))
		b.WriteString(input.View())
		if i < len(m.inputs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// listRows is how many songs fit in the list box.
func (m Model) listRows() int {
	if m.height <= 8 {
		return 15
	}
	return m.height - 8
}

func (m Model) listView() string {
	if len(m.songs) == 0 {
		return hintStyle.Render("The library is empty.")
	}
	end := min(m.listOffset+m.listRows(), len(m.songs))
	var b strings.Builder
	for i, s := range m.songs[m.listOffset:end] {
		line := fmt.Sprintf("%-30s %-24s %5s  %s", truncate(s.Title, 30), truncate(s.Artist, 24), s.DurationString(), hintStyle.Render(s.ID))
		if !s.CreatedAt.IsZero() {
			line += hintStyle.Render(" · " + humanize.Time(s.CreatedAt))
		}
		b.WriteString(line)
		if i < end-m.listOffset-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
