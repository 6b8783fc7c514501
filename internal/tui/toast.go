package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	kind    toastKind
	title   string
	message string
}

// showToast replaces the current toast and schedules its removal. A newer
// toast outlives the timer of the one it replaced.
func (a *App) showToast(kind toastKind, title, message string) tea.Cmd {
	a.toastSeq++
	seq := a.toastSeq
	a.toast = &toast{kind: kind, title: title, message: message}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (t *toast) render(width int) string {
	color := colorSuccess
	if t.kind == toastError {
		color = colorDanger
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(t.title)
	body := lipgloss.NewStyle().Foreground(colorText).Render(t.message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(max(30, width)).
		Render(title + "\n" + body)
}
