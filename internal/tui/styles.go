package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#A78BFA")
	colorAccent  = lipgloss.Color("#22D3EE")
	colorMuted   = lipgloss.Color("#888888")
	colorText    = lipgloss.Color("#E5E7EB")
	colorSuccess = lipgloss.Color("#4ADE80")
	colorDanger  = lipgloss.Color("#F87171")
	colorWarn    = lipgloss.Color("#FACC15")
	colorBorder  = lipgloss.Color("#444444")
)

var (
	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	labelStyle = lipgloss.NewStyle().Foreground(colorText)

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	focusedButtonStyle = buttonStyle.
				BorderForeground(colorAccent).
				Foreground(colorAccent).
				Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorWarn).
			Foreground(colorMuted).
			PaddingLeft(1)

	stepActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111111")).
			Background(colorPrimary).
			Padding(0, 1)

	stepIdleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	verifiedStyle = lipgloss.NewStyle().Foreground(colorSuccess)
)
