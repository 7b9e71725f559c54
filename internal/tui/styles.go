package tui

import "github.com/charmbracelet/lipgloss"

// Courtroom palette. Adaptive colors keep the watcher readable on both
// light and dark terminals.
var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a2e", Dark: "#e0def4"}).
			Background(lipgloss.AdaptiveColor{Light: "#d7d7ff", Dark: "#2a273f"}).
			Padding(0, 1)

	styleJudge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#7a5900", Dark: "#f6c177"})

	stylePlaintiff = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1258a8", Dark: "#9ccfd8"})

	styleDefense = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#8a2846", Dark: "#eb6f92"})

	styleJuror = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#3a3a3a", Dark: "#908caa"}).
			Italic(true)

	styleVerdict = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#005f00", Dark: "#31748f"}).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	styleStatus = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)

	styleErr = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b00020", Dark: "#eb6f92"})
)
