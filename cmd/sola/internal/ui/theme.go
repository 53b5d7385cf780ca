package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sola-app/sola/pkg/api"
)

// Sola theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few icons.

const (
	IconSun    = "☀️"
	IconTarget = "🎯"
	IconSpark  = "✨"
	IconDone   = "✅"
	IconTrophy = "🏆"
	IconBolt   = "⚡"
	IconLoop   = "🔁"
	IconNote   = "📝"
	IconMoon   = "🌙"
	IconWarn   = "⚠️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeDayDone = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("DAY COMPLETE")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusText colors a task status.
func StatusText(status api.TaskStatus) string {
	switch status {
	case api.TaskCompleted:
		return Good.Render(string(status))
	case api.TaskPending:
		return Warn.Render(string(status))
	case api.TaskDeferred:
		return H2.Render(string(status))
	case api.TaskArchived:
		return Muted.Render(string(status))
	default:
		return Muted.Render(string(status))
	}
}

// MoodFace maps a 1-5 rating to a face.
func MoodFace(rating int) string {
	switch rating {
	case 1:
		return "😞"
	case 2:
		return "😕"
	case 3:
		return "😐"
	case 4:
		return "🙂"
	case 5:
		return "😄"
	default:
		return "·"
	}
}

// ProgressBar renders "[####----]" sized to width.
func ProgressBar(value, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(float64(value) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
