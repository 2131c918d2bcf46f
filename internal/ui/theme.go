package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Player HUD theme (CLI + TUI).
// Kept intentionally small: reusable styles, a few icons, glow bars.

const (
	IconHUD     = "🎮"
	IconSparkle = "✨"
	IconXP      = "⚡"
	IconDebt    = "🔥"
	IconQuest   = "🗺️"
	IconStat    = "📊"
	IconScroll  = "📜"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLoop    = "🔁"
)

var (
	cCyan  = lipgloss.Color("51")  // glow cyan
	cBlue  = lipgloss.Color("45")  // deep cyan/blue
	cGood  = lipgloss.Color("42")  // green
	cWarn  = lipgloss.Color("214") // orange
	cBad   = lipgloss.Color("203") // debt red
	cMuted = lipgloss.Color("244") // gray
	cGold  = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cBlue)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cBlue)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	barFill      = lipgloss.NewStyle().Foreground(cCyan)
	barFillRed   = lipgloss.NewStyle().Foreground(cBad)
	barEmpty     = lipgloss.NewStyle().Foreground(cMuted)
	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
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

// Bar renders a cyan glow bar for a percentage in [0,100].
func Bar(percent float64, width int) string {
	return bar(percent, width, barFill)
}

// DebtBar renders the red variant used for the debt track.
func DebtBar(percent float64, width int) string {
	return bar(percent, width, barFillRed)
}

func bar(percent float64, width int, fill lipgloss.Style) string {
	if width < 4 {
		width = 4
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return fill.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", width-filled))
}

func QuestIcon(done bool) string {
	if done {
		return IconDone
	}
	return IconQuest
}
