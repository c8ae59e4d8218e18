package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))

	bannerStyle = errorStyle.
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("9")).
			PaddingLeft(1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Faint(true).Padding(0, 1)

	boxChecked   = "☑"
	boxProgress  = "◐"
	boxUnchecked = "☐"
)

// Status display classes. Presentation only: they carry no data meaning.
const (
	ClassCompleted  = "status-completed"
	ClassInProgress = "status-in-progress"
	ClassPending    = "status-pending"
)

// StatusClass maps a status to its display class; unknown values fall back to pending.
func StatusClass(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return ClassCompleted
	case model.StatusInProgress:
		return ClassInProgress
	default:
		return ClassPending
	}
}

func classStyle(class string) lipgloss.Style {
	switch class {
	case ClassCompleted:
		return successStyle
	case ClassInProgress:
		return progressStyle
	default:
		return pendingStyle
	}
}

func classBox(class string) string {
	switch class {
	case ClassCompleted:
		return boxChecked
	case ClassInProgress:
		return boxProgress
	default:
		return boxUnchecked
	}
}

func panelString(inner string, focused bool) string {
	color := lipgloss.Color("8")
	if focused {
		color = lipgloss.Color("12")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(inner)
}
