package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/todolist"
)

// Run starts the interactive client on the alternate screen and blocks until
// the user quits.
func Run(ctrl *todolist.Controller, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(ctrl), opts...).Run()
	return err
}
