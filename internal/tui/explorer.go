package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/solowirf/internal/config"
)

// Run starts the explorer in the alternate screen and blocks until the
// user quits.
func Run(base *config.Config) error {
	p := tea.NewProgram(NewExplorer(base), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
