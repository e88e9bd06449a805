// Package screen defines the contract every TUI view implements.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathwise/internal/ui/layout"
)

// Screen is one full-frame view managed by the router.
type Screen interface {
	// Init is called when the screen becomes active for the first time.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body only; the app draws the header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen override the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
