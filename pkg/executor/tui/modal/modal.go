// Package modal provides the dialogs drawn over the overlay list: the key
// help screen and the close confirmation.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a dialog that owns keyboard input while it is shown.
type Modal interface {
	// Update handles msg. Returning a nil Modal closes the dialog; the
	// returned command still runs.
	Update(msg tea.Msg) (Modal, tea.Cmd)
	View() string
}

var (
	salmonPink = lipgloss.Color("#FFB3BA")
	mutedGray  = lipgloss.Color("#6B7280")

	// TitleStyle is used for dialog titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(salmonPink)

	// HintStyle is used for key hints under the dialog content
	HintStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)
)

func containerStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(salmonPink).
		Padding(1, 2).
		Width(width)
}

// Place centres a dialog on a blank screen of the given size.
func Place(m Modal, width, height int) string {
	if m == nil {
		return ""
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		m.View(),
		lipgloss.WithWhitespaceChars(" "),
	)
}
