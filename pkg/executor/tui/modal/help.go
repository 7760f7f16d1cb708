package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Help displays static help text.
type Help struct {
	*Base
	title string
}

// NewHelp creates a help dialog.
func NewHelp(title, content string) *Help {
	h := &Help{title: title}
	h.Base = NewBase(BaseConfig{
		Width:          64,
		ViewportHeight: 14,
		Content:        content,
		OnKey: func(msg tea.KeyMsg) (bool, bool, tea.Cmd) {
			switch msg.String() {
			case keyEnter, "?", "q":
				return true, true, nil
			}
			return false, false, nil
		},
		RenderHeader: func() string { return TitleStyle.Render(h.title) },
		RenderFooter: func() string { return HintStyle.Render("Press ESC or Enter to close") },
	})
	return h
}

// Update handles messages for the help dialog.
func (h *Help) Update(msg tea.Msg) (Modal, tea.Cmd) {
	closed, cmd := h.Base.Update(msg)
	if closed {
		return nil, cmd
	}
	return h, cmd
}
