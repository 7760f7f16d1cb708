package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Confirm asks a yes/no question. OnConfirm runs only on yes.
type Confirm struct {
	*Base
	title     string
	onConfirm func() tea.Cmd
}

// NewConfirm creates a confirmation dialog.
func NewConfirm(title, question string, onConfirm func() tea.Cmd) *Confirm {
	c := &Confirm{title: title, onConfirm: onConfirm}
	c.Base = NewBase(BaseConfig{
		Width:          48,
		ViewportHeight: 2,
		Content:        question,
		OnKey: func(msg tea.KeyMsg) (bool, bool, tea.Cmd) {
			switch msg.String() {
			case "y", keyEnter:
				return true, true, c.onConfirm()
			case "n":
				return true, true, nil
			}
			return false, false, nil
		},
		RenderHeader: func() string { return TitleStyle.Render(c.title) },
		RenderFooter: func() string { return HintStyle.Render("y/enter confirm · n/esc cancel") },
	})
	return c
}

// Update handles messages for the confirmation dialog.
func (c *Confirm) Update(msg tea.Msg) (Modal, tea.Cmd) {
	closed, cmd := c.Base.Update(msg)
	if closed {
		return nil, cmd
	}
	return c, cmd
}
