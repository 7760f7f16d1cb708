package modal

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
)

// Base carries the scrolling body, the close keys and the optional header
// and footer shared by every dialog.
type Base struct {
	viewport viewport.Model
	width    int

	onKey        func(msg tea.KeyMsg) (handled, closed bool, cmd tea.Cmd)
	renderHeader func() string
	renderFooter func() string
}

// BaseConfig configures a Base.
type BaseConfig struct {
	Width          int
	ViewportHeight int
	Content        string

	// OnKey sees every key before the defaults do.
	OnKey        func(msg tea.KeyMsg) (handled, closed bool, cmd tea.Cmd)
	RenderHeader func() string
	RenderFooter func() string
}

// NewBase creates a Base from cfg.
func NewBase(cfg BaseConfig) *Base {
	vp := viewport.New(cfg.Width-6, cfg.ViewportHeight)
	vp.Style = lipgloss.NewStyle()
	if cfg.Content != "" {
		vp.SetContent(cfg.Content)
	}

	return &Base{
		viewport:     vp,
		width:        cfg.Width,
		onKey:        cfg.OnKey,
		renderHeader: cfg.RenderHeader,
		renderFooter: cfg.RenderFooter,
	}
}

// Update reports whether msg closed the dialog.
func (b *Base) Update(msg tea.Msg) (closed bool, cmd tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	if b.onKey != nil {
		if handled, closed, cmd := b.onKey(keyMsg); handled {
			return closed, cmd
		}
	}

	switch keyMsg.String() {
	case keyEsc, keyCtrlC:
		return true, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		b.viewport, cmd = b.viewport.Update(msg)
		return false, cmd
	}
	return false, nil
}

// View renders header, body and footer inside the dialog border.
func (b *Base) View() string {
	var sections []string
	if b.renderHeader != nil {
		sections = append(sections, b.renderHeader())
	}
	sections = append(sections, b.viewport.View())
	if b.renderFooter != nil {
		sections = append(sections, b.renderFooter())
	}

	return containerStyle(b.width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// SetContent replaces the body.
func (b *Base) SetContent(content string) {
	b.viewport.SetContent(content)
}
