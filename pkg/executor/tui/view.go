package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/hud/pkg/executor/tui/modal"
	"github.com/entrhq/hud/pkg/overlay"
)

// View renders the overlay list, or the active dialog over a blank screen.
func (m *model) View() string {
	if m.modal != nil && m.width > 0 && m.height > 0 {
		return modal.Place(m.modal, m.width, m.height)
	}
	if m.modal != nil {
		return m.modal.View()
	}

	sections := []string{
		headerStyle.Render("hud") + tipsStyle.Render("  overlay manager"),
		listBoxStyle.Render(m.buildList()),
	}
	if m.showCounts {
		sections = append(sections, m.buildCounts())
	}
	if m.fatal != nil {
		sections = append(sections, errorStyle.Render("overlay state desync: "+m.fatal.Error()))
	} else if m.status != "" {
		sections = append(sections, statusBarStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) buildList() string {
	items := m.collection.Items()
	if len(items) == 0 {
		return tipsStyle.Render("No overlays. Press a to add one.")
	}

	rows := make([]string, 0, len(items))
	for i, ov := range items {
		rows = append(rows, m.buildRow(i, ov))
	}
	return strings.Join(rows, "\n")
}

func (m *model) buildRow(i int, ov overlay.Overlay) string {
	cursor := "  "
	label := rowStyle.Render(ov.String())
	if i == m.selected {
		cursor = selectedStyle.Render("> ")
		label = selectedStyle.Render(ov.String())
	}

	uid, alive := ov.Alive()
	if !alive {
		return fmt.Sprintf("%s%s %s %s", cursor, label, m.spinner.View(), disabledStyle.Render("(Options disabled)"))
	}
	return fmt.Sprintf("%s%s  %s", cursor, label, liveStyle.Render("["+m.presetFor(uid).Name+"]"))
}

func (m *model) buildCounts() string {
	c := m.collection.Counts()
	return statusBarStyle.Render(fmt.Sprintf("live %d · spawning %d · closing %d", c.Live, c.Spawning, c.Closing))
}

// Err returns the desync that stopped the program, if any.
func (m *model) Err() error {
	return m.fatal
}
