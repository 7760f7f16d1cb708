package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/hud/pkg/executor/tui/modal"
)

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.modal = modal.NewHelp("hud keys", m.helpText())

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < m.collection.Len()-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Add):
		if m.collection.SpawnPending() {
			m.status = "Wait for the pending overlay to finish spawning"
			return nil
		}
		m.selected = m.dispatcher.Add(m.spawn)
		m.status = ""

	case key.Matches(msg, m.keys.Preset):
		return m.cyclePreset()

	case key.Matches(msg, m.keys.Reconfigure):
		return m.reconfigureSelected()

	case key.Matches(msg, m.keys.Close):
		return m.closeSelected()
	}
	return nil
}

// The row actions below are only offered for live rows; on any other row
// they do nothing.

func (m *model) cyclePreset() tea.Cmd {
	ov, _ := m.selectedRow()
	uid, ok := ov.Alive()
	if !ok {
		return nil
	}
	m.chosen[uid] = (m.chosen[uid] + 1) % len(m.presets)
	m.status = fmt.Sprintf("%s preset: %s", ov, m.presetFor(uid).Name)
	return nil
}

func (m *model) reconfigureSelected() tea.Cmd {
	ov, _ := m.selectedRow()
	uid, ok := ov.Alive()
	if !ok {
		return nil
	}
	preset := m.presetFor(uid)
	if err := m.dispatcher.Reconfigure(m.selected, preset.Contents()); err != nil {
		return m.fail(err)
	}
	m.status = fmt.Sprintf("%s showing %s", ov, preset.Name)
	return nil
}

func (m *model) closeSelected() tea.Cmd {
	ov, _ := m.selectedRow()
	uid, ok := ov.Alive()
	if !ok {
		return nil
	}

	if m.confirmClose {
		m.modal = modal.NewConfirm("Close overlay", fmt.Sprintf("Close %s?", ov), func() tea.Cmd {
			return func() tea.Msg { return closeConfirmedMsg{uid: uid} }
		})
		return nil
	}

	if err := m.dispatcher.Close(m.selected); err != nil {
		return m.fail(err)
	}
	return nil
}

// handleCloseConfirmed closes uid wherever its row is now. Rows may have
// moved, or the overlay may already be gone, while the dialog was open.
func (m *model) handleCloseConfirmed(msg closeConfirmedMsg) tea.Cmd {
	for i, ov := range m.collection.Items() {
		if uid, ok := ov.Alive(); ok && uid == msg.uid {
			if err := m.dispatcher.Close(i); err != nil {
				return m.fail(err)
			}
			return nil
		}
	}
	m.logger.Debugf("confirmed close of %s skipped, overlay no longer live", msg.uid)
	return nil
}

func (m *model) helpText() string {
	var b strings.Builder
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "%-8s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nActions on a row need a live overlay.\nSpawning and closing rows show (Options disabled).\n")
	return b.String()
}
