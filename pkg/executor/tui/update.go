package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/hud/pkg/bridge"
	"github.com/entrhq/hud/pkg/overlay"
	"github.com/entrhq/hud/pkg/runtime"
)

// Update is the serialized mutation loop. Runtime notifications arrive as
// bridge.CommandMsg; everything else is user input or UI housekeeping.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.fatal != nil {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case bridge.CommandMsg:
		return m, m.handleCommand(msg.Command)

	case closeConfirmedMsg:
		return m, m.handleCloseConfirmed(msg)

	case tea.KeyMsg:
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd = m.modal.Update(msg)
			return m, cmd
		}
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		m.logger.Debugf("command ran (empty): %T", msg)
		return m, nil
	}
}

func (m *model) handleCommand(cmd runtime.Command) tea.Cmd {
	m.logger.Debugf("Received %s", runtime.Describe(cmd))

	outcome, err := overlay.Route(m.collection, cmd)
	if err != nil {
		return m.fail(err)
	}

	switch outcome {
	case overlay.OutcomePromoted, overlay.OutcomeRemoved:
		m.logger.Infof("%s: %s", outcome, runtime.Describe(cmd))
	}

	switch c := cmd.(type) {
	case runtime.EventResponse:
		if outcome == overlay.OutcomeRemoved {
			delete(m.chosen, c.UID)
		}
	case runtime.Notification:
		if c.Kind == runtime.KindFeedback && c.Message != "" {
			m.status = c.Message
		}
	}

	m.clampSelection()
	return nil
}

// fail records the first desync and stops the program. Nothing is repaired.
func (m *model) fail(err error) tea.Cmd {
	if m.fatal == nil {
		m.fatal = err
	}
	m.logger.Errorf("overlay state desync: %v", err)
	return tea.Quit
}
