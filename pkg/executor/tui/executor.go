// Package tui provides the interactive terminal executor: a Bubble Tea
// program that lists overlays and turns key presses into runtime requests.
//
// The program's Update is the only place the overlay collection changes.
// Runtime notifications reach it through the global bridge conduit, which
// forwards them with Program.Send.
//
// Files:
// - executor.go: program lifecycle and bridge wiring
// - model.go: model state
// - update.go: Update and notification routing
// - model_actions.go: key handling and row actions
// - view.go: rendering
// - keys.go, styles.go: key bindings and colours
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/hud/pkg/bridge"
	"github.com/entrhq/hud/pkg/config"
	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
)

// Options configures the TUI.
type Options struct {
	Presets      []config.Preset
	Spawn        runtime.SpawnOptions
	ShowCounts   bool
	ConfirmClose bool
}

// Executor runs the interactive overlay list against a runtime.
type Executor struct {
	runtime runtime.Runtime
	opts    Options
	logger  *logging.Logger
}

// NewExecutor creates a TUI executor for rt.
func NewExecutor(rt runtime.Runtime, opts Options, logger *logging.Logger) *Executor {
	return &Executor{
		runtime: rt,
		opts:    opts,
		logger:  logger,
	}
}

// Run starts the program and blocks until the user quits, ctx is cancelled
// or the overlay state desyncs. A desync is returned as an error wrapping
// overlay.ErrDesync.
func (e *Executor) Run(ctx context.Context) error {
	e.logger.Infof("TUI executor starting")

	m := newModel(e.runtime, e.opts, e.logger)
	program := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	// The conduit needs the program's sender before the program runs.
	conduit, err := bridge.Global(program, e.runtime, e.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event bridge: %w", err)
	}
	defer conduit.Close()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	e.logger.Infof("TUI executor stopped")
	return m.Err()
}
