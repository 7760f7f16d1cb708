// Package headless runs a YAML script of overlay actions without a terminal
// UI. It drives the same collection, dispatcher and router as the TUI, with
// its own serialized loop in place of the Bubble Tea program: runtime
// notifications arrive through a bridge conduit whose sender is the executor
// itself, and only Run's goroutine touches the collection. Add steps spawn
// one overlay at a time and wait for each spawn to complete before the next.
//
// Example script:
//
//	name: smoke
//	steps:
//	  - add
//	  - wait: {live: 1, timeout: 5s}
//	  - close: {index: 0}
//	  - wait: {total: 0}
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/hud/pkg/bridge"
	"github.com/entrhq/hud/pkg/config"
	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/overlay"
	"github.com/entrhq/hud/pkg/runtime"
)

// ErrWaitTimeout is returned when a wait step's counts are not reached in time.
var ErrWaitTimeout = errors.New("wait step timed out")

// Options configures the executor.
type Options struct {
	Presets []config.Preset
	Spawn   runtime.SpawnOptions
	// Output receives progress; stdout when nil
	Output io.Writer
}

// Executor runs one script against a runtime. An Executor is single use.
type Executor struct {
	runtime runtime.Runtime
	script  *Script
	spawn   runtime.SpawnOptions
	presets map[string]config.Preset
	logger  *logging.Logger
	report  *Reporter

	collection *overlay.Collection
	dispatcher *overlay.Dispatcher

	inbox chan tea.Msg
	done  chan struct{}
}

// NewExecutor creates an executor for a validated script.
func NewExecutor(rt runtime.Runtime, script *Script, opts Options, logger *logging.Logger) *Executor {
	presets := make(map[string]config.Preset, len(opts.Presets))
	for _, p := range opts.Presets {
		presets[p.Name] = p
	}

	collection := overlay.NewCollection()
	return &Executor{
		runtime:    rt,
		script:     script,
		spawn:      opts.Spawn,
		presets:    presets,
		logger:     logger,
		report:     NewReporter(script.Logging.Verbosity, opts.Output),
		collection: collection,
		dispatcher: overlay.NewDispatcher(rt, collection, logger),
		inbox:      make(chan tea.Msg),
		done:       make(chan struct{}),
	}
}

// Send implements bridge.Sender. It blocks until the loop takes msg or the
// run has ended.
func (e *Executor) Send(msg tea.Msg) {
	select {
	case e.inbox <- msg:
	case <-e.done:
		e.logger.Debugf("run finished, dropping %T", msg)
	}
}

// Run executes every step in order. It returns the first failing step's
// error; a desync is returned wrapping overlay.ErrDesync.
func (e *Executor) Run(ctx context.Context) (err error) {
	conduit := bridge.New(e, e.logger)
	e.runtime.RegisterCallback(conduit.Submit)

	defer func() {
		close(e.done)
		conduit.Close()
		if err != nil {
			e.report.Errorf("%v", err)
			e.logger.Errorf("script failed: %v", err)
		}
		e.report.Summary(err, e.collection)
	}()

	name := e.script.Name
	if name == "" {
		name = "hud script"
	}
	e.report.Header(name)
	e.logger.Infof("headless run %q starting with %d steps", name, len(e.script.Steps))

	for i, step := range e.script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.drain(); err != nil {
			return fmt.Errorf("before step %d: %w", i+1, err)
		}

		e.report.Step(step.String())
		if err := e.runStep(ctx, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
	}

	e.report.Successf("all %d steps completed", len(e.script.Steps))
	return nil
}

func (e *Executor) runStep(ctx context.Context, step Step) error {
	switch {
	case step.Add != nil:
		for n := max(step.Add.Count, 1); n > 0; n-- {
			if err := e.settleSpawn(ctx, step.Add.Timeout); err != nil {
				return err
			}
			index := e.dispatcher.Add(e.spawn)
			e.report.Verbosef("row %d spawning", index)
		}
		return nil

	case step.Reconfigure != nil:
		preset, ok := e.presets[step.Reconfigure.Preset]
		if !ok {
			return fmt.Errorf("unknown preset %q", step.Reconfigure.Preset)
		}
		if err := e.requireLive(step.Reconfigure.Index); err != nil {
			return err
		}
		return e.dispatcher.Reconfigure(step.Reconfigure.Index, preset.Contents())

	case step.Close != nil:
		if err := e.requireLive(step.Close.Index); err != nil {
			return err
		}
		return e.dispatcher.Close(step.Close.Index)

	case step.Wait != nil:
		return e.wait(ctx, step.Wait)
	}
	return errors.New("empty step")
}

// requireLive rejects a script step aimed at a row that is not live. This is
// a script error, not a desync.
func (e *Executor) requireLive(index int) error {
	ov, ok := e.collection.At(index)
	if !ok {
		return fmt.Errorf("row %d does not exist (%d rows)", index, e.collection.Len())
	}
	if !ov.IsAlive() {
		return fmt.Errorf("row %d is not live (%s)", index, ov)
	}
	return nil
}

func (e *Executor) wait(ctx context.Context, w *WaitStep) error {
	return e.waitUntil(ctx, w.Timeout, func() bool { return w.satisfied(e.collection.Counts()) })
}

// settleSpawn waits for the newest spawn to complete. Spawns are not
// pipelined: a completion always resolves the last row.
func (e *Executor) settleSpawn(ctx context.Context, timeout time.Duration) error {
	if !e.collection.SpawnPending() {
		return nil
	}
	e.report.Debugf("waiting for the previous spawn to complete")
	if err := e.waitUntil(ctx, timeout, func() bool { return !e.collection.SpawnPending() }); err != nil {
		return fmt.Errorf("previous overlay still spawning: %w", err)
	}
	return nil
}

// waitUntil handles incoming messages until done reports true.
func (e *Executor) waitUntil(ctx context.Context, timeout time.Duration, done func() bool) error {
	if timeout == 0 {
		timeout = DefaultWaitTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for !done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			c := e.collection.Counts()
			return fmt.Errorf("%w after %v (live %d, spawning %d, closing %d)", ErrWaitTimeout, timeout, c.Live, c.Spawning, c.Closing)
		case msg := <-e.inbox:
			if err := e.handle(msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *WaitStep) satisfied(c overlay.Counts) bool {
	match := func(want *int, have int) bool { return want == nil || *want == have }
	return match(w.Live, c.Live) &&
		match(w.Spawning, c.Spawning) &&
		match(w.Closing, c.Closing) &&
		match(w.Total, c.Total())
}

// drain handles every message already waiting, without blocking.
func (e *Executor) drain() error {
	for {
		select {
		case msg := <-e.inbox:
			if err := e.handle(msg); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (e *Executor) handle(msg tea.Msg) error {
	cm, ok := msg.(bridge.CommandMsg)
	if !ok {
		e.logger.Debugf("command ran (empty): %T", msg)
		return nil
	}

	e.logger.Debugf("Received %s", runtime.Describe(cm.Command))
	outcome, err := overlay.Route(e.collection, cm.Command)
	if err != nil {
		return err
	}
	e.report.Verbosef("%s: %s", runtime.Describe(cm.Command), outcome)
	return nil
}
