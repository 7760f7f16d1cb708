// Package bridge carries runtime commands from whatever goroutine the runtime
// delivers them on into the UI's serialized message loop.
//
// A Conduit never blocks its caller. Submitted commands go into an unbounded
// FIFO and a single forwarder goroutine hands them to the Sender one at a
// time, so the loop observes them in submission order and never concurrently
// with another mutation.
package bridge

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
)

// ErrClosed is reported when a command arrives after the conduit shut down.
var ErrClosed = errors.New("conduit closed")

// Sender is the externally safe handle into the serialized loop.
// *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// CommandMsg is the single message type that carries runtime commands into
// the loop.
type CommandMsg struct {
	Command runtime.Command
}

// Conduit queues runtime commands for delivery to a Sender.
type Conduit struct {
	sender Sender
	logger *logging.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending []runtime.Command
	closed  bool
	done    chan struct{}
}

// New creates a conduit delivering to sender and starts its forwarder.
func New(sender Sender, logger *logging.Logger) *Conduit {
	c := &Conduit{
		sender: sender,
		logger: logger,
		done:   make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)

	go c.forward()
	return c
}

// Submit queues cmd for delivery. It is safe to call from any goroutine,
// including the loop itself, and never blocks on the loop.
func (c *Conduit) Submit(cmd runtime.Command) {
	if err := c.enqueue(cmd); err != nil {
		c.logger.Warnf("Command %s failed to get submitted: %v", runtime.Describe(cmd), err)
	}
}

func (c *Conduit) enqueue(cmd runtime.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.pending = append(c.pending, cmd)
	c.cond.Signal()
	return nil
}

// Pending returns the number of queued, undelivered commands.
func (c *Conduit) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Close stops delivery. Queued commands are dropped and logged; later
// submissions are logged and dropped. Close does not wait for an in-flight
// Send; Done reports when the forwarder has exited.
func (c *Conduit) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	dropped := c.pending
	c.pending = nil
	c.cond.Broadcast()
	c.mu.Unlock()

	for _, cmd := range dropped {
		c.logger.Warnf("Command %s dropped at shutdown", runtime.Describe(cmd))
	}
}

// Done is closed once the forwarder has exited.
func (c *Conduit) Done() <-chan struct{} {
	return c.done
}

func (c *Conduit) forward() {
	defer close(c.done)

	for {
		cmd, ok := c.next()
		if !ok {
			return
		}
		c.sender.Send(CommandMsg{Command: cmd})
	}
}

// next blocks until a command is queued or the conduit closes.
func (c *Conduit) next() (runtime.Command, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.pending) == 0 && !c.closed {
		c.cond.Wait()
	}
	if c.closed {
		return nil, false
	}

	cmd := c.pending[0]
	c.pending[0] = nil
	c.pending = c.pending[1:]
	return cmd, true
}
