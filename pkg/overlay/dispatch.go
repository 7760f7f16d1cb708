package overlay

import (
	"fmt"

	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
)

// Dispatcher turns user intents into runtime calls plus the matching local
// transition. It shares the single-writer discipline of its Collection.
type Dispatcher struct {
	runtime    runtime.Runtime
	collection *Collection
	logger     *logging.Logger
}

// NewDispatcher creates a dispatcher acting on collection through rt.
func NewDispatcher(rt runtime.Runtime, collection *Collection, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		runtime:    rt,
		collection: collection,
		logger:     logger,
	}
}

// Collection returns the collection the dispatcher mutates.
func (d *Dispatcher) Collection() *Collection {
	return d.collection
}

// Add appends a Spawning overlay and asks the runtime to create it.
// The uid returned by the runtime call is not authoritative and is dropped;
// the real handle arrives with the spawn completion.
func (d *Dispatcher) Add(opts runtime.SpawnOptions) int {
	index := d.collection.AppendSpawning()
	ignored := d.runtime.SpawnOverlay(opts)
	d.logger.Debugf("spawn requested for row %d (direct result %d ignored)", index, ignored)
	return index
}

// Reconfigure points the live overlay at index to contents. The lifecycle
// state does not change.
func (d *Dispatcher) Reconfigure(index int, contents runtime.WebContents) error {
	uid, err := d.aliveAt(index)
	if err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}

	d.logger.Debugf("set contents of %s to %s (%dx%d)", uid, contents.URL, contents.Width, contents.Height)
	d.runtime.SetContentsWebsite(uid, contents)
	return nil
}

// Close marks the live overlay at index as Closing, then asks the runtime to
// destroy it. The local transition happens first so the UI shows the pending
// close immediately.
func (d *Dispatcher) Close(index int) error {
	uid, err := d.aliveAt(index)
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	if err := d.collection.MarkClosing(index, uid); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	d.logger.Debugf("close requested for %s", uid)
	d.runtime.CloseOverlay(uid)
	return nil
}

func (d *Dispatcher) aliveAt(index int) (runtime.UID, error) {
	ov, ok := d.collection.At(index)
	if !ok {
		return 0, fmt.Errorf("row %d does not exist: %w", index, ErrNotAlive)
	}

	uid, alive := ov.Alive()
	if !alive {
		return 0, fmt.Errorf("row %d is %s: %w", index, ov.State(), ErrNotAlive)
	}
	return uid, nil
}
