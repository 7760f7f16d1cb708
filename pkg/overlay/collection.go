package overlay

import (
	"fmt"

	"github.com/entrhq/hud/pkg/runtime"
)

// Collection is the ordered list of overlays shown in the UI. Entries are
// appended at the tail, rewritten in place on lifecycle changes and removed
// from any position once their close completes.
type Collection struct {
	items []Overlay
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Len returns the number of tracked overlays.
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the overlay at index i.
func (c *Collection) At(i int) (Overlay, bool) {
	if i < 0 || i >= len(c.items) {
		return Overlay{}, false
	}
	return c.items[i], true
}

// Items returns a copy of the overlays in display order.
func (c *Collection) Items() []Overlay {
	out := make([]Overlay, len(c.items))
	copy(out, c.items)
	return out
}

// Counts tallies overlays per state.
type Counts struct {
	Spawning int
	Live     int
	Closing  int
}

// Total returns the number of overlays counted.
func (c Counts) Total() int {
	return c.Spawning + c.Live + c.Closing
}

// Counts returns the per-state tallies.
func (c *Collection) Counts() Counts {
	var counts Counts
	for _, ov := range c.items {
		switch ov.State() {
		case StateSpawning:
			counts.Spawning++
		case StateLive:
			counts.Live++
		case StateClosing:
			counts.Closing++
		}
	}
	return counts
}

// SpawnPending reports whether the newest overlay is still Spawning. A new
// spawn must not be requested while it is.
func (c *Collection) SpawnPending() bool {
	return len(c.items) > 0 && c.items[len(c.items)-1].IsSpawning()
}

// AppendSpawning adds a Spawning overlay at the tail and returns its index.
func (c *Collection) AppendSpawning() int {
	c.items = append(c.items, Spawning())
	return len(c.items) - 1
}

// PromoteLastSpawning turns the last overlay into Live(uid). The last overlay
// must be Spawning: spawn requests are not pipelined, so the newest request is
// the one a completion resolves.
func (c *Collection) PromoteLastSpawning(uid runtime.UID) error {
	if len(c.items) == 0 {
		return fmt.Errorf("promote %s: collection is empty: %w", uid, ErrDesync)
	}

	last := len(c.items) - 1
	if !c.items[last].IsSpawning() {
		return fmt.Errorf("promote %s: last overlay is %s, expected spawning: %w",
			uid, c.items[last].State(), ErrDesync)
	}

	c.items[last] = Live(uid)
	return nil
}

// MarkClosing rewrites the Live(uid) overlay at index to Closing(uid).
func (c *Collection) MarkClosing(index int, uid runtime.UID) error {
	ov, ok := c.At(index)
	if !ok {
		return fmt.Errorf("mark closing %s at %d: index out of range: %w", uid, index, ErrNotAlive)
	}

	current, alive := ov.Alive()
	if !alive {
		return fmt.Errorf("mark closing %s at %d: overlay is %s: %w", uid, index, ov.State(), ErrNotAlive)
	}
	if current != uid {
		return fmt.Errorf("mark closing %s at %d: overlay holds %s: %w", uid, index, current, ErrDesync)
	}

	c.items[index] = Closing(uid)
	return nil
}

// RemoveByID removes the Closing overlay holding uid. Only closing overlays
// are considered; a live overlay with the same uid does not match.
func (c *Collection) RemoveByID(uid runtime.UID) error {
	index := c.indexOfClosing(uid)
	if index < 0 {
		return fmt.Errorf("remove %s: no closing overlay holds it: %w", uid, ErrDesync)
	}

	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

func (c *Collection) indexOfClosing(uid runtime.UID) int {
	for i, ov := range c.items {
		if closing, ok := ov.Closing(); ok && closing == uid {
			return i
		}
	}
	return -1
}
