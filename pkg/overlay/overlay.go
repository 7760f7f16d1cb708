// Package overlay tracks the lifecycle of overlays owned by the external
// runtime and applies user actions and runtime notifications to it.
//
// An overlay moves through three states:
//
//	Spawning --FinishSpawnOverlay--> Live(uid) --close action--> Closing(uid) --FinishCloseOverlay--> removed
//
// Nothing in this package is safe for concurrent use. A Collection is owned by
// a single serialized loop and every mutation happens there.
package overlay

import (
	"cmp"
	"fmt"

	"github.com/entrhq/hud/pkg/runtime"
)

// State is the lifecycle tag of an overlay.
type State int

const (
	// StateSpawning means creation was requested and no uid is known yet.
	StateSpawning State = iota
	// StateLive means the runtime confirmed creation.
	StateLive
	// StateClosing means a close was requested and is not yet confirmed.
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateLive:
		return "live"
	case StateClosing:
		return "closing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Overlay is one overlay as the UI tracks it. The zero value is Spawning.
type Overlay struct {
	state State
	uid   runtime.UID
}

// Spawning returns an overlay waiting for its spawn completion.
func Spawning() Overlay {
	return Overlay{state: StateSpawning}
}

// Live returns a confirmed overlay.
func Live(uid runtime.UID) Overlay {
	return Overlay{state: StateLive, uid: uid}
}

// Closing returns an overlay waiting for its close completion.
func Closing(uid runtime.UID) Overlay {
	return Overlay{state: StateClosing, uid: uid}
}

// State returns the lifecycle tag.
func (o Overlay) State() State {
	return o.state
}

// IsSpawning reports whether the overlay is waiting for its uid.
func (o Overlay) IsSpawning() bool {
	return o.state == StateSpawning
}

// IsAlive reports whether the overlay is Live.
func (o Overlay) IsAlive() bool {
	_, ok := o.Alive()
	return ok
}

// IsClosing reports whether the overlay is Closing.
func (o Overlay) IsClosing() bool {
	_, ok := o.Closing()
	return ok
}

// Alive returns the uid iff the overlay is Live.
func (o Overlay) Alive() (runtime.UID, bool) {
	if o.state != StateLive {
		return 0, false
	}
	return o.uid, true
}

// Closing returns the uid iff the overlay is Closing.
func (o Overlay) Closing() (runtime.UID, bool) {
	if o.state != StateClosing {
		return 0, false
	}
	return o.uid, true
}

// Compare orders overlays by state tag, then uid.
func (o Overlay) Compare(other Overlay) int {
	if c := cmp.Compare(o.state, other.state); c != 0 {
		return c
	}
	return cmp.Compare(o.uid, other.uid)
}

// Equal reports structural equality.
func (o Overlay) Equal(other Overlay) bool {
	return o.Compare(other) == 0
}

// String renders the row label.
func (o Overlay) String() string {
	switch o.state {
	case StateLive:
		return fmt.Sprintf("Overlay %s", o.uid)
	case StateClosing:
		return fmt.Sprintf("Closing %s..", o.uid)
	default:
		return "Spawning.."
	}
}
