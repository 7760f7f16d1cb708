package overlay

import "errors"

// ErrDesync marks every lifecycle invariant violation. It means hud and the
// runtime disagree about which overlays exist, and the caller must stop
// rather than try to repair the collection.
var ErrDesync = errors.New("overlay lifecycle desynchronized")

// ErrNotAlive is returned when an action needs a live overlay and the target
// is spawning, closing or missing.
var ErrNotAlive = &desyncError{msg: "overlay is not alive"}

type desyncError struct {
	msg string
}

func (e *desyncError) Error() string { return e.msg }

// Is lets errors.Is(err, ErrDesync) match every desync variant.
func (e *desyncError) Is(target error) bool {
	return target == ErrDesync
}
