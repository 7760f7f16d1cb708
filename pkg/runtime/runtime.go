// Package runtime defines the contract between hud and the external overlay
// runtime: the handles it assigns, the payloads it accepts and the
// notifications it delivers back.
//
// Every runtime call is fire-and-forget. The effect of a spawn, close or
// reconfigure is only ever observed through a later Command delivered to the
// registered callback, usually from a goroutine that is not the UI loop.
package runtime

import "fmt"

// UID is the opaque handle the runtime assigns to an overlay once it exists.
type UID uint64

// String renders the handle the way overlay rows display it.
func (u UID) String() string {
	return fmt.Sprintf("#%d", uint64(u))
}

// WebContents describes website content shown inside an overlay.
type WebContents struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	URL    string `json:"url" yaml:"url"`
}

// SpawnOptions configures a new overlay. The zero value asks the runtime for
// its defaults.
type SpawnOptions struct {
	Name   string `json:"name,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Runtime is the command surface of the external overlay runtime.
type Runtime interface {
	// SpawnOverlay requests a new overlay. The returned UID is not
	// authoritative and callers must not use it; the real handle arrives
	// with a FinishSpawnOverlay command.
	SpawnOverlay(opts SpawnOptions) UID

	// CloseOverlay requests destruction of a live overlay.
	CloseOverlay(uid UID)

	// SetContentsWebsite points a live overlay at website content.
	SetContentsWebsite(uid UID, contents WebContents)

	// RegisterCallback installs the function invoked once per delivered
	// command. Only the most recent registration receives commands.
	RegisterCallback(fn func(Command))
}

// Registrar is the subset of Runtime needed to hook up notification delivery.
type Registrar interface {
	RegisterCallback(fn func(Command))
}
