package wsbridge

import (
	"github.com/entrhq/hud/pkg/runtime"
)

// Request operations sent to the host.
const (
	OpSpawn       = "spawn"
	OpClose       = "close"
	OpSetContents = "set_contents"
)

// RequestFrame is one request sent to the overlay host.
type RequestFrame struct {
	ID       string                `json:"id"`
	Op       string                `json:"op"`
	UID      runtime.UID           `json:"uid,omitempty"`
	Contents *runtime.WebContents  `json:"contents,omitempty"`
	Options  *runtime.SpawnOptions `json:"options,omitempty"`
}

// NotificationFrame is one notification received from the overlay host.
type NotificationFrame struct {
	Category runtime.Category `json:"category"`
	Kind     runtime.Kind     `json:"kind"`
	UID      runtime.UID      `json:"uid,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// Command converts the frame into a runtime command. Frames of an unknown
// category become feedback notifications, which nothing acts on.
func (f NotificationFrame) Command() runtime.Command {
	switch f.Category {
	case runtime.CategoryEvent:
		return runtime.Event{Kind: f.Kind, UID: f.UID}
	case runtime.CategoryEventResponse:
		return runtime.EventResponse{Kind: f.Kind, UID: f.UID}
	case runtime.CategoryCallback:
		return runtime.Callback{Kind: f.Kind, UID: f.UID}
	case runtime.CategoryNotification:
		return runtime.Notification{Kind: f.Kind, Message: f.Message}
	default:
		return runtime.Notification{Kind: runtime.KindFeedback, Message: f.Message}
	}
}

// FrameFor converts a runtime command into its wire frame.
func FrameFor(cmd runtime.Command) NotificationFrame {
	switch c := cmd.(type) {
	case runtime.Event:
		return NotificationFrame{Category: runtime.CategoryEvent, Kind: c.Kind, UID: c.UID}
	case runtime.EventResponse:
		return NotificationFrame{Category: runtime.CategoryEventResponse, Kind: c.Kind, UID: c.UID}
	case runtime.Callback:
		return NotificationFrame{Category: runtime.CategoryCallback, Kind: c.Kind, UID: c.UID}
	case runtime.Notification:
		return NotificationFrame{Category: runtime.CategoryNotification, Kind: c.Kind, Message: c.Message}
	default:
		return NotificationFrame{Category: runtime.CategoryNotification, Kind: runtime.KindFeedback}
	}
}
