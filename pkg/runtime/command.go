package runtime

import "fmt"

// Kind identifies what a command is about.
type Kind string

const (
	KindFinishSpawnOverlay Kind = "finish_spawn_overlay" // KindFinishSpawnOverlay reports that a requested overlay now exists.
	KindFinishCloseOverlay Kind = "finish_close_overlay" // KindFinishCloseOverlay reports that a requested close completed.
	KindOverlayChanged     Kind = "overlay_changed"      // KindOverlayChanged reports a change made outside hud.
	KindOverlayTransform   Kind = "overlay_transform"    // KindOverlayTransform reports a position or scale change.
	KindDevicePosition     Kind = "device_position"      // KindDevicePosition reports tracked device movement.
	KindInteraction        Kind = "interaction"          // KindInteraction reports a user interaction inside an overlay.
	KindFeedback           Kind = "feedback"             // KindFeedback is free-form runtime feedback.
)

// Category groups commands by how the runtime delivered them.
type Category string

const (
	CategoryNotification  Category = "notification"
	CategoryEvent         Category = "event"
	CategoryEventResponse Category = "event_response"
	CategoryCallback      Category = "callback"
)

// Command is a message delivered by the runtime. The set of implementations
// is closed: Notification, Event, EventResponse and Callback.
type Command interface {
	Category() Category
	command()
}

// Notification is feedback or telemetry. It never carries lifecycle meaning.
type Notification struct {
	Kind    Kind
	Message string
}

// Event is an unsolicited runtime event.
type Event struct {
	Kind Kind
	UID  UID
}

// EventResponse answers a request hud made earlier.
type EventResponse struct {
	Kind Kind
	UID  UID
}

// Callback is a direct completion callback for a request hud made earlier.
type Callback struct {
	Kind Kind
	UID  UID
}

func (Notification) Category() Category  { return CategoryNotification }
func (Event) Category() Category         { return CategoryEvent }
func (EventResponse) Category() Category { return CategoryEventResponse }
func (Callback) Category() Category      { return CategoryCallback }

func (Notification) command()  {}
func (Event) command()         {}
func (EventResponse) command() {}
func (Callback) command()      {}

// Describe renders a command for diagnostic logs.
func Describe(cmd Command) string {
	switch c := cmd.(type) {
	case Notification:
		return fmt.Sprintf("notification(%s %q)", c.Kind, c.Message)
	case Event:
		return fmt.Sprintf("event(%s uid=%d)", c.Kind, c.UID)
	case EventResponse:
		return fmt.Sprintf("event_response(%s uid=%d)", c.Kind, c.UID)
	case Callback:
		return fmt.Sprintf("callback(%s uid=%d)", c.Kind, c.UID)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
