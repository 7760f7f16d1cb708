package overlay

import (
	"fmt"

	"github.com/entrhq/hud/pkg/runtime"
)

// Outcome says what routing a command did to the collection.
type Outcome int

const (
	// OutcomeIgnored means the command carries no lifecycle meaning.
	OutcomeIgnored Outcome = iota
	// OutcomePromoted means a Spawning overlay became Live.
	OutcomePromoted
	// OutcomeRemoved means a Closing overlay was removed.
	OutcomeRemoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomePromoted:
		return "promoted"
	case OutcomeRemoved:
		return "removed"
	default:
		return "ignored"
	}
}

// Route applies one runtime command to the collection.
//
// Spawn completions arrive either as an EventResponse or as a Callback and
// both promote the newest Spawning overlay. Close completions arrive as an
// EventResponse and remove the matching Closing overlay. Every other command
// is ignored so new runtime kinds do not break the UI.
func Route(c *Collection, cmd runtime.Command) (Outcome, error) {
	switch cmd := cmd.(type) {
	case runtime.Notification:
		return OutcomeIgnored, nil

	case runtime.EventResponse:
		switch cmd.Kind {
		case runtime.KindFinishSpawnOverlay:
			return promote(c, cmd.UID)
		case runtime.KindFinishCloseOverlay:
			if err := c.RemoveByID(cmd.UID); err != nil {
				return OutcomeIgnored, fmt.Errorf("route %s: %w", runtime.Describe(cmd), err)
			}
			return OutcomeRemoved, nil
		}
		return OutcomeIgnored, nil

	case runtime.Callback:
		if cmd.Kind == runtime.KindFinishSpawnOverlay {
			return promote(c, cmd.UID)
		}
		return OutcomeIgnored, nil

	case runtime.Event:
		return OutcomeIgnored, nil

	default:
		return OutcomeIgnored, nil
	}
}

func promote(c *Collection, uid runtime.UID) (Outcome, error) {
	if err := c.PromoteLastSpawning(uid); err != nil {
		return OutcomeIgnored, fmt.Errorf("route spawn completion: %w", err)
	}
	return OutcomePromoted, nil
}
