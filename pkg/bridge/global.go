package bridge

import (
	"errors"
	"sync"

	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
)

// ErrNoSender is returned when the global conduit is first requested without a
// sender. The sender must come from a constructed, not yet running program.
var ErrNoSender = errors.New("a sender is required when initializing the global conduit")

var (
	globalConduit *Conduit
	globalErr     error
	globalOnce    sync.Once
)

// Global returns the process-wide conduit, creating it on first use.
//
// The first call decides the outcome for the whole process: it must pass the
// program's sender, and it registers the conduit's Submit with registrar so
// every runtime command flows through it. Later calls ignore their arguments
// and return the same conduit, or the same error if initialization failed.
func Global(sender Sender, registrar runtime.Registrar, logger *logging.Logger) (*Conduit, error) {
	first := false
	globalOnce.Do(func() {
		first = true
		if sender == nil {
			globalErr = ErrNoSender
			return
		}
		globalConduit = New(sender, logger)
	})

	// Registration runs outside the Once so a runtime that delivers from
	// inside RegisterCallback can resolve the conduit without deadlocking.
	if first && globalErr == nil {
		if registrar != nil {
			registrar.RegisterCallback(submitGlobal)
		}
		logger.Infof("Global conduit initialized")
	}
	return globalConduit, globalErr
}

// submitGlobal is the function handed to the runtime. It resolves the conduit
// through Global so it never captures UI state.
func submitGlobal(cmd runtime.Command) {
	conduit, err := Global(nil, nil, nil)
	if err != nil || conduit == nil {
		return
	}
	conduit.Submit(cmd)
}
