package main

import (
	"context"
	"fmt"

	"github.com/entrhq/hud/pkg/config"
	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
	"github.com/entrhq/hud/pkg/runtime/browser"
	"github.com/entrhq/hud/pkg/runtime/sim"
	"github.com/entrhq/hud/pkg/runtime/wsbridge"
)

// closableRuntime is a runtime the binary owns and must shut down.
type closableRuntime interface {
	runtime.Runtime
	Close() error
}

// apply lays the command line overrides over the config file settings.
func (c *Config) apply(s config.RuntimeSettings) config.RuntimeSettings {
	if c.Runtime != "" {
		s.Backend = c.Runtime
	}
	if c.Endpoint != "" {
		s.Endpoint = c.Endpoint
	}
	return s
}

// startRuntime builds the runtime named by s.Backend.
func startRuntime(ctx context.Context, s config.RuntimeSettings, logger *logging.Logger) (closableRuntime, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runtime settings: %w", err)
	}

	switch s.Backend {
	case config.BackendSim:
		return sim.New(sim.Options{
			SpawnDelay: s.SpawnDelay,
			CloseDelay: s.CloseDelay,
			Feedback:   true,
		}, logger.With("sim")), nil

	case config.BackendBrowser:
		rt, err := browser.Start(browser.Options{Headless: s.Headless}, logger.With("browser"))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser runtime: %w", err)
		}
		return rt, nil

	case config.BackendWS:
		rt, err := wsbridge.Dial(ctx, s.Endpoint, logger.With("ws"))
		if err != nil {
			return nil, err
		}
		go func() {
			select {
			case <-rt.Done():
				logger.Warnf("overlay host %s disconnected", s.Endpoint)
			case <-ctx.Done():
			}
		}()
		return rt, nil

	default:
		return nil, fmt.Errorf("unknown runtime %q", s.Backend)
	}
}
