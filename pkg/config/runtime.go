package config

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"
)

const (
	// SectionIDRuntime is the identifier for the runtime section
	SectionIDRuntime = "runtime"

	BackendSim     = "sim"
	BackendBrowser = "browser"
	BackendWS      = "ws"

	defaultBackend    = BackendSim
	defaultSpawnDelay = 300 * time.Millisecond
	defaultCloseDelay = 150 * time.Millisecond
	maxDelay          = 10 * time.Second
)

// RuntimeSection selects and tunes the overlay runtime.
type RuntimeSection struct {
	Backend    string
	SpawnDelay time.Duration
	CloseDelay time.Duration
	Endpoint   string
	Headless   bool
	mu         sync.RWMutex
}

// NewRuntimeSection returns the section with defaults: the simulated runtime.
func NewRuntimeSection() *RuntimeSection {
	s := &RuntimeSection{}
	s.Reset()
	return s
}

func (s *RuntimeSection) ID() string    { return SectionIDRuntime }
func (s *RuntimeSection) Title() string { return "Runtime" }

func (s *RuntimeSection) Description() string {
	return "Which overlay runtime to drive (sim, browser or ws) and its settings."
}

// Data returns the current settings.
func (s *RuntimeSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"backend":     s.Backend,
		"spawn_delay": s.SpawnDelay.String(),
		"close_delay": s.CloseDelay.String(),
		"endpoint":    s.Endpoint,
		"headless":    s.Headless,
	}
}

// SetData applies stored settings.
func (s *RuntimeSection) SetData(data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "backend":
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for backend: expected string, got %T", value)
			}
			s.Backend = v
		case "endpoint":
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for endpoint: expected string, got %T", value)
			}
			s.Endpoint = v
		case "headless":
			v, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}
			s.Headless = v
		case "spawn_delay":
			d, err := parseDuration(key, value)
			if err != nil {
				return err
			}
			s.SpawnDelay = d
		case "close_delay":
			d, err := parseDuration(key, value)
			if err != nil {
				return err
			}
			s.CloseDelay = d
		}
	}
	return nil
}

// Validate checks the backend name, the delays and the endpoint format. A ws
// backend without an endpoint is accepted here since the endpoint may come
// from the command line; RuntimeSettings.Validate checks the final values.
func (s *RuntimeSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.Backend {
	case BackendSim, BackendBrowser, BackendWS:
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	if s.Endpoint != "" {
		if err := validateEndpoint(s.Endpoint); err != nil {
			return err
		}
	}

	for name, d := range map[string]time.Duration{"spawn_delay": s.SpawnDelay, "close_delay": s.CloseDelay} {
		if d < 0 || d > maxDelay {
			return fmt.Errorf("%s must be between 0 and %v, got %v", name, maxDelay, d)
		}
	}
	return nil
}

// Reset restores the defaults.
func (s *RuntimeSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Backend = defaultBackend
	s.SpawnDelay = defaultSpawnDelay
	s.CloseDelay = defaultCloseDelay
	s.Endpoint = ""
	s.Headless = false
}

// Settings returns a consistent snapshot of every field.
func (s *RuntimeSection) Settings() RuntimeSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return RuntimeSettings{
		Backend:    s.Backend,
		SpawnDelay: s.SpawnDelay,
		CloseDelay: s.CloseDelay,
		Endpoint:   s.Endpoint,
		Headless:   s.Headless,
	}
}

// RuntimeSettings is a snapshot of RuntimeSection.
type RuntimeSettings struct {
	Backend    string
	SpawnDelay time.Duration
	CloseDelay time.Duration
	Endpoint   string
	Headless   bool
}

// Validate checks settings about to be used, after any overrides.
func (s RuntimeSettings) Validate() error {
	switch s.Backend {
	case BackendSim, BackendBrowser:
	case BackendWS:
		if s.Endpoint == "" {
			return errors.New("the ws backend needs an endpoint")
		}
		return validateEndpoint(s.Endpoint)
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	return nil
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return fmt.Errorf("endpoint must be a ws:// or wss:// URL, got %q", endpoint)
	}
	return nil
}

func parseDuration(key string, value any) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid duration string for %s: %w", key, err)
		}
		return d, nil
	case float64:
		// JSON numbers
		return time.Duration(v), nil
	case int64:
		return time.Duration(v), nil
	case time.Duration:
		return v, nil
	default:
		return 0, fmt.Errorf("invalid value type for %s: expected string or number, got %T", key, value)
	}
}
