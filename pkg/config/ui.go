package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDUI is the identifier for the UI settings section
	SectionIDUI = "ui"

	defaultShowCounts   = true
	defaultConfirmClose = false
)

// UISection manages user interface settings.
type UISection struct {
	ShowCounts   bool `json:"show_counts"`
	ConfirmClose bool `json:"confirm_close"`
	mu           sync.RWMutex
}

// NewUISection creates a new UI section with default settings.
func NewUISection() *UISection {
	return &UISection{
		ShowCounts:   defaultShowCounts,
		ConfirmClose: defaultConfirmClose,
	}
}

// ID returns the section identifier.
func (s *UISection) ID() string {
	return SectionIDUI
}

// Title returns the section title.
func (s *UISection) Title() string {
	return "UI Settings"
}

// Description returns the section description.
func (s *UISection) Description() string {
	return "Configure the overlay list: the state counts footer and close confirmation."
}

// Data returns the current configuration data.
func (s *UISection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"show_counts":   s.ShowCounts,
		"confirm_close": s.ConfirmClose,
	}
}

// SetData updates the configuration from the provided data.
func (s *UISection) SetData(data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "show_counts":
			v, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for show_counts: expected bool, got %T", value)
			}
			s.ShowCounts = v
		case "confirm_close":
			v, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for confirm_close: expected bool, got %T", value)
			}
			s.ConfirmClose = v
		default:
			// Ignore unknown keys for forward compatibility
		}
	}
	return nil
}

// Validate always succeeds; both settings are plain switches.
func (s *UISection) Validate() error {
	return nil
}

// Reset resets the section to default configuration.
func (s *UISection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ShowCounts = defaultShowCounts
	s.ConfirmClose = defaultConfirmClose
}

// Settings returns (showCounts, confirmClose).
func (s *UISection) Settings() (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ShowCounts, s.ConfirmClose
}
