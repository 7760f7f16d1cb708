// Package config holds hud's persisted settings as independently validated
// sections stored together in one JSON file.
package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates the global manager over the file at configPath (the
// default path when empty), registers the hud sections and loads them.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager := NewManager(store)
	for _, section := range []Section{NewRuntimeSection(), NewContentsSection(), NewUISection()} {
		if err := manager.RegisterSection(section); err != nil {
			return err
		}
	}

	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

func section[T Section](id string) T {
	var zero T
	if !IsInitialized() {
		return zero
	}
	s, ok := Global().GetSection(id)
	if !ok {
		return zero
	}
	typed, ok := s.(T)
	if !ok {
		return zero
	}
	return typed
}

// GetRuntime returns the runtime section, or nil before Initialize.
func GetRuntime() *RuntimeSection {
	return section[*RuntimeSection](SectionIDRuntime)
}

// GetContents returns the contents section, or nil before Initialize.
func GetContents() *ContentsSection {
	return section[*ContentsSection](SectionIDContents)
}

// GetUI returns the UI section, or nil before Initialize.
func GetUI() *UISection {
	return section[*UISection](SectionIDUI)
}

// Presets returns the configured presets, or just DefaultPreset before
// Initialize.
func Presets() []Preset {
	if c := GetContents(); c != nil {
		return c.Presets()
	}
	return []Preset{DefaultPreset}
}
