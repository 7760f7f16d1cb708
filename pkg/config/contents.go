package config

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/entrhq/hud/pkg/runtime"
)

// SectionIDContents is the identifier for the contents presets section
const SectionIDContents = "contents"

// Preset is a named website an overlay can be reconfigured to show.
type Preset struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Contents converts the preset into runtime contents.
func (p Preset) Contents() runtime.WebContents {
	return runtime.WebContents{Width: p.Width, Height: p.Height, URL: p.URL}
}

// DefaultPreset is the popout chat of the swfsql Twitch channel.
var DefaultPreset = Preset{
	Name:   "twitch-chat",
	URL:    "https://www.twitch.tv/popout/swfsql/chat?popout=",
	Width:  400,
	Height: 500,
}

// ContentsSection holds the ordered preset list.
type ContentsSection struct {
	presets []Preset
	mu      sync.RWMutex
}

// NewContentsSection returns a section holding only DefaultPreset.
func NewContentsSection() *ContentsSection {
	return &ContentsSection{presets: []Preset{DefaultPreset}}
}

func (s *ContentsSection) ID() string    { return SectionIDContents }
func (s *ContentsSection) Title() string { return "Contents" }

func (s *ContentsSection) Description() string {
	return "Websites that live overlays can be reconfigured to show."
}

// Data returns the presets as a list of objects.
func (s *ContentsSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]any, 0, len(s.presets))
	for _, p := range s.presets {
		list = append(list, map[string]any{
			"name":   p.Name,
			"url":    p.URL,
			"width":  p.Width,
			"height": p.Height,
		})
	}
	return map[string]any{"presets": list}
}

// SetData replaces the preset list.
func (s *ContentsSection) SetData(data map[string]any) error {
	raw, ok := data["presets"]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("invalid value type for presets: expected list, got %T", raw)
	}

	presets := make([]Preset, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("preset %d: expected object, got %T", i, item)
		}
		p, err := presetFrom(fields)
		if err != nil {
			return fmt.Errorf("preset %d: %w", i, err)
		}
		presets = append(presets, p)
	}

	s.mu.Lock()
	s.presets = presets
	s.mu.Unlock()
	return nil
}

// Validate requires at least one preset, unique names, http(s) URLs and a
// positive size.
func (s *ContentsSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.presets) == 0 {
		return errors.New("at least one preset is required")
	}

	seen := make(map[string]bool, len(s.presets))
	for _, p := range s.presets {
		if p.Name == "" {
			return errors.New("preset name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true

		u, err := url.Parse(p.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("preset %q: url must be http or https, got %q", p.Name, p.URL)
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("preset %q: size must be positive, got %dx%d", p.Name, p.Width, p.Height)
		}
	}
	return nil
}

// Reset restores the single default preset.
func (s *ContentsSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets = []Preset{DefaultPreset}
}

// Presets returns a copy of the preset list.
func (s *ContentsSection) Presets() []Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Add appends a preset.
func (s *ContentsSection) Add(p Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets = append(s.presets, p)
}

func presetFrom(fields map[string]any) (Preset, error) {
	var p Preset
	var ok bool

	if p.Name, ok = fields["name"].(string); !ok {
		return p, fmt.Errorf("name: expected string, got %T", fields["name"])
	}
	if p.URL, ok = fields["url"].(string); !ok {
		return p, fmt.Errorf("url: expected string, got %T", fields["url"])
	}

	var err error
	if p.Width, err = intField(fields, "width"); err != nil {
		return p, err
	}
	if p.Height, err = intField(fields, "height"); err != nil {
		return p, err
	}
	return p, nil
}

func intField(fields map[string]any, key string) (int, error) {
	switch v := fields[key].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: expected number, got %T", key, fields[key])
	}
}
