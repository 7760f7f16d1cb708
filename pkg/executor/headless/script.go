package headless

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultWaitTimeout bounds a wait step, or an add step waiting on the
// previous spawn, that does not set its own timeout.
const DefaultWaitTimeout = 10 * time.Second

// Script is a sequence of overlay actions and waits, loaded from YAML:
//
//	name: two chats
//	steps:
//	  - add: {count: 2}
//	  - wait: {live: 2, timeout: 5s}
//	  - reconfigure: {index: 0, preset: twitch-chat}
//	  - close: {index: 1}
//	  - wait: {live: 1, closing: 0}
type Script struct {
	Name    string        `yaml:"name"`
	Steps   []Step        `yaml:"steps"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig defines console verbosity.
type LoggingConfig struct {
	// Verbosity is one of quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity"`
}

// Step is exactly one action.
type Step struct {
	Add         *AddStep
	Reconfigure *ReconfigureStep
	Close       *CloseStep
	Wait        *WaitStep
}

// AddStep spawns Count overlays (one when zero), one at a time: each spawn
// waits up to Timeout for the previous one to complete.
type AddStep struct {
	Count   int           `yaml:"count"`
	Timeout time.Duration `yaml:"timeout"`
}

// ReconfigureStep shows the named preset in the live overlay at Index.
type ReconfigureStep struct {
	Index  int    `yaml:"index"`
	Preset string `yaml:"preset"`
}

// CloseStep closes the live overlay at Index.
type CloseStep struct {
	Index int `yaml:"index"`
}

// WaitStep blocks until every set count matches the collection.
type WaitStep struct {
	Live     *int          `yaml:"live"`
	Spawning *int          `yaml:"spawning"`
	Closing  *int          `yaml:"closing"`
	Total    *int          `yaml:"total"`
	Timeout  time.Duration `yaml:"timeout"`
}

// UnmarshalYAML decodes a single-key mapping such as {close: {index: 1}}.
// A bare "add" with no value adds one overlay.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Value == "add" {
		s.Add = &AddStep{}
		return nil
	}
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: a step must be a mapping with exactly one action", node.Line)
	}

	name, value := node.Content[0].Value, node.Content[1]
	switch name {
	case "add":
		s.Add = &AddStep{}
		return decodeOptional(value, s.Add)
	case "reconfigure":
		s.Reconfigure = &ReconfigureStep{}
		return value.Decode(s.Reconfigure)
	case "close":
		s.Close = &CloseStep{}
		return value.Decode(s.Close)
	case "wait":
		s.Wait = &WaitStep{}
		return value.Decode(s.Wait)
	default:
		return fmt.Errorf("line %d: unknown action %q", node.Line, name)
	}
}

func decodeOptional(node *yaml.Node, out any) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}
	return node.Decode(out)
}

// String names the action for progress output.
func (s Step) String() string {
	switch {
	case s.Add != nil:
		return fmt.Sprintf("add %d", max(s.Add.Count, 1))
	case s.Reconfigure != nil:
		return fmt.Sprintf("reconfigure row %d with %s", s.Reconfigure.Index, s.Reconfigure.Preset)
	case s.Close != nil:
		return fmt.Sprintf("close row %d", s.Close.Index)
	case s.Wait != nil:
		return "wait for " + s.Wait.describe()
	}
	return "empty step"
}

func (w *WaitStep) describe() string {
	desc := ""
	add := func(label string, v *int) {
		if v == nil {
			return
		}
		if desc != "" {
			desc += ", "
		}
		desc += fmt.Sprintf("%s=%d", label, *v)
	}
	add("live", w.Live)
	add("spawning", w.Spawning)
	add("closing", w.Closing)
	add("total", w.Total)
	return desc
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(raw)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}

// Validate checks every step and fills defaults.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("at least one step is required")
	}

	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	if s.Logging.Verbosity == "" {
		s.Logging.Verbosity = "normal"
	}
	if _, ok := verbosityLevels[s.Logging.Verbosity]; !ok {
		return fmt.Errorf("invalid logging verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", s.Logging.Verbosity)
	}
	return nil
}

func (s *Step) validate() error {
	switch {
	case s.Add != nil:
		if s.Add.Count < 0 {
			return errors.New("add count cannot be negative")
		}
		if s.Add.Timeout < 0 {
			return errors.New("timeout cannot be negative")
		}
		if s.Add.Timeout == 0 {
			s.Add.Timeout = DefaultWaitTimeout
		}
	case s.Reconfigure != nil:
		if s.Reconfigure.Index < 0 {
			return errors.New("index cannot be negative")
		}
		if s.Reconfigure.Preset == "" {
			return errors.New("reconfigure needs a preset name")
		}
	case s.Close != nil:
		if s.Close.Index < 0 {
			return errors.New("index cannot be negative")
		}
	case s.Wait != nil:
		w := s.Wait
		if w.Live == nil && w.Spawning == nil && w.Closing == nil && w.Total == nil {
			return errors.New("wait needs at least one of live, spawning, closing, total")
		}
		for _, v := range []*int{w.Live, w.Spawning, w.Closing, w.Total} {
			if v != nil && *v < 0 {
				return errors.New("wait counts cannot be negative")
			}
		}
		if w.Timeout < 0 {
			return errors.New("timeout cannot be negative")
		}
		if w.Timeout == 0 {
			w.Timeout = DefaultWaitTimeout
		}
	default:
		return errors.New("no action")
	}
	return nil
}
