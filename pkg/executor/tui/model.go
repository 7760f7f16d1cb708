package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/hud/pkg/config"
	"github.com/entrhq/hud/pkg/executor/tui/modal"
	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/overlay"
	"github.com/entrhq/hud/pkg/runtime"
)

// model is the serialized owner of the overlay collection. Every mutation
// happens inside Update.
type model struct {
	collection *overlay.Collection
	dispatcher *overlay.Dispatcher
	logger     *logging.Logger

	presets []config.Preset
	// chosen maps a live overlay to its selected preset index
	chosen   map[runtime.UID]int
	selected int
	spawn    runtime.SpawnOptions

	showCounts   bool
	confirmClose bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	modal   modal.Modal

	width  int
	height int
	status string

	// fatal is the first desync error; once set the program quits
	fatal error
}

// closeConfirmedMsg is sent when the user accepts a close confirmation.
type closeConfirmedMsg struct {
	uid runtime.UID
}

func newModel(rt runtime.Runtime, opts Options, logger *logging.Logger) *model {
	presets := opts.Presets
	if len(presets) == 0 {
		presets = []config.Preset{config.DefaultPreset}
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = pendingStyle

	collection := overlay.NewCollection()
	return &model{
		collection:   collection,
		dispatcher:   overlay.NewDispatcher(rt, collection, logger),
		logger:       logger,
		presets:      presets,
		chosen:       make(map[runtime.UID]int),
		spawn:        opts.Spawn,
		showCounts:   opts.ShowCounts,
		confirmClose: opts.ConfirmClose,
		keys:         defaultKeyMap(),
		help:         help.New(),
		spinner:      s,
	}
}

// Init starts the spinner used for pending rows.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// presetFor returns the preset currently chosen for uid.
func (m *model) presetFor(uid runtime.UID) config.Preset {
	return m.presets[m.chosen[uid]%len(m.presets)]
}

func (m *model) selectedRow() (overlay.Overlay, bool) {
	return m.collection.At(m.selected)
}

func (m *model) clampSelection() {
	if m.selected >= m.collection.Len() {
		m.selected = m.collection.Len() - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
