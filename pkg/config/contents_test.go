package config

import (
	"encoding/json"
	"testing"

	"github.com/entrhq/hud/pkg/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentsSection_Default(t *testing.T) {
	s := NewContentsSection()
	require.NoError(t, s.Validate())
	require.Equal(t, []Preset{DefaultPreset}, s.Presets())

	assert.Equal(t, runtime.WebContents{
		Width:  400,
		Height: 500,
		URL:    "https://www.twitch.tv/popout/swfsql/chat?popout=",
	}, DefaultPreset.Contents())
}

func TestContentsSection_SetDataFromJSON(t *testing.T) {
	raw := `{"presets":[
		{"name":"chat","url":"https://example.com/chat","width":400,"height":500},
		{"name":"alerts","url":"https://example.com/alerts","width":800,"height":120}
	]}`
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	s := NewContentsSection()
	require.NoError(t, s.SetData(data))
	require.NoError(t, s.Validate())

	presets := s.Presets()
	require.Len(t, presets, 2)
	assert.Equal(t, Preset{Name: "alerts", URL: "https://example.com/alerts", Width: 800, Height: 120}, presets[1])
}

func TestContentsSection_DataFeedsSetData(t *testing.T) {
	s := NewContentsSection()
	s.Add(Preset{Name: "b", URL: "https://example.com", Width: 1, Height: 1})

	other := NewContentsSection()
	require.NoError(t, other.SetData(s.Data()))
	assert.Equal(t, s.Presets(), other.Presets())
}

func TestContentsSection_SetDataRejectsMalformed(t *testing.T) {
	s := NewContentsSection()
	assert.Error(t, s.SetData(map[string]any{"presets": "chat"}))
	assert.Error(t, s.SetData(map[string]any{"presets": []any{"chat"}}))
	assert.Error(t, s.SetData(map[string]any{"presets": []any{map[string]any{"name": "chat", "url": "https://x.y", "width": "wide", "height": 1}}}))

	require.NoError(t, s.SetData(map[string]any{"unrelated": true}))
	assert.Equal(t, []Preset{DefaultPreset}, s.Presets())
}

func TestContentsSection_Validate(t *testing.T) {
	good := Preset{Name: "chat", URL: "https://example.com", Width: 10, Height: 10}

	tests := []struct {
		name    string
		presets []Preset
	}{
		{"empty", nil},
		{"no name", []Preset{{URL: good.URL, Width: 1, Height: 1}}},
		{"duplicate", []Preset{good, good}},
		{"not http", []Preset{{Name: "x", URL: "file:///etc/passwd", Width: 1, Height: 1}}},
		{"zero size", []Preset{{Name: "x", URL: good.URL}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ContentsSection{presets: tt.presets}
			assert.Error(t, s.Validate())
		})
	}

	s := NewContentsSection()
	s.Add(good)
	assert.NoError(t, s.Validate())
	s.Reset()
	assert.Equal(t, []Preset{DefaultPreset}, s.Presets())
}
