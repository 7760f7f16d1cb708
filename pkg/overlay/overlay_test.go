package overlay

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlay_Predicates(t *testing.T) {
	tests := []struct {
		name     string
		overlay  Overlay
		spawning bool
		alive    bool
		closing  bool
	}{
		{name: "spawning", overlay: Spawning(), spawning: true},
		{name: "zero value is spawning", overlay: Overlay{}, spawning: true},
		{name: "live", overlay: Live(7), alive: true},
		{name: "closing", overlay: Closing(7), closing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.spawning, tt.overlay.IsSpawning())
			assert.Equal(t, tt.alive, tt.overlay.IsAlive())
			assert.Equal(t, tt.closing, tt.overlay.IsClosing())

			_, hasAlive := tt.overlay.Alive()
			_, hasClosing := tt.overlay.Closing()
			assert.Equal(t, tt.overlay.IsAlive(), hasAlive, "Alive must agree with IsAlive")
			assert.Equal(t, tt.overlay.IsClosing(), hasClosing, "Closing must agree with IsClosing")
		})
	}
}

func TestOverlay_Accessors(t *testing.T) {
	uid, ok := Live(42).Alive()
	assert.True(t, ok)
	assert.EqualValues(t, 42, uid)

	uid, ok = Closing(9).Closing()
	assert.True(t, ok)
	assert.EqualValues(t, 9, uid)

	uid, ok = Closing(9).Alive()
	assert.False(t, ok)
	assert.Zero(t, uid)
}

func TestOverlay_CompareAndEqual(t *testing.T) {
	assert.True(t, Live(3).Equal(Live(3)))
	assert.False(t, Live(3).Equal(Live(4)))
	assert.False(t, Live(3).Equal(Closing(3)))
	assert.True(t, Spawning().Equal(Overlay{}))

	items := []Overlay{Closing(1), Live(5), Spawning(), Live(2)}
	sort.Slice(items, func(i, j int) bool { return items[i].Compare(items[j]) < 0 })

	assert.Equal(t, []Overlay{Spawning(), Live(2), Live(5), Closing(1)}, items)
}

func TestOverlay_String(t *testing.T) {
	assert.Equal(t, "Spawning..", Spawning().String())
	assert.Equal(t, "Overlay #7", Live(7).String())
	assert.Equal(t, "Closing #7..", Closing(7).String())
}
