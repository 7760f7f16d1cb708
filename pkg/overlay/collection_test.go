package overlay

import (
	"errors"
	"testing"

	"github.com/entrhq/hud/pkg/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_AppendSpawning(t *testing.T) {
	c := NewCollection()

	assert.Equal(t, 0, c.AppendSpawning())
	assert.Equal(t, 1, c.AppendSpawning())
	assert.Equal(t, []Overlay{Spawning(), Spawning()}, c.Items())
}

func TestCollection_SpawnPending(t *testing.T) {
	c := NewCollection()
	assert.False(t, c.SpawnPending())

	c.AppendSpawning()
	assert.True(t, c.SpawnPending())

	require.NoError(t, c.PromoteLastSpawning(1))
	assert.False(t, c.SpawnPending())

	require.NoError(t, c.MarkClosing(0, 1))
	assert.False(t, c.SpawnPending())
}

func TestCollection_PromoteLastSpawning(t *testing.T) {
	t.Run("promotes the last entry", func(t *testing.T) {
		c := NewCollection()
		c.AppendSpawning()
		c.AppendSpawning()

		require.NoError(t, c.PromoteLastSpawning(3))
		assert.Equal(t, []Overlay{Spawning(), Live(3)}, c.Items())
	})

	t.Run("empty collection is a desync", func(t *testing.T) {
		err := NewCollection().PromoteLastSpawning(1)
		assert.ErrorIs(t, err, ErrDesync)
	})

	t.Run("last entry not spawning is a desync", func(t *testing.T) {
		c := NewCollection()
		c.AppendSpawning()
		c.AppendSpawning()
		require.NoError(t, c.PromoteLastSpawning(1))

		err := c.PromoteLastSpawning(2)
		assert.ErrorIs(t, err, ErrDesync)
		assert.Equal(t, []Overlay{Spawning(), Live(1)}, c.Items(), "collection must be untouched")
	})
}

func TestCollection_MarkClosing(t *testing.T) {
	c := NewCollection()
	c.AppendSpawning()
	require.NoError(t, c.PromoteLastSpawning(7))
	c.AppendSpawning()

	t.Run("spawning entry is rejected", func(t *testing.T) {
		err := c.MarkClosing(1, 7)
		assert.ErrorIs(t, err, ErrNotAlive)
		assert.ErrorIs(t, err, ErrDesync)
	})

	t.Run("out of range is rejected", func(t *testing.T) {
		assert.ErrorIs(t, c.MarkClosing(5, 7), ErrNotAlive)
		assert.ErrorIs(t, c.MarkClosing(-1, 7), ErrNotAlive)
	})

	t.Run("uid mismatch is a desync", func(t *testing.T) {
		err := c.MarkClosing(0, 8)
		assert.ErrorIs(t, err, ErrDesync)
		assert.False(t, errors.Is(err, ErrNotAlive))
	})

	t.Run("live entry becomes closing", func(t *testing.T) {
		require.NoError(t, c.MarkClosing(0, 7))
		assert.Equal(t, []Overlay{Closing(7), Spawning()}, c.Items())
	})
}

func TestCollection_RemoveByID(t *testing.T) {
	build := func(t *testing.T) *Collection {
		t.Helper()
		c := NewCollection()
		for _, uid := range []runtime.UID{1, 2, 3} {
			c.AppendSpawning()
			require.NoError(t, c.PromoteLastSpawning(uid))
		}
		require.NoError(t, c.MarkClosing(1, 2))
		return c
	}

	t.Run("removes the closing entry and keeps order", func(t *testing.T) {
		c := build(t)
		require.NoError(t, c.RemoveByID(2))
		assert.Equal(t, []Overlay{Live(1), Live(3)}, c.Items())
	})

	t.Run("live entries never match", func(t *testing.T) {
		c := build(t)
		assert.ErrorIs(t, c.RemoveByID(3), ErrDesync)
		assert.Equal(t, 3, c.Len())
	})

	t.Run("second removal is a desync", func(t *testing.T) {
		c := build(t)
		require.NoError(t, c.RemoveByID(2))
		assert.ErrorIs(t, c.RemoveByID(2), ErrDesync)
	})
}

func TestCollection_CountsAndItemsCopy(t *testing.T) {
	c := NewCollection()
	c.AppendSpawning()
	require.NoError(t, c.PromoteLastSpawning(1))
	c.AppendSpawning()
	require.NoError(t, c.PromoteLastSpawning(2))
	require.NoError(t, c.MarkClosing(0, 1))
	c.AppendSpawning()

	counts := c.Counts()
	assert.Equal(t, Counts{Spawning: 1, Live: 1, Closing: 1}, counts)
	assert.Equal(t, 3, counts.Total())

	items := c.Items()
	items[0] = Live(99)
	first, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, Closing(1), first, "Items must return a copy")
}
