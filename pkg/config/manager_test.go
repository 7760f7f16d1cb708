package config

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSection is a test implementation of the Section interface
type mockSection struct {
	id          string
	data        map[string]any
	validateErr error
	setErr      error
}

func (m *mockSection) ID() string           { return m.id }
func (m *mockSection) Title() string        { return m.id }
func (m *mockSection) Description() string  { return "" }
func (m *mockSection) Data() map[string]any { return m.data }
func (m *mockSection) Validate() error      { return m.validateErr }
func (m *mockSection) Reset()               { m.data = map[string]any{} }

func (m *mockSection) SetData(data map[string]any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data = data
	return nil
}

// mockStore is a test implementation of the Store interface
type mockStore struct {
	sections map[string]map[string]any
	loadErr  error
	saveErr  error
	saves    int
}

func newMockStore() *mockStore {
	return &mockStore{sections: make(map[string]map[string]any)}
}

func (m *mockStore) Load() error { return m.loadErr }

func (m *mockStore) Save() error {
	m.saves++
	return m.saveErr
}

func (m *mockStore) GetSection(id string) (map[string]any, error) {
	return clone(m.sections[id]), nil
}

func (m *mockStore) SetSection(id string, data map[string]any) error {
	m.sections[id] = data
	return nil
}

func TestManager_RegisterSection(t *testing.T) {
	t.Run("keeps registration order", func(t *testing.T) {
		manager := NewManager(newMockStore())
		for _, id := range []string{"first", "second", "third"} {
			require.NoError(t, manager.RegisterSection(&mockSection{id: id}))
		}

		sections := manager.GetSections()
		require.Len(t, sections, 3)
		assert.Equal(t, "first", sections[0].ID())
		assert.Equal(t, "third", sections[2].ID())
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		manager := NewManager(newMockStore())
		require.NoError(t, manager.RegisterSection(&mockSection{id: "dup"}))
		assert.Error(t, manager.RegisterSection(&mockSection{id: "dup"}))
	})

	t.Run("lookup", func(t *testing.T) {
		store := newMockStore()
		manager := NewManager(store)
		assert.Same(t, store, manager.Store())
		require.NoError(t, manager.RegisterSection(&mockSection{id: "a"}))

		s, ok := manager.GetSection("a")
		require.True(t, ok)
		assert.Equal(t, "a", s.ID())

		_, ok = manager.GetSection("missing")
		assert.False(t, ok)
	})
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("applies stored data", func(t *testing.T) {
		store := newMockStore()
		store.sections["a"] = map[string]any{"key": "value"}
		manager := NewManager(store)
		section := &mockSection{id: "a", data: map[string]any{}}
		untouched := &mockSection{id: "b", data: map[string]any{"keep": true}}
		require.NoError(t, manager.RegisterSection(section))
		require.NoError(t, manager.RegisterSection(untouched))

		require.NoError(t, manager.LoadAll())

		assert.Equal(t, "value", section.data["key"])
		assert.Equal(t, true, untouched.data["keep"])
	})

	t.Run("store error", func(t *testing.T) {
		store := newMockStore()
		store.loadErr = errors.New("disk gone")
		assert.Error(t, NewManager(store).LoadAll())
	})

	t.Run("bad data is an error", func(t *testing.T) {
		store := newMockStore()
		store.sections["a"] = map[string]any{"key": 1}
		manager := NewManager(store)
		require.NoError(t, manager.RegisterSection(&mockSection{id: "a", setErr: errors.New("wrong type")}))

		assert.Error(t, manager.LoadAll())
	})

	t.Run("invalid data resets the section", func(t *testing.T) {
		store := newMockStore()
		store.sections["a"] = map[string]any{"key": "bad"}
		manager := NewManager(store)
		section := &mockSection{id: "a", validateErr: errors.New("invalid")}
		require.NoError(t, manager.RegisterSection(section))

		require.NoError(t, manager.LoadAll())
		assert.Empty(t, section.data)
	})
}

func TestManager_SaveAll(t *testing.T) {
	t.Run("writes every section", func(t *testing.T) {
		store := newMockStore()
		manager := NewManager(store)
		require.NoError(t, manager.RegisterSection(&mockSection{id: "a", data: map[string]any{"k": "v"}}))

		require.NoError(t, manager.SaveAll())
		assert.Equal(t, "v", store.sections["a"]["k"])
		assert.Equal(t, 1, store.saves)
	})

	t.Run("nothing written when a section is invalid", func(t *testing.T) {
		store := newMockStore()
		manager := NewManager(store)
		require.NoError(t, manager.RegisterSection(&mockSection{id: "ok", data: map[string]any{"k": "v"}}))
		require.NoError(t, manager.RegisterSection(&mockSection{id: "bad", validateErr: fmt.Errorf("nope")}))

		assert.Error(t, manager.SaveAll())
		assert.Empty(t, store.sections)
		assert.Zero(t, store.saves)
	})

	t.Run("store save error", func(t *testing.T) {
		store := newMockStore()
		store.saveErr = errors.New("read-only")
		assert.Error(t, NewManager(store).SaveAll())
	})
}

func TestManager_ResetAll(t *testing.T) {
	manager := NewManager(newMockStore())
	a := &mockSection{id: "a", data: map[string]any{"k": 1}}
	b := &mockSection{id: "b", data: map[string]any{"k": 2}}
	require.NoError(t, manager.RegisterSection(a))
	require.NoError(t, manager.RegisterSection(b))

	manager.ResetAll()

	assert.Empty(t, a.data)
	assert.Empty(t, b.data)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager(newMockStore())
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = manager.RegisterSection(&mockSection{id: fmt.Sprintf("s%d", i)})
		}(i)
		go func() {
			defer wg.Done()
			manager.GetSections()
			manager.GetSection("s0")
		}()
	}
	wg.Wait()
	assert.Len(t, manager.GetSections(), 10)
}
