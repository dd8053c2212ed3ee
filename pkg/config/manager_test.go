package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSection is a test implementation of the Section interface
type mockSection struct {
	id          string
	data        map[string]interface{}
	validateErr error
}

func (m *mockSection) ID() string                                { return m.id }
func (m *mockSection) Title() string                             { return m.id }
func (m *mockSection) Data() map[string]interface{}              { return m.data }
func (m *mockSection) SetData(data map[string]interface{}) error { m.data = data; return nil }
func (m *mockSection) Validate() error                           { return m.validateErr }
func (m *mockSection) Reset()                                    { m.data = make(map[string]interface{}) }

// mockStore is a test implementation of the Store interface
type mockStore struct {
	sections map[string]map[string]interface{}
	loadErr  error
	saveErr  error
	saves    int
}

func newMockStore() *mockStore {
	return &mockStore{sections: make(map[string]map[string]interface{})}
}

func (m *mockStore) Load() error { return m.loadErr }

func (m *mockStore) Save() error {
	m.saves++
	return m.saveErr
}

func (m *mockStore) GetSection(sectionID string) (map[string]interface{}, error) {
	if data, exists := m.sections[sectionID]; exists {
		return data, nil
	}
	return make(map[string]interface{}), nil
}

func (m *mockStore) SetSection(sectionID string, data map[string]interface{}) error {
	m.sections[sectionID] = data
	return nil
}

func TestManager_RegisterSection(t *testing.T) {
	m := NewManager(newMockStore())

	require.NoError(t, m.RegisterSection(&mockSection{id: "b"}))
	require.NoError(t, m.RegisterSection(&mockSection{id: "a"}))
	assert.ErrorContains(t, m.RegisterSection(&mockSection{id: "a"}), "already registered")

	sections := m.GetSections()
	require.Len(t, sections, 2)
	assert.Equal(t, "b", sections[0].ID())
	assert.Equal(t, "a", sections[1].ID())

	_, ok := m.GetSection("a")
	assert.True(t, ok)
	_, ok = m.GetSection("c")
	assert.False(t, ok)
}

func TestManager_LoadAll(t *testing.T) {
	store := newMockStore()
	store.sections["llm"] = map[string]interface{}{"api_key": "sk-1"}
	m := NewManager(store)
	section := &mockSection{id: "llm"}
	require.NoError(t, m.RegisterSection(section))

	require.NoError(t, m.LoadAll())
	assert.Equal(t, "sk-1", section.data["api_key"])

	store.loadErr = errors.New("disk gone")
	assert.ErrorContains(t, m.LoadAll(), "failed to load store")
}

func TestManager_SaveAll(t *testing.T) {
	store := newMockStore()
	m := NewManager(store)
	require.NoError(t, m.RegisterSection(&mockSection{id: "llm", data: map[string]interface{}{"api_key": "sk-2"}}))

	require.NoError(t, m.SaveAll())
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, "sk-2", store.sections["llm"]["api_key"])
}

func TestManager_SaveAll_ValidationFails(t *testing.T) {
	store := newMockStore()
	m := NewManager(store)
	require.NoError(t, m.RegisterSection(&mockSection{id: "llm", validateErr: errors.New("bad")}))

	assert.ErrorContains(t, m.SaveAll(), `invalid section "llm"`)
	assert.Zero(t, store.saves)
}

func TestManager_ResetAll(t *testing.T) {
	m := NewManager(newMockStore())
	section := &mockSection{id: "llm", data: map[string]interface{}{"api_key": "sk"}}
	require.NoError(t, m.RegisterSection(section))

	m.ResetAll()
	assert.Empty(t, section.data)
}
