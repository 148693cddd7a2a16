package golden

import (
	"sort"
	"sync"
	"time"

	"github.com/randalmurphal/revolve/pkg/revolve"
)

// MemoryStore is an in-memory golden fixture store for testing. Data is
// lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedFixture
	closed bool
}

type storedFixture struct {
	actions   []revolve.Action
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory golden fixture store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]storedFixture)}
}

// Save implements Store.
func (m *MemoryStore) Save(key string, actions []revolve.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy to avoid retaining the caller's slice.
	stored := make([]revolve.Action, len(actions))
	copy(stored, actions)

	m.data[key] = storedFixture{actions: stored, timestamp: time.Now().UTC()}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(key string) ([]revolve.Action, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	f, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	result := make([]revolve.Action, len(f.actions))
	copy(result, f.actions)
	return result, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for key, f := range m.data {
		infos = append(infos, Info{
			Key: key, Steps: len(f.actions), Timestamp: f.timestamp,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, key)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of stored fixtures. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
