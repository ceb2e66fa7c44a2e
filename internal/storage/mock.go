package storage

import (
	"context"
	"sync"
)

var _ Store = (*MockStore)(nil)

// MockStore is an in-memory Store for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// Spies for method calls
	LoadFunc func(key string) ([]byte, error)
	SaveFunc func(key string, value []byte) error

	// Call records
	SaveCalls []SaveCall
}

// SaveCall holds the arguments for a call to Save.
type SaveCall struct {
	Key   string
	Value []byte
}

// NewMock creates an empty MockStore.
func NewMock() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

func (m *MockStore) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(key)
	}
	value, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MockStore) Save(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, SaveCall{Key: key, Value: append([]byte(nil), value...)})
	if m.SaveFunc != nil {
		return m.SaveFunc(key, value)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Put seeds a value without recording a call.
func (m *MockStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// Saves returns the number of Save calls so far.
func (m *MockStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveCalls)
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = nil
}
