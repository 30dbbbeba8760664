package config

import "sync"

// MemStore is an in-memory Store for tests and offline tools.
type MemStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

func (m *MemStore) Get(category, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[category+"/"+key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (m *MemStore) Set(category, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[category+"/"+key] = append([]byte(nil), value...)
	return nil
}

func (m *MemStore) Close() error { return nil }
