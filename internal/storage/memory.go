package storage

import "sync"

// Memory is the non-durable KV backend used in tests and for DATA_BACKEND=memory runs.
type Memory struct {
	mu      sync.RWMutex
	records map[string]string
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]string)}
}

// Seed returns a memory backend preloaded with the given records.
func Seed(records map[string]string) *Memory {
	m := NewMemory()
	for key, value := range records {
		m.records[key] = value
	}
	return m
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.records[key]
	return value, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = value
	return nil
}

func (m *Memory) SetAll(pairs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range pairs {
		m.records[key] = value
	}
	return nil
}

func (m *Memory) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.records, key)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
