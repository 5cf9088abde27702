package kv

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and local development
// without a Redis instance. TTLs are honored lazily on read.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]memoryEntry
	hashes map[string]map[string]string
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]memoryEntry),
		hashes: make(map[string]map[string]string),
	}
}

func (m *MemoryStore) get(key string) (string, bool) {
	entry, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

func (m *MemoryStore) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	raw, ok := m.get(key)
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryEntry{value: string(raw)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.data[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.data, k)
		delete(m.hashes, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.get(key)
	if !ok {
		_, ok = m.hashes[key]
	}
	return ok, nil
}

func (m *MemoryStore) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if raw, ok := m.get(key); ok {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	m.data[key] = memoryEntry{value: strconv.FormatInt(n, 10)}
	return n, nil
}

func (m *MemoryStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.data[key]; ok {
		entry.expiresAt = time.Now().Add(ttl)
		m.data[key] = entry
	}
	return nil
}

func (m *MemoryStore) HashSet(_ context.Context, key, field string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string]string)
	}
	m.hashes[key][field] = string(raw)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) HashDelete(_ context.Context, key string, fields ...string) error {
	m.mu.Lock()
	for _, f := range fields {
		delete(m.hashes[key], f)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) HashGet(_ context.Context, key, field string, dest interface{}) (bool, error) {
	m.mu.RLock()
	raw, ok := m.hashes[key][field]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) HashGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.hashes[key]))
	for f, v := range m.hashes[key] {
		out[f] = v
	}
	return out, nil
}

func (m *MemoryStore) HashLen(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.hashes[key])), nil
}

func (m *MemoryStore) HashIncrement(_ context.Context, key, field string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string]string)
	}
	var n int64
	if raw, ok := m.hashes[key][field]; ok {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	m.hashes[key][field] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}
