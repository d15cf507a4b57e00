package kv

import (
	"sort"
	"sync"
)

// Memory is a thread-safe, map-backed Store. It is the default state
// manager for tests; production deployments back the sequencer's main
// state with Pebble instead.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Del(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Iter(r Range) Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if r.Contains([]byte(k)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	entries := make([]kvEntry, len(keys))
	for i, k := range keys {
		entries[i] = kvEntry{key: []byte(k), value: append([]byte(nil), m.data[k]...)}
	}
	return &memIterator{entries: entries, pos: -1}
}

type kvEntry struct {
	key   []byte
	value []byte
}

// memIterator walks a pre-sorted snapshot taken under Memory's read lock,
// so it is safe even if the caller never drains it: no lock is held between
// Iter and Release.
type memIterator struct {
	entries []kvEntry
	pos     int
}

func (it *memIterator) Next() bool {
	it.pos++
	return it.pos < len(it.entries)
}

func (it *memIterator) Key() []byte {
	return it.entries[it.pos].key
}

func (it *memIterator) Value() []byte {
	return it.entries[it.pos].value
}

func (it *memIterator) Err() error { return nil }

func (it *memIterator) Release() {
	it.entries = nil
}
