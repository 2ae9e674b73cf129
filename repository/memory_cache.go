package repository

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process CacheRepository used when Redis is disabled.
// Entries expire after ttl (zero keeps them until evicted) and at most
// maxEntries are held; the oldest write is evicted first.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List // front is the oldest write
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return newMemoryCache(ttl, maxEntries, time.Now)
}

func newMemoryCache(ttl time.Duration, maxEntries int, now func() time.Time) *MemoryCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		now:        now,
	}
}

// Get drops the entry when it has expired.
func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return "", false
	}
	entry := elem.Value.(*memoryEntry)
	if m.expired(entry) {
		m.remove(elem)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}

	if elem, ok := m.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		m.order.MoveToBack(elem)
		return nil
	}

	for m.order.Len() >= m.maxEntries {
		m.remove(m.order.Front())
	}
	m.entries[key] = m.order.PushBack(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	return nil
}

// Len reports the number of held entries, including expired ones not yet
// dropped.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *MemoryCache) expired(e *memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

func (m *MemoryCache) remove(elem *list.Element) {
	m.order.Remove(elem)
	delete(m.entries, elem.Value.(*memoryEntry).key)
}
