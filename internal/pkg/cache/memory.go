package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ougirez/covidboard/internal/pkg/constants"
)

type memoryEntry struct {
	body      []byte
	fetchedAt time.Time
}

type Memory struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
	mx      sync.Mutex
}

// NewMemory returns an in-process cache. Expired entries are dropped lazily on Get.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *Memory) Get(_ context.Context, url string) ([]byte, time.Time, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	e, ok := m.entries[url]
	if !ok {
		return nil, time.Time{}, constants.ErrCacheMiss
	}
	if m.now().Sub(e.fetchedAt) >= m.ttl {
		delete(m.entries, url)
		return nil, time.Time{}, constants.ErrCacheMiss
	}

	return e.body, e.fetchedAt, nil
}

func (m *Memory) Set(_ context.Context, url string, body []byte, fetchedAt time.Time) error {
	if m.ttl <= 0 {
		return nil
	}

	m.mx.Lock()
	defer m.mx.Unlock()

	m.entries[url] = memoryEntry{body: body, fetchedAt: fetchedAt}
	return nil
}

func (m *Memory) Purge(context.Context) (int64, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	n := int64(len(m.entries))
	m.entries = make(map[string]memoryEntry)
	return n, nil
}

func (m *Memory) Close() error { return nil }
