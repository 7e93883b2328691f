package store

import (
	"context"
	"sync"

	"github.com/thdgm/urlshortener/internal/shorturl"
)

// MemoryStore is an in-memory implementation of shorturl.Repository and
// shorturl.ClickStore.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[shorturl.ID]shorturl.ShortURL
	clicks map[shorturl.ID][]shorturl.Click
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links:  make(map[shorturl.ID]shorturl.ShortURL),
		clicks: make(map[shorturl.ID][]shorturl.Click),
	}
}

func (m *MemoryStore) Save(_ context.Context, link *shorturl.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[link.ID] = *link

	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id shorturl.ID) (*shorturl.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[id]
	if !ok {
		return nil, shorturl.ErrNotFound
	}

	return &link, nil
}

func (m *MemoryStore) SaveClick(_ context.Context, click *shorturl.Click) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clicks[click.ID] = append(m.clicks[click.ID], *click)

	return nil
}

func (m *MemoryStore) CountClicks(_ context.Context, id shorturl.ID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.clicks[id])), nil
}
