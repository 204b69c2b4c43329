package memory

import (
	"context"
	"sync"

	"github.com/taskmaster/backend/domain"
	"github.com/taskmaster/backend/repository"
)

type partition struct {
	mu      sync.RWMutex
	entries map[string]*domain.TaskPage
}

type listCache struct {
	mu         sync.RWMutex
	partitions map[string]*partition
}

// NewListCache creates an in-process list result cache. Entries are kept in
// per-user partitions so Put and EvictAll for one user never block reads or
// writes for another.
func NewListCache() repository.ListCache {
	return &listCache{
		partitions: make(map[string]*partition),
	}
}

func (c *listCache) Get(_ context.Context, key repository.ListKey) (*domain.TaskPage, error) {
	c.mu.RLock()
	part, ok := c.partitions[key.UserID]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	part.mu.RLock()
	defer part.mu.RUnlock()
	return part.entries[key.String()], nil
}

func (c *listCache) Put(_ context.Context, key repository.ListKey, page *domain.TaskPage) error {
	if page == nil {
		return domain.ErrInvalidPayload
	}

	part := c.partition(key.UserID)
	part.mu.Lock()
	part.entries[key.String()] = page
	part.mu.Unlock()
	return nil
}

func (c *listCache) EvictAll(_ context.Context, userID string) error {
	c.mu.RLock()
	part, ok := c.partitions[userID]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	part.mu.Lock()
	part.entries = make(map[string]*domain.TaskPage)
	part.mu.Unlock()
	return nil
}

func (c *listCache) partition(userID string) *partition {
	c.mu.RLock()
	part, ok := c.partitions[userID]
	c.mu.RUnlock()
	if ok {
		return part
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if part, ok = c.partitions[userID]; ok {
		return part
	}
	part = &partition{entries: make(map[string]*domain.TaskPage)}
	c.partitions[userID] = part
	return part
}
