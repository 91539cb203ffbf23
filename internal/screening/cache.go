package screening

import (
	"context"
	"sync"

	"github.com/jonathan/resume-screener/internal/types"
)

// ProfileCache stores extracted profiles by cache key. Implementations are
// read-through and write-once per key: Put on an existing key keeps the first value.
type ProfileCache interface {
	GetProfile(ctx context.Context, key string) (*types.CandidateProfile, bool, error)
	PutProfile(ctx context.Context, key string, profile *types.CandidateProfile) error
}

// MemoryCache is an in-process ProfileCache
type MemoryCache struct {
	mu       sync.RWMutex
	profiles map[string]*types.CandidateProfile
}

// NewMemoryCache creates an empty MemoryCache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{profiles: make(map[string]*types.CandidateProfile)}
}

// GetProfile returns the cached profile for key
func (c *MemoryCache) GetProfile(_ context.Context, key string) (*types.CandidateProfile, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[key]
	return p, ok, nil
}

// PutProfile stores profile unless key is already present
func (c *MemoryCache) PutProfile(_ context.Context, key string, profile *types.CandidateProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.profiles[key]; !exists {
		c.profiles[key] = profile
	}
	return nil
}

// Len returns the number of cached profiles
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}
