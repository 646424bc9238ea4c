package repository

import (
	"context"
	"sync"
	"time"

	"medivault/internal/models"
)

// MemoryDoctorsCache is the in-process fallback used when Redis is disabled.
type MemoryDoctorsCache struct {
	mu        sync.RWMutex
	doctors   []*models.User
	expiresAt time.Time
	ttl       time.Duration
}

func NewMemoryDoctorsCache(ttl time.Duration) *MemoryDoctorsCache {
	return &MemoryDoctorsCache{ttl: ttl}
}

func (c *MemoryDoctorsCache) GetDoctors(ctx context.Context) ([]*models.User, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.doctors == nil || time.Now().After(c.expiresAt) {
		return nil, false, nil
	}
	out := make([]*models.User, len(c.doctors))
	copy(out, c.doctors)
	return out, true, nil
}

func (c *MemoryDoctorsCache) SetDoctors(ctx context.Context, doctors []*models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doctors = make([]*models.User, len(doctors))
	copy(c.doctors, doctors)
	c.expiresAt = time.Now().Add(c.ttl)
	return nil
}

func (c *MemoryDoctorsCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doctors = nil
	return nil
}
