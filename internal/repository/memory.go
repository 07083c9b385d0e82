package repository

import (
	"context"
	"sync"
)

// MemoryStateRepository keeps per-user state in process memory. Used by tests
// and as a degraded fallback when no database is configured.
type MemoryStateRepository struct {
	mu sync.RWMutex
	m  map[int64]map[string]string
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{m: make(map[int64]map[string]string)}
}

func (r *MemoryStateRepository) Get(_ context.Context, telegramID int64, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.m[telegramID][key], nil
}

func (r *MemoryStateRepository) Set(_ context.Context, telegramID int64, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m[telegramID] == nil {
		r.m[telegramID] = make(map[string]string)
	}
	r.m[telegramID][key] = value
	return nil
}

func (r *MemoryStateRepository) Delete(_ context.Context, telegramID int64, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.m[telegramID], k)
	}
	return nil
}

// Keys returns the set of keys currently stored for a user.
func (r *MemoryStateRepository) Keys(telegramID int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.m[telegramID]))
	for k := range r.m[telegramID] {
		keys = append(keys, k)
	}
	return keys
}
