package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. It backs tests and lets the app run
// without Redis in local development. Expiry is checked lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	tags    map[string]map[string]struct{}
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		tags:    make(map[string]map[string]struct{}),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, ErrMiss
	}
	return entry.value, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) AddTagMember(_ context.Context, tagKey, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.tags[tagKey]
	if !ok {
		members = make(map[string]struct{})
		s.tags[tagKey] = members
	}
	members[key] = struct{}{}
	return nil
}

func (s *MemoryStore) TagMembers(_ context.Context, tagKey string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]string, 0, len(s.tags[tagKey]))
	for key := range s.tags[tagKey] {
		members = append(members, key)
	}
	return members, nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
		delete(s.tags, key)
	}
	return nil
}
