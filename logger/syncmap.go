package logger

import (
	"sync"
	"time"
)

// SyncMap is a mutex-guarded map that keeps an expiry timestamp and a tag
// list next to every value. Tags group entries for bulk invalidation.
type SyncMap[T any] struct {
	m       map[string]T
	expires map[string]int64
	tags    map[string][]string
	mu      sync.Mutex
}

// NewSyncMap creates a SyncMap sized for the expected entry count.
func NewSyncMap[T any](size int) *SyncMap[T] {
	return &SyncMap[T]{
		m:       make(map[string]T, size),
		expires: make(map[string]int64, size),
		tags:    make(map[string][]string, size),
	}
}

// Add stores the value under key. expires is a unix-nano deadline, zero
// means the entry never expires.
func (s *SyncMap[T]) Add(key string, value T, expires int64, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	s.expires[key] = expires
	s.tags[key] = tags
}

// UpdateVal replaces the value under key without touching its metadata.
func (s *SyncMap[T]) UpdateVal(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

// UpdateExpire moves the expiry deadline of key. Entries stored without
// an expiry stay permanent.
func (s *SyncMap[T]) UpdateExpire(key string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expires[key] != 0 {
		s.expires[key] = value
	}
}

// Delete removes key with all its metadata.
func (s *SyncMap[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delete(key)
}

func (s *SyncMap[T]) delete(key string) {
	delete(s.m, key)
	delete(s.expires, key)
	delete(s.tags, key)
}

// GetVal returns the value stored under key or the zero value.
func (s *SyncMap[T]) GetVal(key string) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key]
}

// GetExpire returns the unix-nano expiry of key, zero for permanent or
// missing entries.
func (s *SyncMap[T]) GetExpire(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expires[key]
}

// Check reports whether key holds a live entry. An expired entry counts
// as missing but is not removed, the janitor does that.
func (s *SyncMap[T]) Check(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; !ok {
		return false
	}
	expires := s.expires[key]
	return expires == 0 || time.Now().UnixNano() <= expires
}

// DeleteExpired removes every entry whose deadline has passed.
func (s *SyncMap[T]) DeleteExpired() {
	now := time.Now().UnixNano()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, expires := range s.expires {
		if expires != 0 && now > expires {
			s.delete(key)
		}
	}
}

// DeleteTagged removes every entry carrying the tag and returns the
// removed keys.
func (s *SyncMap[T]) DeleteTagged(tag string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for key, keyTags := range s.tags {
		for _, keyTag := range keyTags {
			if keyTag == tag {
				removed = append(removed, key)
				s.delete(key)
				break
			}
		}
	}
	return removed
}
