// Package cache holds the wholesale-loaded collections the admin grids
// page through. Entries are tagged per table so a write to a table can
// drop exactly the collections built from it.
package cache

import (
	"sync"
	"time"

	"github.com/dkasparas/autonuoma/logger"
)

// Store is a tag-aware expiring cache. Entries expire after the default
// extension, a janitor sweeps expired entries on its interval and
// subscribers get notified when their tag is invalidated.
type Store struct {
	defaultextension time.Duration
	items            *logger.SyncMap[any]
	subscribers      map[string][]func()
	mu               sync.Mutex
	stop             chan struct{}
	stopOnce         sync.Once
}

// NewStore creates a store whose entries live for defaultextension and
// starts the janitor on interval. A zero defaultextension keeps entries
// until they are invalidated.
func NewStore(defaultextension, interval time.Duration) *Store {
	s := &Store{
		defaultextension: defaultextension,
		items:            logger.NewSyncMap[any](20),
		subscribers:      make(map[string][]func()),
		stop:             make(chan struct{}),
	}
	if interval > 0 {
		go s.janitor(interval)
	}
	return s
}

func (s *Store) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.items.DeleteExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) expiresAt() int64 {
	if s.defaultextension > 0 {
		return time.Now().Add(s.defaultextension).UnixNano()
	}
	return 0
}

// Invalidate drops every entry carrying any of the tags and notifies the
// tag subscribers.
func (s *Store) Invalidate(tags ...string) {
	for _, tag := range tags {
		removed := s.items.DeleteTagged(tag)
		if len(removed) > 0 {
			logger.Logtype("debug").Str("tag", tag).Int("entries", len(removed)).Msg("cache invalidate")
		}
		s.mu.Lock()
		subscribers := s.subscribers[tag]
		s.mu.Unlock()
		for _, notify := range subscribers {
			notify()
		}
	}
}

// Subscribe registers fn to run whenever the tag is invalidated.
func (s *Store) Subscribe(tag string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[tag] = append(s.subscribers[tag], fn)
}

// Close stops the janitor.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Get returns the collection under key, loading and tagging it on a miss
// or after expiry. Load errors are the loader's concern, a loader that
// returns its zero value caches that zero value.
func Get[T any](s *Store, key string, loader func() T, tags ...string) T {
	if s.items.Check(key) {
		if val, ok := s.items.GetVal(key).(T); ok {
			return val
		}
	}
	val := loader()
	s.items.Add(key, val, s.expiresAt(), tags...)
	return val
}
