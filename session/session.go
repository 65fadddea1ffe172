// Package session manages the logged-in operator sessions of the admin
// panel. Sessions live in memory and are mirrored to a pudge database so
// a restart does not log everyone out.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/dkasparas/autonuoma/logger"
	"github.com/pkg/errors"
	"github.com/recoilme/pudge"
)

const (
	CSRFTokenLength = 16
	SessionIDLength = 32
)

// Session is one logged-in operator.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
	UserID    string
	CSRFToken string
}

// Store holds the active sessions and their on-disk mirror.
type Store struct {
	sessions map[string]*Session
	duration time.Duration
	db       *pudge.Db
	mutex    sync.RWMutex
}

// NewStore opens the session database at file and hydrates the sessions
// persisted by a previous run. Expired leftovers are dropped during the
// hydrate.
func NewStore(file string, duration time.Duration) (*Store, error) {
	db, err := pudge.Open(file, &pudge.Config{SyncInterval: 1})
	if err != nil {
		return nil, errors.Wrap(err, "open session db")
	}
	store := &Store{
		sessions: make(map[string]*Session),
		duration: duration,
		db:       db,
	}
	store.hydrate()
	return store, nil
}

func (ss *Store) hydrate() {
	keys, err := ss.db.Keys(nil, 0, 0, true)
	if err != nil {
		logger.Logtype("error").Err(err).Msg("list persisted sessions")
		return
	}
	now := time.Now()
	restored := 0
	for _, key := range keys {
		var session Session
		if err := ss.db.Get(key, &session); err != nil {
			continue
		}
		if now.After(session.ExpiresAt) {
			ss.db.Delete(key)
			continue
		}
		ss.sessions[session.ID] = &session
		restored++
	}
	if restored > 0 {
		logger.Logtype("info").Int("sessions", restored).Msg("restored sessions")
	}
}

// Create starts a session for userID with a fresh CSRF token.
func (ss *Store) Create(userID string) *Session {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	session := &Session{
		ID:        generateSecureToken(SessionIDLength),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ss.duration),
		UserID:    userID,
		CSRFToken: generateSecureToken(CSRFTokenLength),
	}
	ss.sessions[session.ID] = session
	if err := ss.db.Set(session.ID, session); err != nil {
		logger.Logtype("error").Err(err).Msg("persist session")
	}
	return session
}

// Get returns the live session for the ID. An expired session is removed
// and reported as missing.
func (ss *Store) Get(sessionID string) (*Session, bool) {
	ss.mutex.RLock()
	session, exists := ss.sessions[sessionID]
	ss.mutex.RUnlock()
	if !exists {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		ss.Delete(sessionID)
		return nil, false
	}
	return session, true
}

// Delete removes the session from memory and disk.
func (ss *Store) Delete(sessionID string) {
	ss.mutex.Lock()
	delete(ss.sessions, sessionID)
	ss.mutex.Unlock()
	if err := ss.db.Delete(sessionID); err != nil && !errors.Is(err, pudge.ErrKeyNotFound) {
		logger.Logtype("error").Err(err).Msg("delete persisted session")
	}
}

// CleanupExpired drops every expired session and returns how many were
// removed. The scheduler runs this periodically.
func (ss *Store) CleanupExpired() int {
	ss.mutex.Lock()
	now := time.Now()
	var expired []string
	for id, session := range ss.sessions {
		if now.After(session.ExpiresAt) {
			delete(ss.sessions, id)
			expired = append(expired, id)
		}
	}
	ss.mutex.Unlock()
	for _, id := range expired {
		ss.db.Delete(id)
	}
	return len(expired)
}

// Count returns the number of sessions currently held.
func (ss *Store) Count() int {
	ss.mutex.RLock()
	defer ss.mutex.RUnlock()
	return len(ss.sessions)
}

// Close flushes and closes the on-disk mirror.
func (ss *Store) Close() error {
	return ss.db.Close()
}

// generateSecureToken creates a hex token from length random bytes.
func generateSecureToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
