// Package session holds the storefront credential: the bearer token issued by the
// booking API on login or registration.
package session

import (
	"context"
	"sync"
	"time"
)

// TokenKey is the storage key the credential lives under.
const TokenKey = "user_token"

// Store keeps at most one credential. Get returns "" when nobody is logged in.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.Set(ctx, "")
}

// Sessions hands out one Store per browser session id.
type Sessions interface {
	ForSession(id string) Store
}

// MemorySessions keeps per-browser credentials in process. Used by the
// storefront server when Redis is not configured. Like RedisSessions, an entry
// exists only while a browser is logged in and expires ttl after its last use;
// ttl <= 0 disables expiry.
type MemorySessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

func NewMemorySessions(ttl time.Duration) *MemorySessions {
	return &MemorySessions{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// ForSession is free: nothing is stored until the session logs in.
func (m *MemorySessions) ForSession(id string) Store {
	return &memorySession{sessions: m, id: id}
}

// Len reports how many logged-in sessions are held, expired ones excluded.
func (m *MemorySessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	return len(m.entries)
}

func (m *MemorySessions) get(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return ""
	}
	now := m.now()
	if m.expired(entry, now) {
		delete(m.entries, id)
		return ""
	}
	if m.ttl > 0 {
		entry.expiresAt = now.Add(m.ttl)
		m.entries[id] = entry
	}
	return entry.token
}

func (m *MemorySessions) set(id, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	if token == "" {
		delete(m.entries, id)
		return
	}
	entry := memoryEntry{token: token}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[id] = entry
}

func (m *MemorySessions) expired(entry memoryEntry, now time.Time) bool {
	return m.ttl > 0 && !now.Before(entry.expiresAt)
}

func (m *MemorySessions) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for id, entry := range m.entries {
		if m.expired(entry, now) {
			delete(m.entries, id)
		}
	}
}

type memorySession struct {
	sessions *MemorySessions
	id       string
}

func (s *memorySession) Get(_ context.Context) (string, error) {
	return s.sessions.get(s.id), nil
}

func (s *memorySession) Set(_ context.Context, token string) error {
	s.sessions.set(s.id, token)
	return nil
}

func (s *memorySession) Clear(ctx context.Context) error {
	return s.Set(ctx, "")
}

var (
	_ Store    = (*MemoryStore)(nil)
	_ Store    = (*memorySession)(nil)
	_ Sessions = (*MemorySessions)(nil)
	_ Sessions = (*RedisSessions)(nil)
)
