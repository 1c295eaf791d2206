package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	pkgLog "ecomart-chatbot/pkg/log"
)

// Session is one conversation: its history plus the lock that serializes its turns.
type Session struct {
	ID      string
	History *History

	turn sync.Mutex
	pins int // turns holding or waiting for the lock, guarded by Store.mu
}

// Lock blocks until no other turn of this conversation is running.
func (s *Session) Lock() {
	s.turn.Lock()
}

// Unlock ends the current turn.
func (s *Session) Unlock() {
	s.turn.Unlock()
}

// Config bounds the store.
type Config struct {
	MaxSessions int
	SessionTTL  time.Duration
}

// Store keeps one Session per conversation id, evicting the least recently used
// once MaxSessions is reached and any session idle for longer than SessionTTL.
// A session inside a turn (see BeginTurn) stays reachable by id even after eviction,
// so every turn of one conversation shares a single lock.
type Store struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, *Session]
	pinned   map[string]*Session
	l        pkgLog.Logger
}

// NewStore creates a Store. Zero values in cfg fall back to the package defaults.
func NewStore(cfg Config, l pkgLog.Logger) *Store {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}

	s := &Store{l: l, pinned: make(map[string]*Session)}
	s.sessions = expirable.NewLRU[string, *Session](cfg.MaxSessions, s.onEvict, cfg.SessionTTL)
	return s
}

// Acquire returns the session for id, creating it on first use.
// Every call refreshes the session's idle timer.
func (s *Store) Acquire(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquireLocked(id)
}

// BeginTurn returns the session for id with its turn lock held. Until end is called the
// session is pinned: eviction removes it from the LRU but not from lookups by id.
func (s *Store) BeginTurn(id string) (sess *Session, end func()) {
	s.mu.Lock()
	sess = s.acquireLocked(id)
	sess.pins++
	s.pinned[id] = sess
	s.mu.Unlock()

	sess.Lock()
	return sess, func() {
		sess.Unlock()

		s.mu.Lock()
		defer s.mu.Unlock()
		if sess.pins--; sess.pins == 0 {
			delete(s.pinned, id)
		}
	}
}

func (s *Store) acquireLocked(id string) *Session {
	sess, ok := s.sessions.Get(id)
	if !ok {
		sess, ok = s.pinned[id]
	}
	if !ok {
		sess = &Session{ID: id, History: NewHistory()}
		s.l.Debugf(context.Background(), "%s: created session %s", LogPrefixStore, id)
	}
	s.sessions.Add(id, sess)
	return sess
}

// Peek returns the session for id without creating it or refreshing its timer.
func (s *Store) Peek(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions.Peek(id); ok {
		return sess, true
	}
	sess, ok := s.pinned[id]
	return sess, ok
}

// Remove drops the session for id from the LRU. It reports whether the session was there.
// A pinned session stays reachable until its turns end.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Remove(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.sessions.Len()
}

func (s *Store) onEvict(id string, sess *Session) {
	s.l.Infof(context.Background(), "%s: evicted session %s (%d messages)", LogPrefixStore, id, sess.History.Len())
}
