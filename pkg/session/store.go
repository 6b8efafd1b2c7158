package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dronemarket/catalog/pkg/types"
)

// Session is one browsing session: a filter state plus the bookkeeping to
// expire it. All reads and mutations of the state go through Do so a
// mutation and the recomputation it triggers observe a consistent state.
type Session struct {
	Id string

	mu       sync.Mutex
	state    *types.FilterState
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's filter state and
// refreshes the expiry clock.
func (s *Session) Do(fn func(state *types.FilterState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s.state)
}

// Store keeps sessions in memory. Nothing survives a restart, filter state
// resets on reload by design.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
}

func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *Store) Create() *Session {
	session := &Session{
		Id:       uuid.NewString(),
		state:    types.NewFilterState(),
		lastSeen: time.Now(),
	}
	s.mu.Lock()
	s.sessions[session.Id] = session
	s.mu.Unlock()
	return session
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) Close() {
	close(s.stop)
}

func (s *Store) janitor() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.expire(now)
		}
	}
}

func (s *Store) expire(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		session.mu.Lock()
		stale := now.Sub(session.lastSeen) > s.ttl
		session.mu.Unlock()
		if stale {
			delete(s.sessions, id)
		}
	}
}
