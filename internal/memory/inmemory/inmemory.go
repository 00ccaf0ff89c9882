package inmemory

import (
	"sync"
	"time"

	"github.com/siue-cs/eddiebot/internal/memory/models"
)

// Store holds per-session history in RAM. Every access sweeps sessions whose
// last activity exceeds the TTL; the sweep is O(sessions), which is fine for
// the hundreds of concurrent sessions a single node sees.
type Store struct {
	maxTurns int
	ttl      time.Duration
	sessions map[string][]models.Turn
	lastSeen map[string]time.Time
	mu       sync.Mutex
}

func NewStore(maxTurns int, ttl time.Duration) *Store {
	return &Store{
		maxTurns: maxTurns,
		ttl:      ttl,
		sessions: make(map[string][]models.Turn),
		lastSeen: make(map[string]time.Time),
	}
}

// caller must hold mu
func (s *Store) sweep() {
	now := time.Now()
	for sid, seen := range s.lastSeen {
		if now.Sub(seen) > s.ttl {
			delete(s.sessions, sid)
			delete(s.lastSeen, sid)
		}
	}
}

// Get returns the session's turns in insertion order, refreshing the
// session's TTL. Unknown or swept sessions yield an empty slice.
func (s *Store) Get(sessionID string) []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.lastSeen[sessionID] = time.Now()
	history := s.sessions[sessionID]
	out := make([]models.Turn, len(history))
	copy(out, history)
	return out
}

// Add appends a turn, evicting the oldest once the bound is exceeded.
func (s *Store) Add(sessionID, role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.lastSeen[sessionID] = time.Now()
	history := append(s.sessions[sessionID], models.Turn{Role: role, Text: text, Timestamp: time.Now()})
	if len(history) > s.maxTurns {
		history = history[len(history)-s.maxTurns:]
	}
	s.sessions[sessionID] = history
}

// Reset drops all sessions; tests use it for isolation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string][]models.Turn)
	s.lastSeen = make(map[string]time.Time)
}
