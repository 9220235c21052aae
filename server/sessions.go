package server

import (
	"sync"

	"github.com/oakhigbe/globuschat/internal/models"
)

// SessionState is everything the server remembers between requests of
// one session. The Customer is the session's own copy; a card block
// flips status here without touching the shared directory.
type SessionState struct {
	Authenticated  bool
	Customer       *models.Customer
	QueriedAccount string
	History        []models.ChatTurn
}

// StateStore keeps per-session state in memory, keyed by the session ID
// carried in the signed cookie. Conversation history does not fit in a
// cookie, so only the ID travels to the client.
type StateStore struct {
	mu     sync.RWMutex
	states map[string]*SessionState
}

func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[string]*SessionState),
	}
}

func (s *StateStore) Get(id string) (*SessionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[id]
	return state, ok
}

func (s *StateStore) Put(id string, state *SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}

func (s *StateStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
}
