package store

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"sync"

	"github.com/Nicolas0016/impostor/internal/models"
)

// SessionCodeLength is the length of generated session codes.
const SessionCodeLength = 6

// sessionCodeChars are the characters used for session codes (excluding
// ambiguous chars).
const sessionCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// SessionStore manages in-memory game sessions. Sessions live only for
// the process lifetime; there is no game-history persistence.
type SessionStore struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
}

// NewSessionStore creates a new session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
	}
}

// Get retrieves a session by code
func (s *SessionStore) Get(code string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[code]
	return session, exists
}

// Set stores a session
func (s *SessionStore) Set(code string, session *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[code] = session
}

// Delete removes a session
func (s *SessionStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
}

// Exists checks if a session code exists
func (s *SessionStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.sessions[code]
	return exists
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// UniqueCode generates a session code not yet in use.
func (s *SessionStore) UniqueCode() string {
	for {
		code := generateCode()
		if !s.Exists(code) {
			return code
		}
	}
}

// generateCode creates a random session code
func generateCode() string {
	code := make([]byte, SessionCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(sessionCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = sessionCodeChars[rand.Intn(len(sessionCodeChars))]
			continue
		}
		code[i] = sessionCodeChars[n.Int64()]
	}
	return string(code)
}
