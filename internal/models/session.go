package models

import (
	"sync"
	"time"

	"github.com/Nicolas0016/impostor/internal/game"
)

// Session represents one in-person game driven from a single device that
// gets passed around the table. It owns the engine for that game plus the
// presentation state the engine deliberately does not track.
type Session struct {
	Code      string
	Engine    *game.Engine
	Setup     GameSetup
	Phase     SessionPhase
	CreatedAt time.Time

	// LastRound keeps the most recent round summary for the config and
	// voting screens between requests.
	LastRound game.RoundInfo

	// Eliminated is the cumulative display list across the whole session.
	// The engine's own roster is round-scoped.
	Eliminated []string

	// Result holds the engine's verdict once a round ends the game.
	Result string

	mu         sync.RWMutex
	sseClients map[chan SSEMessage]string
}

// SSEMessage represents a message sent via Server-Sent Events.
type SSEMessage struct {
	Event string // Event type (e.g., "phase-update", "nav-redirect")
	Data  string // HTML content or data to send
}

// Lock acquires the session's write lock
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session's write lock
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// RLock acquires the session's read lock
func (s *Session) RLock() {
	s.mu.RLock()
}

// RUnlock releases the session's read lock
func (s *Session) RUnlock() {
	s.mu.RUnlock()
}

// GetSSEClients returns a copy of the SSE clients map (must be called with lock held)
func (s *Session) GetSSEClients() map[chan SSEMessage]string {
	clients := make(map[chan SSEMessage]string, len(s.sseClients))
	for k, v := range s.sseClients {
		clients[k] = v
	}
	return clients
}

// AddSSEClient adds a new SSE client to the session
func (s *Session) AddSSEClient(client chan SSEMessage, viewerID string) {
	if s.sseClients == nil {
		s.sseClients = make(map[chan SSEMessage]string)
	}
	s.sseClients[client] = viewerID
}

// RemoveSSEClient removes an SSE client from the session
func (s *Session) RemoveSSEClient(client chan SSEMessage) {
	delete(s.sseClients, client)
}

// SSEClientCount returns the number of connected SSE clients
func (s *Session) SSEClientCount() int {
	return len(s.sseClients)
}

// MarkEliminated appends a name to the cumulative eliminated list, once.
func (s *Session) MarkEliminated(name string) {
	for _, n := range s.Eliminated {
		if n == name {
			return
		}
	}
	s.Eliminated = append(s.Eliminated, name)
}
