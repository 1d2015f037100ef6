package sse

import (
	"maps"
	"time"

	"go.uber.org/zap"

	"github.com/Nicolas0016/impostor/internal/models"
)

// sendTimeout bounds how long a broadcast waits on a slow client.
const sendTimeout = 2 * time.Second

// AddClient adds a new SSE client to the session
func AddClient(session *models.Session, client chan models.SSEMessage, deviceID string) {
	session.Lock()
	defer session.Unlock()

	// Warn if the same device has multiple SSE connections
	dup := 0
	clients := session.GetSSEClients()
	for _, id := range clients {
		if id == deviceID {
			dup++
		}
	}
	if dup > 0 {
		zap.S().Warnw("device opened additional SSE connections",
			"device", deviceID, "extra", dup)
	}
	session.AddSSEClient(client, deviceID)
}

// RemoveClient removes an SSE client from the session
func RemoveClient(session *models.Session, client chan models.SSEMessage) {
	session.Lock()
	defer session.Unlock()
	session.RemoveSSEClient(client)
	zap.S().Debugw("SSE client removed", "remaining", session.SSEClientCount())
}

// Broadcast sends a message to all connected SSE clients
func Broadcast(session *models.Session, event, data string) {
	session.RLock()
	// Collect all client channels while holding the lock
	clients := maps.Clone(session.GetSSEClients())
	session.RUnlock()

	zap.S().Debugw("broadcasting SSE event", "event", event, "clients", len(clients))

	// Send messages WITHOUT holding the lock
	msg := models.SSEMessage{Event: event, Data: data}
	for client := range clients {
		select {
		case client <- msg:
		case <-time.After(sendTimeout):
			zap.S().Debugw("timeout sending SSE event", "event", event)
		}
	}
}

// BroadcastPersonalized sends a per-device rendering to each client
func BroadcastPersonalized(session *models.Session, renderFunc func(deviceID string) string, eventName string) {
	session.RLock()
	clientMap := maps.Clone(session.GetSSEClients())
	session.RUnlock()

	// Send personalized messages WITHOUT holding the lock
	for client, deviceID := range clientMap {
		html := renderFunc(deviceID)
		msg := models.SSEMessage{Event: eventName, Data: html}
		select {
		case client <- msg:
		case <-time.After(sendTimeout):
			// Timeout - skip this client to avoid blocking
		}
	}
}
