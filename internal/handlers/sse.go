package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nicolas0016/impostor/internal/models"
	"github.com/Nicolas0016/impostor/internal/render"
	"github.com/Nicolas0016/impostor/internal/sse"
)

// sseBufferSize is the per-client channel depth.
const sseBufferSize = 10

// HandleSSE streams session updates to follower devices
func (ctx *Context) HandleSSE(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	deviceID := deviceID(w, r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies

	session, exists := ctx.Sessions.Get(code)
	if !exists {
		// Instruct the client to navigate home via HTMX snippet
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventNavRedirect,
			render.RedirectSnippet(code, "/"))
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
		return
	}

	// Immediately flush headers to establish the SSE connection
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	clientChan := make(chan models.SSEMessage, sseBufferSize)
	sse.AddClient(session, clientChan, deviceID)
	defer sse.RemoveClient(session, clientChan)

	ctx.Metrics.IncSSEClients()
	defer ctx.Metrics.DecSSEClients()

	zap.S().Debugw("SSE client connected", "code", code, "device", deviceID)

	// Send the current state so late joiners catch up
	session.RLock()
	turnHTML := render.TurnOrder(session.Engine.TurnOrderNames(), session.Engine.CurrentPlayer())
	var bannerHTML string
	if session.Engine.IsRoundActive() || session.Phase != models.PhaseConfig {
		bannerHTML = render.RoundBanner(session.LastRound)
	}
	session.RUnlock()

	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventTurnUpdate, turnHTML)
	if bannerHTML != "" {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventRoundUpdate, bannerHTML)
	}
	w.(http.Flusher).Flush()

	// Listen for updates
	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			zap.S().Debugw("SSE client disconnected", "code", code, "device", deviceID)
			return
		case msg := <-clientChan:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			w.(http.Flusher).Flush()
		}
	}
}

// deviceID reads the device cookie, assigning one on first contact.
func deviceID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie("device_id")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     "device_id",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
