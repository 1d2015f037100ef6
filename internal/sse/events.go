package sse

// SSE event type constants
const (
	EventNavRedirect  = "nav-redirect"
	EventPhaseUpdate  = "phase-update"
	EventTurnUpdate   = "turn-update"
	EventRoundUpdate  = "round-update"
	EventErrorMessage = "error-message"
)
