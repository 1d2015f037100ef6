package models

// SessionPhase represents the screen a session is currently on.
type SessionPhase string

const (
	PhaseConfig   SessionPhase = "config"
	PhasePlaying  SessionPhase = "playing"
	PhaseVoting   SessionPhase = "voting"
	PhaseFinished SessionPhase = "finished"
)
