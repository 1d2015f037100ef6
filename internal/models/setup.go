package models

// GameSetup is the persisted configuration blob collected by the setup
// wizard: the roster plus the mode/role/restriction/category selections.
// It is what gets re-read to reconfigure the engine after a hard reset.
type GameSetup struct {
	Players           []string `json:"players"`
	MaxImpostors      int      `json:"maxImpostors"`
	Modes             []string `json:"modes,omitempty"`
	Restrictions      []string `json:"restrictions,omitempty"`
	CategoryIDs       []string `json:"categories,omitempty"`
	CarryEliminations bool     `json:"carryEliminations,omitempty"`
	TimePerRound      int      `json:"timePerRound,omitempty"`
}
