package game

import "time"

// CategoryType distinguishes how a category stores its words.
type CategoryType string

// "single" categories hold loose words, "mixed" categories also hold
// word pairs whose partner can be handed to impostors.
const (
	CategorySingle CategoryType = "single"
	CategoryMixed  CategoryType = "mixed"
)

// WordPair couples a crew word with the related word an impostor may see.
type WordPair struct {
	Word    string `json:"word"`
	Related string `json:"related"`
}

// Category is a named pool of words and/or word pairs used as the source
// for secret and impostor word selection.
//
// The engine treats the instances it is configured with as a session-owned
// working copy: UseCount and LastUsed are bumped in place when a word is
// drawn, and persisting those changes is the caller's responsibility.
type Category struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Words     []string     `json:"words"`
	Pairs     []WordPair   `json:"pairs,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	LastUsed  time.Time    `json:"lastUsed"`
	UseCount  int          `json:"useCount"`
}
