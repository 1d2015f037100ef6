package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	// ErrNotEnoughPlayers is returned by Configure for rosters below MinPlayers.
	ErrNotEnoughPlayers = errors.New("not enough players")
	// ErrDuplicateName is returned by Configure when two players share a name,
	// since roles and turns are tracked by name.
	ErrDuplicateName = errors.New("duplicate player name")
)

// Config carries everything the configuration screens collect. Modes and
// restrictions are opaque identifiers surfaced in presentation copy only;
// the round mechanics never consult them.
type Config struct {
	Players      []string
	MaxImpostors int
	Modes        []string
	Restrictions []string
	Categories   []*Category

	// CarryEliminations keeps eliminated players out of play across rounds
	// instead of respawning the full roster at every round start. Off by
	// default: eliminations are round-scoped.
	CarryEliminations bool
}

// RoundInfo summarizes a freshly started round.
type RoundInfo struct {
	Round         int
	ImpostorCount int
	Message       string
	TurnOrder     []string
	Category      string
	CrewWord      string
	ImpostorWord  string
	Impostors     []string
}

// TurnResult reports the outcome of advancing the turn cursor.
type TurnResult struct {
	NextPlayer    string
	RoundComplete bool
}

// PlayerInfo is what the reveal screen shows the player currently holding
// the device.
type PlayerInfo struct {
	Player   string
	Role     string
	Word     string
	Round    int
	Category string
	Help     string
}

// PlayerView is the per-name variant of PlayerInfo, used when a specific
// player asks for their own card.
type PlayerView struct {
	Role       string
	Word       string
	IsYourTurn bool
}

// EliminateResult reports the outcome of voting a player out. Found is
// false when the name is not an active player; in that case nothing was
// mutated and no victory evaluation took place.
type EliminateResult struct {
	Eliminated         string
	Found              bool
	WasImpostor        bool
	RemainingImpostors []string
	RemainingPlayers   []string
	GameResult         string
}

// RoundRecord is the append-only history entry captured at round start,
// kept for "show past impostors" queries.
type RoundRecord struct {
	Round        int
	Impostors    []string
	CrewWord     string
	ImpostorWord string
	Category     string
}

// Snapshot exposes the complete engine state for summary screens.
type Snapshot struct {
	Round           int
	Players         []string
	OriginalPlayers []string
	Impostors       []string
	CurrentPlayer   string
	TurnOrder       []string
	SecretWord      string
	ImpostorWord    string
	Category        string
	RoundActive     bool
}

// RelatedWordFunc resolves the word impostors see for a given secret word.
// It is a swappable strategy so tests can substitute a deterministic or
// stricter policy without touching the round flow.
type RelatedWordFunc func(secret string, current *Category, all []*Category, used map[string]bool, rng *rand.Rand) (string, bool)

// Engine owns all state for one game session: roster, word and category
// selection, role assignment, the turn cursor, eliminations and victory
// evaluation. It is driven serially by a single caller and does no locking
// of its own; every operation returns a plain result and never panics or
// errors outside Configure.
type Engine struct {
	originalPlayers   []string
	activePlayers     []string
	maxImpostors      int
	modes             []string
	restrictions      []string
	categories        []*Category
	carryEliminations bool

	round        int
	secretWord   string
	impostorWord string
	category     string
	roles        map[string]string
	impostors    []string
	turnOrder    []int
	currentTurn  int
	roundActive  bool

	usedWords map[string]bool
	history   []RoundRecord

	rng     *rand.Rand
	related RelatedWordFunc
}

// Option customizes a new Engine.
type Option func(*Engine)

// WithRand injects the random source, so tests can run deterministically.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithRelatedWordFunc replaces the related-word strategy.
func WithRelatedWordFunc(f RelatedWordFunc) Option {
	return func(e *Engine) { e.related = f }
}

// New creates an engine with the default roster. Callers are expected to
// Configure it before starting rounds.
func New(opts ...Option) *Engine {
	e := &Engine{
		originalPlayers: append([]string(nil), defaultRoster...),
		maxImpostors:    1,
		roles:           make(map[string]string),
		usedWords:       make(map[string]bool),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		related:         RelatedByCategory,
	}
	e.activePlayers = append([]string(nil), e.originalPlayers...)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configure sets the roster and session options and resets all round
// state. Beyond the roster guards the engine trusts its inputs; bounds
// like the impostor ceiling are the configuration layer's job.
func (e *Engine) Configure(cfg Config) error {
	if len(cfg.Players) < MinPlayers {
		return fmt.Errorf("%w: got %d, need %d", ErrNotEnoughPlayers, len(cfg.Players), MinPlayers)
	}
	seen := make(map[string]bool, len(cfg.Players))
	for _, name := range cfg.Players {
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = true
	}

	e.originalPlayers = append([]string(nil), cfg.Players...)
	e.activePlayers = append([]string(nil), cfg.Players...)
	e.maxImpostors = cfg.MaxImpostors
	if e.maxImpostors < 1 {
		e.maxImpostors = 1
	}
	e.modes = append([]string(nil), cfg.Modes...)
	e.restrictions = append([]string(nil), cfg.Restrictions...)
	e.categories = cfg.Categories
	e.carryEliminations = cfg.CarryEliminations

	e.clearRoundState()
	e.round = 0
	e.usedWords = make(map[string]bool)
	e.history = nil
	return nil
}

// StartRound begins the next round: respawns the roster (unless
// eliminations carry), escalates the impostor count, selects the words,
// reshuffles roles and builds a fresh circular turn order.
func (e *Engine) StartRound() RoundInfo {
	if !e.carryEliminations || len(e.activePlayers) < MinPlayers {
		e.activePlayers = append([]string(nil), e.originalPlayers...)
	}
	e.round++

	count := impostorsForRound(e.round, e.maxImpostors)
	e.secretWord, e.impostorWord, e.category = e.pickWords()
	e.assignRoles(count)

	e.history = append(e.history, RoundRecord{
		Round:        e.round,
		Impostors:    append([]string(nil), e.impostors...),
		CrewWord:     e.secretWord,
		ImpostorWord: e.impostorWord,
		Category:     e.category,
	})

	e.turnOrder = e.newTurnOrder()
	e.currentTurn = 0
	e.roundActive = true

	return RoundInfo{
		Round:         e.round,
		ImpostorCount: len(e.impostors),
		Message:       roundMessage(e.round, len(e.impostors)),
		TurnOrder:     e.TurnOrderNames(),
		Category:      e.category,
		CrewWord:      e.secretWord,
		ImpostorWord:  e.impostorWord,
		Impostors:     append([]string(nil), e.impostors...),
	}
}

// impostorsForRound is the fixed escalation schedule, capped by the
// configured maximum: round 1 always has a single impostor.
func impostorsForRound(round, max int) int {
	switch {
	case round == 1:
		return 1
	case round <= 3:
		return min(2, max)
	case round <= 6:
		return min(3, max)
	default:
		return min(4, max)
	}
}

func roundMessage(round, count int) string {
	switch {
	case round == 1:
		return "First round! One impostor and no twists yet."
	case round == 2:
		return fmt.Sprintf("Round 2: %d impostor(s) in play.", count)
	default:
		return fmt.Sprintf("Round %d: %d impostor(s). Impostors may now see a related word.", round, count)
	}
}

func (e *Engine) assignRoles(count int) {
	e.roles = make(map[string]string, len(e.activePlayers))
	e.impostors = nil

	shuffled := append([]string(nil), e.activePlayers...)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	for i, name := range shuffled {
		if i < count {
			e.roles[name] = RoleImpostor
			e.impostors = append(e.impostors, name)
		} else {
			e.roles[name] = RoleNormal
		}
	}
}

// newTurnOrder enumerates all active-player indices in circular order from
// a random starting point.
func (e *Engine) newTurnOrder() []int {
	n := len(e.activePlayers)
	if n == 0 {
		return nil
	}
	start := e.rng.Intn(n)
	order := make([]int, n)
	for i := range order {
		order[i] = (start + i) % n
	}
	return order
}

// AdvanceTurn moves the cursor to the next player. Once every active
// player has had their turn the round is deactivated and completion is
// signaled; calling it with no active round is a no-op.
func (e *Engine) AdvanceTurn() TurnResult {
	if !e.roundActive {
		return TurnResult{RoundComplete: true}
	}
	e.currentTurn++
	if e.currentTurn >= len(e.activePlayers) {
		e.roundActive = false
		return TurnResult{RoundComplete: true}
	}
	return TurnResult{NextPlayer: e.activePlayers[e.turnOrder[e.currentTurn]]}
}

// CurrentPlayerInfo resolves the player whose turn it is and the word they
// should be shown: the secret word for crew, the impostor word (or the
// bare marker) for impostors.
func (e *Engine) CurrentPlayerInfo() PlayerInfo {
	if e.currentTurn >= len(e.turnOrder) {
		return PlayerInfo{Round: e.round}
	}
	name := e.activePlayers[e.turnOrder[e.currentTurn]]
	role, word, help := e.cardFor(name)
	return PlayerInfo{
		Player:   name,
		Role:     role,
		Word:     word,
		Round:    e.round,
		Category: e.category,
		Help:     help,
	}
}

// PlayerViewFor returns the card for a specific player by name.
func (e *Engine) PlayerViewFor(name string) PlayerView {
	role, word, _ := e.cardFor(name)
	isTurn := false
	if e.roundActive && e.currentTurn < len(e.turnOrder) {
		isTurn = e.activePlayers[e.turnOrder[e.currentTurn]] == name
	}
	return PlayerView{Role: role, Word: word, IsYourTurn: isTurn}
}

func (e *Engine) cardFor(name string) (role, word, help string) {
	role = e.roles[name]
	if role == "" {
		role = RoleNormal
	}
	word = e.secretWord
	if role == RoleImpostor {
		word = e.impostorWord
		if word == "" {
			word = NoRelatedWord
		}
		if word != NoRelatedWord {
			help = "Your word is related to the crew's word. Blend in."
		}
	}
	return role, word, help
}

// Eliminate removes a player from play, rebuilds the turn order and
// evaluates victory. An unknown name yields Found=false with no state
// change and no victory evaluation.
func (e *Engine) Eliminate(name string) EliminateResult {
	idx := indexOf(e.activePlayers, name)
	if idx < 0 {
		return EliminateResult{
			Eliminated:         name,
			RemainingImpostors: append([]string(nil), e.impostors...),
			RemainingPlayers:   append([]string(nil), e.activePlayers...),
		}
	}
	wasImpostor := e.roles[name] == RoleImpostor

	// Capture the current order as players before the roster shrinks, so
	// indices can be remapped instead of going stale.
	prevOrder := make([]string, 0, len(e.turnOrder))
	for _, i := range e.turnOrder {
		prevOrder = append(prevOrder, e.activePlayers[i])
	}

	e.activePlayers = append(e.activePlayers[:idx], e.activePlayers[idx+1:]...)
	if impIdx := indexOf(e.impostors, name); impIdx >= 0 {
		e.impostors = append(e.impostors[:impIdx], e.impostors[impIdx+1:]...)
	}
	delete(e.roles, name)

	e.turnOrder = e.turnOrder[:0]
	for _, player := range prevOrder {
		if player == name {
			continue
		}
		if i := indexOf(e.activePlayers, player); i >= 0 {
			e.turnOrder = append(e.turnOrder, i)
		}
	}
	if e.currentTurn >= len(e.turnOrder) {
		e.currentTurn = max(0, len(e.turnOrder)-1)
	}

	return EliminateResult{
		Eliminated:         name,
		Found:              true,
		WasImpostor:        wasImpostor,
		RemainingImpostors: append([]string(nil), e.impostors...),
		RemainingPlayers:   append([]string(nil), e.activePlayers...),
		GameResult:         e.evaluateVictory(),
	}
}

// evaluateVictory is a pure function of current state. The no-impostors
// check runs first so a lone surviving crew member resolves as a crew win
// rather than falling through to the last-player branch.
func (e *Engine) evaluateVictory() string {
	if len(e.impostors) == 0 {
		return ResultCrewWins
	}
	crew := len(e.activePlayers) - len(e.impostors)
	if len(e.impostors) >= crew {
		return ResultImpostorsWin
	}
	if len(e.activePlayers) == 1 {
		if indexOf(e.impostors, e.activePlayers[0]) >= 0 {
			return ResultImpostorsWin
		}
		return ResultCrewWins
	}
	return ""
}

// Reset hard-resets to the canned default roster and clears every mutable
// field. It does not remember the caller's last configuration; callers are
// expected to re-read their persisted setup and Configure again.
func (e *Engine) Reset() {
	e.originalPlayers = append([]string(nil), defaultRoster...)
	e.activePlayers = append([]string(nil), defaultRoster...)
	e.maxImpostors = 1
	e.modes = nil
	e.restrictions = nil
	e.categories = nil
	e.carryEliminations = false

	e.clearRoundState()
	e.round = 0
	e.usedWords = make(map[string]bool)
	e.history = nil
}

func (e *Engine) clearRoundState() {
	e.secretWord = ""
	e.impostorWord = ""
	e.category = ""
	e.roles = make(map[string]string)
	e.impostors = nil
	e.turnOrder = nil
	e.currentTurn = 0
	e.roundActive = false
}

// Round returns the current round number, zero before the first round.
func (e *Engine) Round() int { return e.round }

// IsRoundActive reports whether a turn phase is in progress.
func (e *Engine) IsRoundActive() bool { return e.roundActive }

// ActivePlayers returns the players still in play.
func (e *Engine) ActivePlayers() []string {
	return append([]string(nil), e.activePlayers...)
}

// AllPlayers returns the full roster fixed at configuration time.
func (e *Engine) AllPlayers() []string {
	return append([]string(nil), e.originalPlayers...)
}

// TurnOrderNames returns the active players in their turn order.
func (e *Engine) TurnOrderNames() []string {
	names := make([]string, 0, len(e.turnOrder))
	for _, i := range e.turnOrder {
		names = append(names, e.activePlayers[i])
	}
	return names
}

// History returns the per-round impostor records captured so far.
func (e *Engine) History() []RoundRecord {
	return append([]RoundRecord(nil), e.history...)
}

// Modes returns the configured mode identifiers.
func (e *Engine) Modes() []string { return append([]string(nil), e.modes...) }

// Restrictions returns the configured restriction identifiers.
func (e *Engine) Restrictions() []string {
	return append([]string(nil), e.restrictions...)
}

// CurrentPlayer returns the name at the turn cursor, or "" when no turn
// order exists.
func (e *Engine) CurrentPlayer() string {
	if e.currentTurn >= len(e.turnOrder) {
		return ""
	}
	return e.activePlayers[e.turnOrder[e.currentTurn]]
}

// Snapshot returns the complete current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Round:           e.round,
		Players:         e.ActivePlayers(),
		OriginalPlayers: e.AllPlayers(),
		Impostors:       append([]string(nil), e.impostors...),
		CurrentPlayer:   e.CurrentPlayer(),
		TurnOrder:       e.TurnOrderNames(),
		SecretWord:      e.secretWord,
		ImpostorWord:    e.impostorWord,
		Category:        e.category,
		RoundActive:     e.roundActive,
	}
}

// MaxImpostorsFor is the roster-derived ceiling the configuration layer
// enforces: 1 impostor below 6 players, 2 up to 8, 3 from 9 on.
func MaxImpostorsFor(playerCount int) int {
	switch {
	case playerCount < 6:
		return 1
	case playerCount <= 8:
		return 2
	default:
		return 3
	}
}

func indexOf(list []string, name string) int {
	for i, v := range list {
		if v == name {
			return i
		}
	}
	return -1
}
