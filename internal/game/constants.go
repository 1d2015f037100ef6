package game

// Roles assigned to players each round.
const (
	RoleImpostor = "impostor"
	RoleNormal   = "normal"
)

// Victory results. The empty string means the game continues.
const (
	ResultCrewWins     = "CREW_WINS"
	ResultImpostorsWin = "IMPOSTORS_WIN"
)

// NoRelatedWord is the marker impostors see when no related word could be
// found for the round's secret word.
const NoRelatedWord = "IMPOSTOR"

// MinPlayers is the minimum roster size a game can be configured with.
const MinPlayers = 3

// wordAttempts bounds how many secret-word redraws are tried to find one
// with a related partner before giving impostors the bare marker.
const wordAttempts = 10

// relatedFromRound is the first round in which impostors may receive a
// related word instead of the marker.
const relatedFromRound = 3

// defaultRoster is the canned roster restored by Reset.
var defaultRoster = []string{"Juan", "María", "Pedro", "Ana", "Luis", "Sofía"}

// fallbackWords backs word selection when no categories are configured.
var fallbackWords = []string{
	"playa", "montaña", "hospital", "escuela", "cine", "restaurante",
	"aeropuerto", "biblioteca", "piscina", "supermercado", "museo",
	"estadio", "circo", "castillo", "submarino", "volcán",
}
