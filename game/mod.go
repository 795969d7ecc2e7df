package game

// MaxPlayers is bounded by the 3-bit player field of the state fingerprint.
// The homeworld count shares that field width, so it never exceeds the
// number of players: further homeworlds are not counted.
const MaxPlayers = 7

type StateHash uint32

// StateKey identifies a position for deduplication and transposition lookups.
// Two positions share a key only if both the hash and the fingerprint collide.
type StateKey struct {
	Hash  StateHash
	Print string
}

// Evaluates the game state from the current player's perspective. Decided
// games score +/-WinScore, anything else is a heuristic well inside that range.
type Evaluate func(*Game) int
