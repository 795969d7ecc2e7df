package game

import (
	"strings"

	"golang.org/x/exp/slices"
)

var (
	sizeHash   = [...]uint32{0x96ef527d, 0xbf6ff0bb, 0x55742d1e, 0x12972d93}
	colourHash = [...]uint32{0x7fd9fd6a, 0x8dd08654, 0x29f99b21, 0x3a707ca3}
	playerHash = [MaxPlayers + 1]uint32{
		0x3e624de3, 0x1a9e20e1, 0x52c25952, 0xa4c6d1f7,
		0x6b0e93c5, 0xe1279f0b, 0x0d5fb86e, 0xc83a3417,
	}
)

const (
	starsHash    uint32 = 0xd9a110c5
	shipsHash    uint32 = 0x12ec3a54
	mainDoneHash uint32 = 0xd7067b50
)

func pieceHash(p Piece) uint32 {
	return sizeHash[p.Size] ^ colourHash[p.Colour]
}

func systemHash(s *System) uint32 {
	ships := shipsHash
	for _, ship := range s.Ships {
		ships += pieceHash(ship.Piece) ^ playerHash[ship.Player]
	}
	stars := starsHash
	for _, star := range s.Stars {
		stars += pieceHash(star)
	}
	return ships ^ stars ^ playerHash[s.Owner]
}

// Hash is a 32-bit digest of the state. Systems are summed, so the order
// in which they or their pieces were created does not matter.
func (g *Game) Hash() StateHash {
	var systems uint32
	for _, s := range g.systems {
		systems += systemHash(s)
	}
	h := systems ^
		(playerHash[g.numPlayers] + playerHash[g.curPlayer]) ^
		sizeHash[g.sacrificeActions] ^
		colourHash[g.sacrificeColour] ^
		(31 * playerHash[g.homeworldsBuilt])
	if g.doneMainAction {
		h ^= mainDoneHash
	}
	return StateHash(h)
}

// Fingerprint encodes the state as a byte string: two header bytes, then
// the sorted piece bytes of each system, with the systems in sorted order.
// Repeated identical pieces within a system are encoded once.
func (g *Game) Fingerprint() string {
	header := []byte{
		byte(g.numPlayers<<4 | g.curPlayer),
		byte(g.sacrificeActions<<2 | int(g.sacrificeColour) | g.homeworldsBuilt<<4),
	}
	if g.doneMainAction {
		header[1] |= 0x80
	}

	systems := make([]string, 0, len(g.systems))
	for _, s := range g.systems {
		b := make([]byte, 0, len(s.Stars)+len(s.Ships))
		for _, star := range s.Stars {
			b = append(b, byte(s.Owner<<4|int(star.Size)<<2|int(star.Colour)))
		}
		for _, ship := range s.Ships {
			b = append(b, byte(0x80|ship.Player<<4|int(ship.Piece.Size)<<2|int(ship.Piece.Colour)))
		}
		slices.Sort(b)
		systems = append(systems, string(slices.Compact(b)))
	}
	slices.Sort(systems)

	var sb strings.Builder
	sb.Write(header)
	for _, s := range systems {
		sb.WriteString(s)
	}
	return sb.String()
}

func (g *Game) Key() StateKey {
	return StateKey{Hash: g.Hash(), Print: g.Fingerprint()}
}
