package game

import (
	"fmt"
	"strconv"
)

type Size int

const (
	None Size = iota
	Small
	Medium
	Large
)

// Sizes lists the sizes that exist as physical pieces.
var Sizes = []Size{Small, Medium, Large}

type Colour int

const (
	Red Colour = iota
	Yellow
	Green
	Blue
)

var Colours = []Colour{Red, Yellow, Green, Blue}

const colourLetters = "rygb"

func (c Colour) String() string {
	if c < Red || c > Blue {
		return "?"
	}
	return string(colourLetters[c])
}

// ParseColour accepts the single letter used in notation.
func ParseColour(s string) (Colour, error) {
	if len(s) == 1 {
		for i := range colourLetters {
			if colourLetters[i] == s[0] {
				return Colour(i), nil
			}
		}
	}
	return 0, fmt.Errorf("invalid colour %q", s)
}

// Piece is a pyramid. It is used as star, ship and currency.
type Piece struct {
	Size   Size
	Colour Colour
}

func (p Piece) String() string {
	return p.Colour.String() + strconv.Itoa(int(p.Size))
}

// ParsePiece parses the colour letter and size digit form, e.g. "g3".
func ParsePiece(s string) (Piece, error) {
	if len(s) != 2 {
		return Piece{}, fmt.Errorf("invalid piece %q", s)
	}
	colour, err := ParseColour(s[:1])
	if err != nil {
		return Piece{}, fmt.Errorf("invalid piece %q: %w", s, err)
	}
	size := Size(s[1] - '0')
	if size < Small || size > Large {
		return Piece{}, fmt.Errorf("invalid piece %q: size out of range", s)
	}
	return Piece{Size: size, Colour: colour}, nil
}

// ComparePieces orders by size, then colour.
func ComparePieces(a, b Piece) int {
	if a.Size != b.Size {
		return int(a.Size) - int(b.Size)
	}
	return int(a.Colour) - int(b.Colour)
}

func (p Piece) Less(other Piece) bool {
	return ComparePieces(p, other) < 0
}

type Ship struct {
	Player int
	Piece  Piece
}

func (s Ship) String() string {
	return strconv.Itoa(s.Player) + s.Piece.String()
}

// ParseShip parses the owner digit followed by a piece, e.g. "1g3".
func ParseShip(s string) (Ship, error) {
	if len(s) != 3 || s[0] < '0' || s[0] > '9' {
		return Ship{}, fmt.Errorf("invalid ship %q", s)
	}
	piece, err := ParsePiece(s[1:])
	if err != nil {
		return Ship{}, fmt.Errorf("invalid ship %q: %w", s, err)
	}
	return Ship{Player: int(s[0] - '0'), Piece: piece}, nil
}

// Stash holds the unused pieces, indexed by size and colour.
type Stash [Large + 1][Blue + 1]int

func newStash(supply int) Stash {
	var s Stash
	for _, size := range Sizes {
		for _, colour := range Colours {
			s[size][colour] = supply
		}
	}
	return s
}

func (s *Stash) Count(p Piece) int {
	return s[p.Size][p.Colour]
}

func (s *Stash) take(p Piece) {
	if s[p.Size][p.Colour] <= 0 {
		panic(fmt.Sprintf("stash exhausted for %s", p))
	}
	s[p.Size][p.Colour]--
}

func (s *Stash) give(p Piece) {
	s[p.Size][p.Colour]++
}
