package game

import (
	"fmt"
	"strings"
)

// WinScore is the value of a decided game for the winner.
const WinScore = 1000000

// EvaluateMaterial scores the fleets of the current player and the opponent
// by the sum of squared ship sizes.
func EvaluateMaterial(g *Game) int {
	return g.materialScore(g.curPlayer) - g.materialScore(g.NextPlayer())
}

// EvaluatePositional adds homeworld safety, homeworld occupation and colour
// monopolies to the material score, all well below WinScore.
func EvaluatePositional(g *Game) int {
	if g.Winner() != 0 {
		return EvaluateMaterial(g)
	}
	current, opponent := g.curPlayer, g.NextPlayer()
	return EvaluateMaterial(g) + g.positionalScore(current, opponent) - g.positionalScore(opponent, current)
}

var evaluators = map[string]Evaluate{
	"material":   EvaluateMaterial,
	"positional": EvaluatePositional,
}

// EvaluatorByName resolves a configured evaluation function.
func EvaluatorByName(name string) (Evaluate, error) {
	evaluate, ok := evaluators[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation function %q", name)
	}
	return evaluate, nil
}

func (g *Game) materialScore(player int) int {
	switch g.Winner() {
	case player:
		return WinScore
	case 0:
	default:
		return 0
	}
	score := 0
	for _, s := range g.systems {
		for _, ship := range s.Ships {
			if ship.Player == player {
				score += 100 * int(ship.Piece.Size) * int(ship.Piece.Size)
			}
		}
	}
	return score
}

func (g *Game) positionalScore(player, opponent int) int {
	score := 0
	var colours [Blue + 1]int
	var opponentColours [Blue + 1]int
	for _, s := range g.systems {
		for _, ship := range s.Ships {
			switch ship.Player {
			case player:
				colours[ship.Piece.Colour]++
			case opponent:
				opponentColours[ship.Piece.Colour]++
			}
			// A large ship at home guards the homeworld
			if s.Owner == player && ship.Player == player && ship.Piece.Size == Large {
				score += 100
			}
			// Pressure on the enemy homeworld
			if s.Owner == opponent && ship.Player == player {
				score += 100
			}
		}
	}
	for _, colour := range Colours {
		if colours[colour] > 0 && opponentColours[colour] == 0 {
			score += 300
		}
	}
	return score
}
