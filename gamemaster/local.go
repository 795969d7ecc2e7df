package gamemaster

import (
	"errors"
	"fmt"

	"homeworlds/game"
)

var (
	ErrGameOver = errors.New("game is over - no actions allowed")
	ErrIllegal  = errors.New("illegal action")
)

// Apply performs the action only if it is among the current legal actions.
// The game is left untouched when an error is returned. A decided game still
// accepts actions so the turn that decided it can be completed.
func Apply(g *game.Game, a *game.Action) error {
	if a.Player != g.CurrentPlayer() {
		return fmt.Errorf("%s by player %d: %w", a.Type, a.Player, game.ErrWrongPlayer)
	}

	isLegal := false
	for _, la := range g.LegalActions() {
		if la.Equivalent(*a) {
			isLegal = true
			break
		}
	}
	if !isLegal {
		return fmt.Errorf("%s in system %d: %w", a.Type, a.System, ErrIllegal)
	}

	return g.Perform(a)
}

// ApplyTurn applies actions in order and stops at the first rejected one,
// returning how many were applied. Actions are updated in place, so
// discovered systems can be read back from To.
func ApplyTurn(g *game.Game, actions []game.Action) (int, error) {
	if g.Winner() != 0 {
		return 0, ErrGameOver
	}
	for i := range actions {
		if err := Apply(g, &actions[i]); err != nil {
			return i, fmt.Errorf("action %d: %w", i+1, err)
		}
	}
	return len(actions), nil
}
