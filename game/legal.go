package game

import (
	"golang.org/x/exp/slices"
)

// LegalActions lists every action the current player may take next. PASS
// comes first when the main action is done, followed by each system's
// actions in creation order.
func (g *Game) LegalActions() []Action {
	actions := []Action{}
	if g.doneMainAction {
		actions = append(actions, Pass(g.curPlayer))
	}
	for _, s := range g.systems {
		actions = append(actions, g.SystemActions(s, CatastropheAction)...)
		if !g.doneMainAction {
			actions = append(actions, g.SystemActions(s, SacrificeAction)...)
		}
		if g.powerAvailable(s, Red) {
			actions = append(actions, g.SystemActions(s, AttackAction)...)
		}
		if g.powerAvailable(s, Yellow) {
			actions = append(actions, g.SystemActions(s, DiscoverAction)...)
			actions = append(actions, g.SystemActions(s, TravelAction)...)
		}
		if g.powerAvailable(s, Green) {
			actions = append(actions, g.SystemActions(s, BuildAction)...)
		}
		if g.powerAvailable(s, Blue) {
			actions = append(actions, g.SystemActions(s, TradeAction)...)
		}
	}
	return actions
}

// SystemActions lists the actions of one type in one system, sorted and
// without duplicates. Colour access is not checked here.
func (g *Game) SystemActions(s *System, t ActionType) []Action {
	actions := []Action{}
	player := g.curPlayer
	own := g.ownShips(s)

	switch t {
	case PassAction:
		actions = append(actions, Pass(player))
	case AttackAction:
		largest := None
		for _, p := range own {
			largest = max(largest, p.Size)
		}
		for _, ship := range s.Ships {
			if ship.Player != player && ship.Piece.Size <= largest {
				actions = append(actions, Action{Player: player, Type: AttackAction, System: s.ID, Ship: ship.Piece})
			}
		}
	case DiscoverAction:
		for _, size := range Sizes {
			for _, colour := range Colours {
				star := Piece{Size: size, Colour: colour}
				if g.stash.Count(star) == 0 || !connected(s.Stars, []Piece{star}) {
					continue
				}
				for _, p := range own {
					actions = append(actions, Action{Player: player, Type: DiscoverAction, System: s.ID, Ship: p, Target: star})
				}
			}
		}
	case TravelAction:
		for _, other := range g.systems {
			if other.ID == s.ID || !connected(s.Stars, other.Stars) {
				continue
			}
			for _, p := range own {
				actions = append(actions, Action{Player: player, Type: TravelAction, System: s.ID, Ship: p, To: other.ID})
			}
		}
	case BuildAction:
		for _, p := range own {
			if piece, ok := g.smallest(p.Colour); ok {
				actions = append(actions, Action{Player: player, Type: BuildAction, System: s.ID, Ship: piece})
			}
		}
	case TradeAction:
		for _, p := range own {
			for _, colour := range Colours {
				target := Piece{Size: p.Size, Colour: colour}
				if colour != p.Colour && g.stash.Count(target) > 0 {
					actions = append(actions, Action{Player: player, Type: TradeAction, System: s.ID, Ship: p, Target: target})
				}
			}
		}
	case SacrificeAction:
		for _, p := range own {
			actions = append(actions, Action{Player: player, Type: SacrificeAction, System: s.ID, Ship: p})
		}
	case CatastropheAction:
		counts := [Blue + 1]int{}
		for _, star := range s.Stars {
			counts[star.Colour]++
		}
		for _, ship := range s.Ships {
			counts[ship.Piece.Colour]++
		}
		for _, colour := range Colours {
			if counts[colour] >= g.rules.CatastropheThreshold() {
				actions = append(actions, Action{Player: player, Type: CatastropheAction, System: s.ID, Ship: Piece{Size: None, Colour: colour}})
			}
		}
	}

	slices.SortFunc(actions, CompareActions)
	return slices.CompactFunc(actions, Action.Equal)
}

// powerAvailable reports whether the current player may use the colour's
// power in the system, either as their main action or through a sacrifice.
func (g *Game) powerAvailable(s *System, colour Colour) bool {
	if !g.doneMainAction && g.colourAvailable(s, colour, true) {
		return true
	}
	return g.sacrificeActions > 0 && g.sacrificeColour == colour
}

func (g *Game) colourAvailable(s *System, colour Colour, includeStars bool) bool {
	if includeStars {
		for _, star := range s.Stars {
			if star.Colour == colour {
				return true
			}
		}
	}
	for _, ship := range s.Ships {
		if ship.Player == g.curPlayer && ship.Piece.Colour == colour {
			return true
		}
	}
	return false
}

func (g *Game) ownShips(s *System) []Piece {
	own := []Piece{}
	for _, ship := range s.Ships {
		if ship.Player == g.curPlayer {
			own = append(own, ship.Piece)
		}
	}
	return own
}

// smallest finds the smallest piece of the colour left in the stash.
func (g *Game) smallest(colour Colour) (Piece, bool) {
	for _, size := range Sizes {
		p := Piece{Size: size, Colour: colour}
		if g.stash.Count(p) > 0 {
			return p, true
		}
	}
	return Piece{}, false
}

// connected reports whether two star sets share no size.
func connected(a, b []Piece) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Size == y.Size {
				return false
			}
		}
	}
	return true
}
