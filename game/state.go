package game

import (
	"errors"
	"fmt"

	"homeworlds/utils"
)

var (
	ErrWrongPlayer   = errors.New("not the current player")
	ErrNoShip        = errors.New("acting ship not in system")
	ErrNoTarget      = errors.New("no enemy ship to attack")
	ErrOutOfStock    = errors.New("piece not available in the stash")
	ErrUnknownAction = errors.New("unknown action type")
)

// System is a star system. Owner is the player whose homeworld it is, 0 if
// it is nobody's.
type System struct {
	ID    int
	Owner int
	Stars []Piece
	Ships []Ship
}

func (s *System) copy() *System {
	return &System{
		ID:    s.ID,
		Owner: s.Owner,
		Stars: append([]Piece(nil), s.Stars...),
		Ships: append([]Ship(nil), s.Ships...),
	}
}

func (s *System) hasShip(ship Ship) bool {
	return utils.FindIndex(s.Ships, ship) >= 0
}

// Game represents the complete state of a game at any point.
type Game struct {
	rules            Rules
	numPlayers       int
	curPlayer        int
	doneMainAction   bool
	homeworldsBuilt  int
	nextSystem       int
	sacrificeActions int
	sacrificeColour  Colour
	systems          []*System
	stash            Stash
}

// NewGame returns an empty board with a full stash. Player 1 moves first.
func NewGame(numPlayers int, rules Rules) *Game {
	if numPlayers < 2 || numPlayers > MaxPlayers {
		panic(fmt.Sprintf("unsupported number of players: %d", numPlayers))
	}
	return &Game{
		rules:      rules,
		numPlayers: numPlayers,
		curPlayer:  1,
		nextSystem: 1,
		stash:      newStash(rules.Supply(numPlayers)),
	}
}

func (g *Game) Clone() *Game {
	systems := make([]*System, len(g.systems))
	for i, s := range g.systems {
		systems[i] = s.copy()
	}
	c := *g
	c.systems = systems
	return &c
}

func (g *Game) Rules() Rules            { return g.rules }
func (g *Game) NumPlayers() int         { return g.numPlayers }
func (g *Game) CurrentPlayer() int      { return g.curPlayer }
func (g *Game) DoneMainAction() bool    { return g.doneMainAction }
func (g *Game) HomeworldsBuilt() int    { return g.homeworldsBuilt }
func (g *Game) NextSystem() int         { return g.nextSystem }
func (g *Game) SacrificeActions() int   { return g.sacrificeActions }
func (g *Game) SacrificeColour() Colour { return g.sacrificeColour }
func (g *Game) Stash() Stash            { return g.stash }

// Systems returns the live systems in creation order. The systems must not
// be modified through the returned pointers.
func (g *Game) Systems() []*System {
	return append([]*System(nil), g.systems...)
}

// NextPlayer is the player who moves after the current one.
func (g *Game) NextPlayer() int {
	return g.curPlayer%g.numPlayers + 1
}

func (g *Game) SetCurrentPlayer(player int) {
	if player < 1 || player > g.numPlayers {
		panic(fmt.Sprintf("player %d out of range", player))
	}
	g.curPlayer = player
}

func (g *Game) SetHomeworldsBuilt(n int) {
	if n < 0 || n > g.numPlayers {
		panic(fmt.Sprintf("homeworld count %d out of range", n))
	}
	g.homeworldsBuilt = n
}

func (g *Game) SetDoneMainAction(v bool) { g.doneMainAction = v }

func (g *Game) SetSacrifice(actions int, colour Colour) {
	g.sacrificeActions = actions
	g.sacrificeColour = colour
}

// System looks up a live system. An unknown id is a programming error.
func (g *Game) System(id int) *System {
	if i := g.systemIndex(id); i >= 0 {
		return g.systems[i]
	}
	panic(fmt.Sprintf("no system with id %d", id))
}

func (g *Game) HasSystem(id int) bool {
	return g.systemIndex(id) >= 0
}

func (g *Game) systemIndex(id int) int {
	for i, s := range g.systems {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CreateSystem draws the stars from the stash and returns the new system id.
// A non-zero owner makes it that player's homeworld. The homeworld count
// stops at the number of players.
func (g *Game) CreateSystem(stars []Piece, owner int) int {
	if owner < 0 || owner > g.numPlayers {
		panic(fmt.Sprintf("owner %d out of range", owner))
	}
	for _, star := range stars {
		g.stash.take(star)
	}
	if owner != 0 && g.homeworldsBuilt < g.numPlayers {
		g.homeworldsBuilt++
	}
	return g.insert(&System{Owner: owner, Stars: append([]Piece(nil), stars...)})
}

// AddSystem inserts a fully populated system, drawing its stars and ships
// from the stash. It does not count homeworlds; loaders set that directly.
func (g *Game) AddSystem(s System) (int, error) {
	need := Stash{}
	for _, star := range s.Stars {
		need[star.Size][star.Colour]++
	}
	for _, ship := range s.Ships {
		need[ship.Piece.Size][ship.Piece.Colour]++
	}
	for _, size := range Sizes {
		for _, colour := range Colours {
			if need[size][colour] > g.stash[size][colour] {
				return 0, fmt.Errorf("system with %s: %w", Piece{size, colour}, ErrOutOfStock)
			}
		}
	}
	for _, star := range s.Stars {
		g.stash.take(star)
	}
	for _, ship := range s.Ships {
		g.stash.take(ship.Piece)
	}
	return g.insert(&System{
		Owner: s.Owner,
		Stars: append([]Piece(nil), s.Stars...),
		Ships: append([]Ship(nil), s.Ships...),
	}), nil
}

func (g *Game) insert(s *System) int {
	s.ID = g.nextSystem
	g.nextSystem++
	g.systems = append(g.systems, s)
	return s.ID
}

// DestroySystem returns every star and ship of the system to the stash.
func (g *Game) DestroySystem(id int) {
	i := g.systemIndex(id)
	if i < 0 {
		panic(fmt.Sprintf("no system with id %d", id))
	}
	s := g.systems[i]
	for _, star := range s.Stars {
		g.stash.give(star)
	}
	for _, ship := range s.Ships {
		g.stash.give(ship.Piece)
	}
	g.systems = utils.RemoveAt(g.systems, i)
}

func (g *Game) AddShip(id int, ship Ship) {
	s := g.System(id)
	g.stash.take(ship.Piece)
	s.Ships = append(s.Ships, ship)
}

// RemoveShip returns one matching ship to the stash. The system is left in
// place even if it becomes empty.
func (g *Game) RemoveShip(id int, ship Ship) (Ship, bool) {
	s := g.System(id)
	i := utils.FindIndex(s.Ships, ship)
	if i < 0 {
		return Ship{}, false
	}
	s.Ships = utils.RemoveAt(s.Ships, i)
	g.stash.give(ship.Piece)
	return ship, true
}

// ApplyCatastrophe returns every star and ship of the colour to the stash and
// destroys the system if it is left without stars or ships.
func (g *Game) ApplyCatastrophe(id int, colour Colour) {
	s := g.System(id)
	stars := s.Stars[:0]
	for _, star := range s.Stars {
		if star.Colour == colour {
			g.stash.give(star)
		} else {
			stars = append(stars, star)
		}
	}
	s.Stars = stars
	ships := s.Ships[:0]
	for _, ship := range s.Ships {
		if ship.Piece.Colour == colour {
			g.stash.give(ship.Piece)
		} else {
			ships = append(ships, ship)
		}
	}
	s.Ships = ships
	if len(s.Stars) == 0 || len(s.Ships) == 0 {
		g.DestroySystem(id)
	}
}

// AdvancePlayer hands the turn to the next player. Turn flags are only
// cleared while the game is undecided.
func (g *Game) AdvancePlayer() {
	g.curPlayer = g.NextPlayer()
	if g.Winner() == 0 {
		g.doneMainAction = false
		g.sacrificeActions = 0
	}
}

// Perform applies the action for the current player. Nothing changes if an
// error is returned. On success a DiscoverAction gets the new system id in To.
func (g *Game) Perform(a *Action) error {
	if a.Player != g.curPlayer {
		return fmt.Errorf("%s by player %d: %w", a.Type, a.Player, ErrWrongPlayer)
	}
	if err := g.check(*a); err != nil {
		return fmt.Errorf("%s in system %d: %w", a.Type, a.System, err)
	}

	if g.sacrificeActions > 0 {
		g.sacrificeActions--
	}

	ship := Ship{Player: a.Player, Piece: a.Ship}
	switch a.Type {
	case PassAction:
		g.AdvancePlayer()
	case AttackAction:
		s := g.System(a.System)
		for i := range s.Ships {
			if s.Ships[i].Player != a.Player && s.Ships[i].Piece == a.Ship {
				s.Ships[i].Player = a.Player
				break
			}
		}
		g.doneMainAction = true
	case DiscoverAction:
		a.To = g.CreateSystem([]Piece{a.Target}, 0)
		g.moveShip(a.System, a.To, ship)
		g.doneMainAction = true
	case TravelAction:
		g.moveShip(a.System, a.To, ship)
		g.doneMainAction = true
	case BuildAction:
		g.AddShip(a.System, ship)
		g.doneMainAction = true
	case TradeAction:
		g.RemoveShip(a.System, ship)
		g.AddShip(a.System, Ship{Player: a.Player, Piece: a.Target})
		g.doneMainAction = true
	case SacrificeAction:
		g.RemoveShip(a.System, ship)
		g.destroyIfAbandoned(a.System)
		g.sacrificeActions = int(a.Ship.Size)
		g.sacrificeColour = a.Ship.Colour
		g.doneMainAction = true
	case CatastropheAction:
		g.ApplyCatastrophe(a.System, a.Ship.Colour)
	}
	return nil
}

// check validates everything Perform needs before any mutation happens.
func (g *Game) check(a Action) error {
	ship := Ship{Player: a.Player, Piece: a.Ship}
	switch a.Type {
	case PassAction:
		return nil
	case AttackAction:
		for _, s := range g.System(a.System).Ships {
			if s.Player != a.Player && s.Piece == a.Ship {
				return nil
			}
		}
		return ErrNoTarget
	case DiscoverAction:
		if !g.System(a.System).hasShip(ship) {
			return ErrNoShip
		}
		if g.stash.Count(a.Target) == 0 {
			return ErrOutOfStock
		}
	case TravelAction:
		if !g.System(a.System).hasShip(ship) {
			return ErrNoShip
		}
		g.System(a.To)
	case BuildAction:
		g.System(a.System)
		if g.stash.Count(a.Ship) == 0 {
			return ErrOutOfStock
		}
	case TradeAction:
		if !g.System(a.System).hasShip(ship) {
			return ErrNoShip
		}
		if g.stash.Count(a.Target) == 0 {
			return ErrOutOfStock
		}
	case SacrificeAction:
		if !g.System(a.System).hasShip(ship) {
			return ErrNoShip
		}
	case CatastropheAction:
		g.System(a.System)
	default:
		return ErrUnknownAction
	}
	return nil
}

func (g *Game) moveShip(from, to int, ship Ship) {
	g.RemoveShip(from, ship)
	g.AddShip(to, ship)
	g.destroyIfAbandoned(from)
}

func (g *Game) destroyIfAbandoned(id int) {
	if len(g.System(id).Ships) == 0 {
		g.DestroySystem(id)
	}
}

// Winner returns 0 while the game is undecided, the winning player, or -1 if
// every homeworld has fallen at once.
func (g *Game) Winner() int {
	if g.homeworldsBuilt < g.numPlayers || g.sacrificeActions > 0 {
		return 0
	}
	winner := -1
	for _, s := range g.systems {
		if s.Owner == 0 {
			continue
		}
		for _, ship := range s.Ships {
			if ship.Player == s.Owner {
				if winner != -1 {
					return 0
				}
				winner = s.Owner
				break
			}
		}
	}
	return winner
}
